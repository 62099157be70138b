package scheduler_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Motalib01/Ihjizely-sub000/internal/scheduler"
)

func TestLoop_RunsUntilCancelled(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		scheduler.Loop(ctx, "test", 5*time.Millisecond, time.Second, func(ctx context.Context) error {
			runs.Add(1)
			return nil
		}, slog.Default())
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancel")
	}

	if runs.Load() < 2 {
		t.Fatalf("expected several runs, got %d", runs.Load())
	}
}

func TestLoop_SurvivesJobFailure(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Loop(ctx, "flaky", 5*time.Millisecond, time.Second, func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("transient")
		}, slog.Default())
		close(done)
	}()

	time.Sleep(40 * time.Millisecond)
	cancel()
	<-done

	if runs.Load() < 2 {
		t.Fatalf("loop must keep ticking after failures, got %d runs", runs.Load())
	}
}

func TestLoop_RunHasDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sawDeadline := make(chan bool, 1)
	go scheduler.Loop(ctx, "bounded", 5*time.Millisecond, 10*time.Millisecond, func(runCtx context.Context) error {
		_, ok := runCtx.Deadline()
		select {
		case sawDeadline <- ok:
		default:
		}
		return nil
	}, slog.Default())

	select {
	case ok := <-sawDeadline:
		if !ok {
			t.Fatal("job context must carry a per-run deadline")
		}
	case <-time.After(time.Second):
		t.Fatal("job never ran")
	}
}

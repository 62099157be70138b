package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job is one bounded run of a background task. Each item a job touches must
// be atomic on its own, so an aborted run leaves no partial state.
type Job func(ctx context.Context) error

// Loop runs job every interval until ctx is cancelled. Each run gets its own
// timeout; a run that exceeds it is aborted and the remaining work waits for
// the next tick. Failures are logged, never fatal to the loop.
func Loop(ctx context.Context, name string, interval, runTimeout time.Duration, job Job, log *slog.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()
	log.Info("job loop started", "job", name, "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			log.Info("job loop stopped", "job", name)
			return
		case <-t.C:
			runCtx, cancel := context.WithTimeout(ctx, runTimeout)
			if err := job(runCtx); err != nil {
				log.Error("job run failed", "job", name, "err", err)
			}
			cancel()
		}
	}
}

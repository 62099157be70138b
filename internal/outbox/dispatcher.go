package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
	"github.com/Motalib01/Ihjizely-sub000/pkg/clock"
)

// Store is the dispatcher's narrow view of outbox persistence.
type Store interface {
	ClaimBatch(ctx context.Context, limit int) ([]domain.OutboxMessage, error)
	MarkProcessed(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, errText string) error
}

// Dispatcher delivers pending outbox messages to registered handlers in
// commit order. Messages are processed one at a time; a failure is recorded
// on the row and never blocks the rest of the batch.
type Dispatcher struct {
	store     Store
	reg       *Registry
	clk       clock.Clock
	batchSize int
	log       *slog.Logger
}

func NewDispatcher(store Store, reg *Registry, clk clock.Clock, batchSize int, log *slog.Logger) *Dispatcher {
	return &Dispatcher{store: store, reg: reg, clk: clk, batchSize: batchSize, log: log}
}

// Run is one dispatch pass. Wired as a scheduler job.
func (d *Dispatcher) Run(ctx context.Context) error {
	msgs, err := d.store.ClaimBatch(ctx, d.batchSize)
	if err != nil {
		return fmt.Errorf("claim batch: %w", err)
	}
	for _, m := range msgs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := d.deliver(ctx, m); err != nil {
			d.log.Error("outbox delivery failed",
				"message_id", m.ID, "event_type", m.EventType, "attempt", m.Attempts+1, "err", err)
			if markErr := d.store.MarkFailed(ctx, m.ID, err.Error()); markErr != nil {
				d.log.Error("mark failed", "message_id", m.ID, "err", markErr)
			}
			continue
		}
		if err := d.store.MarkProcessed(ctx, m.ID, d.clk.Now()); err != nil {
			d.log.Error("mark processed", "message_id", m.ID, "err", err)
		}
	}
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, m domain.OutboxMessage) error {
	for _, h := range d.reg.For(m.EventType) {
		if err := h(ctx, m); err != nil {
			return err
		}
	}
	// No handler registered counts as delivered; otherwise the row would be
	// retried forever.
	return nil
}

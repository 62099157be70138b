package notify

import (
	"context"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
	"github.com/Motalib01/Ihjizely-sub000/internal/outbox"
	"github.com/Motalib01/Ihjizely-sub000/pkg/mq"
)

// Relay republishes a dispatched outbox message to the broker, routing key =
// event type, so external consumers (reporting, mobile push) get the same
// at-least-once stream the outbox guarantees.
func Relay(pub *mq.Publisher) outbox.Handler {
	return func(ctx context.Context, m domain.OutboxMessage) error {
		return pub.Publish(ctx, m.EventType, m.Payload)
	}
}

// RegisterRelay subscribes the relay for every core event type.
func RegisterRelay(reg *outbox.Registry, pub *mq.Publisher) {
	for _, eventType := range []string{
		domain.EvBookingCreated,
		domain.EvBookingConfirmed,
		domain.EvBookingRejected,
		domain.EvBookingCompleted,
		domain.EvPropertyCreated,
	} {
		reg.Register(eventType, Relay(pub))
	}
}

package notify

import (
	"context"
	"fmt"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
	"github.com/Motalib01/Ihjizely-sub000/internal/outbox"
)

// RegisterAll subscribes notification handlers for every event the core
// emits. Handlers decode the outbox payload back into the concrete event.
func RegisterAll(reg *outbox.Registry, n Notifier) {
	reg.Register(domain.EvBookingCreated, func(ctx context.Context, m domain.OutboxMessage) error {
		ev, err := domain.DecodeEvent[domain.BookingCreated](m.Payload)
		if err != nil {
			return err
		}
		return n.Notify("Booking requested",
			fmt.Sprintf("booking %s (unit=%s) %s", ev.BookingID, ev.UnitID, HumanDateRange(ev.Start, ev.End)))
	})

	reg.Register(domain.EvBookingConfirmed, func(ctx context.Context, m domain.OutboxMessage) error {
		ev, err := domain.DecodeEvent[domain.BookingConfirmed](m.Payload)
		if err != nil {
			return err
		}
		return n.Notify("Booking confirmed", fmt.Sprintf("booking %s", ev.BookingID))
	})

	reg.Register(domain.EvBookingRejected, func(ctx context.Context, m domain.OutboxMessage) error {
		ev, err := domain.DecodeEvent[domain.BookingRejected](m.Payload)
		if err != nil {
			return err
		}
		return n.Notify("Booking rejected", fmt.Sprintf("booking %s", ev.BookingID))
	})

	reg.Register(domain.EvBookingCompleted, func(ctx context.Context, m domain.OutboxMessage) error {
		ev, err := domain.DecodeEvent[domain.BookingCompleted](m.Payload)
		if err != nil {
			return err
		}
		return n.Notify("Stay completed", fmt.Sprintf("booking %s", ev.BookingID))
	})

	reg.Register(domain.EvPropertyCreated, func(ctx context.Context, m domain.OutboxMessage) error {
		ev, err := domain.DecodeEvent[domain.PropertyCreated](m.Payload)
		if err != nil {
			return err
		}
		return n.Notify("Property listed", fmt.Sprintf("property %s (%s)", ev.PropertyID, ev.Type))
	})
}

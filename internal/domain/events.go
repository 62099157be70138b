package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event names double as outbox message types and broker routing keys.
const (
	EvBookingCreated   = "booking.created"
	EvBookingConfirmed = "booking.confirmed"
	EvBookingRejected  = "booking.rejected"
	EvBookingCompleted = "booking.completed"
	EvPropertyCreated  = "property.created"
)

// Event is a typed, immutable fact produced by a mutating operation. Events
// are never persisted directly; they become outbox rows inside the same
// transaction as the state change that produced them.
type Event interface {
	EventName() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

type BookingCreated struct {
	BookingID uuid.UUID `json:"booking_id"`
	UnitID    uuid.UUID `json:"unit_id"`
	GuestID   uuid.UUID `json:"guest_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	At        time.Time `json:"at"`
}

func (e BookingCreated) EventName() string      { return EvBookingCreated }
func (e BookingCreated) AggregateID() uuid.UUID { return e.BookingID }
func (e BookingCreated) OccurredAt() time.Time  { return e.At }

type BookingConfirmed struct {
	BookingID uuid.UUID `json:"booking_id"`
	At        time.Time `json:"at"`
}

func (e BookingConfirmed) EventName() string      { return EvBookingConfirmed }
func (e BookingConfirmed) AggregateID() uuid.UUID { return e.BookingID }
func (e BookingConfirmed) OccurredAt() time.Time  { return e.At }

type BookingRejected struct {
	BookingID uuid.UUID `json:"booking_id"`
	At        time.Time `json:"at"`
}

func (e BookingRejected) EventName() string      { return EvBookingRejected }
func (e BookingRejected) AggregateID() uuid.UUID { return e.BookingID }
func (e BookingRejected) OccurredAt() time.Time  { return e.At }

type BookingCompleted struct {
	BookingID uuid.UUID `json:"booking_id"`
	At        time.Time `json:"at"`
}

func (e BookingCompleted) EventName() string      { return EvBookingCompleted }
func (e BookingCompleted) AggregateID() uuid.UUID { return e.BookingID }
func (e BookingCompleted) OccurredAt() time.Time  { return e.At }

type PropertyCreated struct {
	PropertyID uuid.UUID    `json:"property_id"`
	OwnerID    uuid.UUID    `json:"owner_id"`
	Type       PropertyType `json:"type"`
	At         time.Time    `json:"at"`
}

func (e PropertyCreated) EventName() string      { return EvPropertyCreated }
func (e PropertyCreated) AggregateID() uuid.UUID { return e.PropertyID }
func (e PropertyCreated) OccurredAt() time.Time  { return e.At }

// StatusEvent returns the event matching a booking status change.
func StatusEvent(bookingID uuid.UUID, to BookingStatus, at time.Time) (Event, error) {
	switch to {
	case StatusConfirmed:
		return BookingConfirmed{BookingID: bookingID, At: at}, nil
	case StatusRejected:
		return BookingRejected{BookingID: bookingID, At: at}, nil
	case StatusCompleted:
		return BookingCompleted{BookingID: bookingID, At: at}, nil
	default:
		return nil, fmt.Errorf("no event for status %s", to)
	}
}

// DecodeEvent unmarshals an outbox payload into a concrete event type.
func DecodeEvent[T any](payload []byte) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}

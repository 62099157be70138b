package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// Terminal reports whether no transition may leave s.
func (s BookingStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// transitions is the full booking state machine. Anything not listed here is
// an illegal status change.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusCompleted, StatusRejected},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveStatuses are the statuses that still occupy the calendar.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UnitID        uuid.UUID `gorm:"type:uuid;index"`
	GuestID       uuid.UUID `gorm:"type:uuid;index"`
	StartDate     time.Time `gorm:"index"`
	EndDate       time.Time `gorm:"index"` // exclusive
	PriceAmount   int64
	PriceCurrency string        `gorm:"size:3"`
	Status        BookingStatus `gorm:"size:16;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Active reports whether b still blocks its unit's calendar.
func (b *Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Overlaps reports whether [s1,e1) and [s2,e2) share at least one day.
// Touching boundaries do not overlap: checkout day and check-in day may
// coincide.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Day truncates t to UTC midnight. Booking dates are date-only.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

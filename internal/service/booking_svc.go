package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
	"github.com/Motalib01/Ihjizely-sub000/pkg/clock"
)

// BookingStore is the slice of the ledger store the lifecycle manager needs.
// Implementations must persist the staged events in the same transaction as
// the state change.
type BookingStore interface {
	CreateWithNoOverlap(ctx context.Context, b *domain.Booking, events []domain.Event) error
	UpdateStatus(ctx context.Context, id uuid.UUID, apply func(b *domain.Booking) ([]domain.Event, error)) (*domain.Booking, error)
	ByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type CreateBookingInput struct {
	UnitID        uuid.UUID
	GuestID       uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	PriceAmount   int64
	PriceCurrency string
}

// BookingSvc owns the booking state machine. It is the only component that
// mutates booking status.
type BookingSvc struct {
	store BookingStore
	clk   clock.Clock
	log   *slog.Logger
}

func NewBookingSvc(store BookingStore, clk clock.Clock, log *slog.Logger) *BookingSvc {
	return &BookingSvc{store: store, clk: clk, log: log}
}

// Create validates the range, checks for overlap against active bookings and
// persists a pending booking plus its booking.created event atomically.
func (s *BookingSvc) Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	start := domain.Day(in.StartDate)
	end := domain.Day(in.EndDate)
	if !start.Before(end) {
		return nil, fmt.Errorf("%s .. %s: %w", start.Format(time.DateOnly), end.Format(time.DateOnly), domain.ErrInvalidRange)
	}

	now := s.clk.Now()
	b := &domain.Booking{
		ID:            uuid.New(),
		UnitID:        in.UnitID,
		GuestID:       in.GuestID,
		StartDate:     start,
		EndDate:       end,
		PriceAmount:   in.PriceAmount,
		PriceCurrency: in.PriceCurrency,
		Status:        domain.StatusPending,
		CreatedAt:     now,
	}
	ev := domain.BookingCreated{
		BookingID: b.ID,
		UnitID:    b.UnitID,
		GuestID:   b.GuestID,
		Start:     b.StartDate,
		End:       b.EndDate,
		At:        now,
	}
	if err := s.store.CreateWithNoOverlap(ctx, b, []domain.Event{ev}); err != nil {
		return nil, err
	}
	return b, nil
}

// Transition moves a booking to the target status if the state machine allows
// it, emitting the matching event in the same transaction.
func (s *BookingSvc) Transition(ctx context.Context, id uuid.UUID, to domain.BookingStatus) (*domain.Booking, error) {
	now := s.clk.Now()
	return s.store.UpdateStatus(ctx, id, func(b *domain.Booking) ([]domain.Event, error) {
		if !domain.CanTransition(b.Status, to) {
			return nil, fmt.Errorf("%s -> %s: %w", b.Status, to, domain.ErrInvalidTransition)
		}
		b.Status = to
		b.UpdatedAt = now
		ev, err := domain.StatusEvent(b.ID, to, now)
		if err != nil {
			return nil, err
		}
		return []domain.Event{ev}, nil
	})
}

func (s *BookingSvc) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return s.store.ByID(ctx, id)
}

// ExpireOverdue completes every confirmed booking whose stay ended before
// now. Idempotent: a second run finds nothing left to complete and emits no
// further events. A failure on one booking does not stop the rest; the next
// scheduled run picks it up again.
func (s *BookingSvc) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.store.ListOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list overdue: %w", err)
	}
	count := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return count, ctx.Err()
		}
		if _, err := s.Transition(ctx, id, domain.StatusCompleted); err != nil {
			// A concurrent run may have completed it already.
			if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrNotFound) {
				continue
			}
			s.log.Error("expire booking failed", "booking_id", id, "err", err)
			continue
		}
		count++
	}
	return count, nil
}

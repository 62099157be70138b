package service_test

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
	"github.com/Motalib01/Ihjizely-sub000/internal/service"
	"github.com/Motalib01/Ihjizely-sub000/pkg/clock"
)

// fakeStore reproduces the ledger store's transactional contract in memory:
// a booking and its outbox rows commit together or not at all.
type fakeStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*domain.Booking
	outbox   []domain.OutboxMessage
	failTx   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: make(map[uuid.UUID]*domain.Booking)}
}

func (f *fakeStore) CreateWithNoOverlap(ctx context.Context, b *domain.Booking, events []domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTx {
		return errors.New("tx aborted")
	}
	for _, other := range f.bookings {
		if other.UnitID == b.UnitID && other.Active() &&
			domain.Overlaps(b.StartDate, b.EndDate, other.StartDate, other.EndDate) {
			return domain.ErrOverlap
		}
	}
	cp := *b
	f.bookings[b.ID] = &cp
	return f.append(events)
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id uuid.UUID, apply func(b *domain.Booking) ([]domain.Event, error)) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *cur
	events, err := apply(&cp)
	if err != nil {
		return nil, err
	}
	if f.failTx {
		return nil, errors.New("tx aborted")
	}
	f.bookings[id] = &cp
	if err := f.append(events); err != nil {
		return nil, err
	}
	out := cp
	return &out, nil
}

func (f *fakeStore) ByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) ListOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for id, b := range f.bookings {
		if b.Status == domain.StatusConfirmed && b.EndDate.Before(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeStore) append(events []domain.Event) error {
	for _, ev := range events {
		msg, err := domain.NewOutboxMessage(ev)
		if err != nil {
			return err
		}
		f.outbox = append(f.outbox, msg)
	}
	return nil
}

func (f *fakeStore) eventsOfType(name string) []domain.OutboxMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.OutboxMessage
	for _, m := range f.outbox {
		if m.EventType == name {
			out = append(out, m)
		}
	}
	return out
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newSvc(store *fakeStore, now time.Time) *service.BookingSvc {
	return service.NewBookingSvc(store, clock.Fixed(now), slog.Default())
}

func input(unit uuid.UUID, start, end string) service.CreateBookingInput {
	return service.CreateBookingInput{
		UnitID:        unit,
		GuestID:       uuid.New(),
		StartDate:     day(start),
		EndDate:       day(end),
		PriceAmount:   120_000,
		PriceCurrency: "LYD",
	}
}

func TestCreate_InvalidRange(t *testing.T) {
	store := newFakeStore()
	s := newSvc(store, day("2024-05-01"))
	unit := uuid.New()

	for _, c := range [][2]string{
		{"2024-06-05", "2024-06-05"},
		{"2024-06-06", "2024-06-05"},
	} {
		_, err := s.Create(context.Background(), input(unit, c[0], c[1]))
		require.ErrorIs(t, err, domain.ErrInvalidRange)
	}
	require.Empty(t, store.bookings, "nothing may be persisted")
	require.Empty(t, store.outbox)
}

func TestCreate_EmitsExactlyOneEvent(t *testing.T) {
	store := newFakeStore()
	now := day("2024-05-01")
	s := newSvc(store, now)

	b, err := s.Create(context.Background(), input(uuid.New(), "2024-06-01", "2024-06-05"))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, b.Status)
	require.Len(t, store.outbox, 1)

	msg := store.outbox[0]
	require.Equal(t, domain.EvBookingCreated, msg.EventType)
	ev, err := domain.DecodeEvent[domain.BookingCreated](msg.Payload)
	require.NoError(t, err)
	require.Equal(t, b.ID, ev.BookingID)
	require.Equal(t, now, msg.OccurredAt)
}

func TestCreate_OverlapAndBoundary(t *testing.T) {
	store := newFakeStore()
	s := newSvc(store, day("2024-05-01"))
	unit := uuid.New()

	confirmed, err := s.Create(context.Background(), input(unit, "2024-06-01", "2024-06-05"))
	require.NoError(t, err)
	_, err = s.Transition(context.Background(), confirmed.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	// Overlapping range fails and writes nothing.
	before := len(store.outbox)
	_, err = s.Create(context.Background(), input(unit, "2024-06-03", "2024-06-07"))
	require.ErrorIs(t, err, domain.ErrOverlap)
	require.Len(t, store.bookings, 1)
	require.Len(t, store.outbox, before)

	// Touching the boundary only is fine: checkout day == check-in day.
	_, err = s.Create(context.Background(), input(unit, "2024-06-05", "2024-06-08"))
	require.NoError(t, err)

	// A different unit is never blocked.
	_, err = s.Create(context.Background(), input(uuid.New(), "2024-06-03", "2024-06-07"))
	require.NoError(t, err)
}

func TestCreate_RejectedBookingFreesCalendar(t *testing.T) {
	store := newFakeStore()
	s := newSvc(store, day("2024-05-01"))
	unit := uuid.New()

	b, err := s.Create(context.Background(), input(unit, "2024-06-01", "2024-06-05"))
	require.NoError(t, err)
	_, err = s.Transition(context.Background(), b.ID, domain.StatusRejected)
	require.NoError(t, err)

	_, err = s.Create(context.Background(), input(unit, "2024-06-01", "2024-06-05"))
	require.NoError(t, err, "rejected bookings do not occupy the calendar")
}

func TestCreate_RollbackLeavesNoEvents(t *testing.T) {
	store := newFakeStore()
	s := newSvc(store, day("2024-05-01"))

	store.failTx = true
	_, err := s.Create(context.Background(), input(uuid.New(), "2024-06-01", "2024-06-05"))
	require.Error(t, err)
	require.Empty(t, store.bookings)
	require.Empty(t, store.outbox)
}

func TestTransition(t *testing.T) {
	store := newFakeStore()
	s := newSvc(store, day("2024-05-01"))

	b, err := s.Create(context.Background(), input(uuid.New(), "2024-06-01", "2024-06-05"))
	require.NoError(t, err)

	got, err := s.Transition(context.Background(), b.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, got.Status)
	require.Len(t, store.eventsOfType(domain.EvBookingConfirmed), 1)

	// Unknown booking.
	_, err = s.Transition(context.Background(), uuid.New(), domain.StatusConfirmed)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_TerminalStateIsFinal(t *testing.T) {
	store := newFakeStore()
	s := newSvc(store, day("2024-05-01"))

	b, err := s.Create(context.Background(), input(uuid.New(), "2024-06-01", "2024-06-05"))
	require.NoError(t, err)
	_, err = s.Transition(context.Background(), b.ID, domain.StatusRejected)
	require.NoError(t, err)

	before := len(store.outbox)
	for _, to := range []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCompleted, domain.StatusPending} {
		_, err = s.Transition(context.Background(), b.ID, to)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
	}

	got, err := s.Get(context.Background(), b.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, got.Status, "row must not be mutated")
	require.Len(t, store.outbox, before, "no event may be emitted")
}

func TestExpireOverdue_Idempotent(t *testing.T) {
	store := newFakeStore()
	s := newSvc(store, day("2024-05-01"))

	b, err := s.Create(context.Background(), input(uuid.New(), "2024-06-01", "2024-06-05"))
	require.NoError(t, err)
	_, err = s.Transition(context.Background(), b.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	// Still running on the checkout day itself.
	n, err := s.ExpireOverdue(context.Background(), day("2024-06-05"))
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = s.ExpireOverdue(context.Background(), day("2024-06-06"))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := s.Get(context.Background(), b.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, got.Status)
	require.Len(t, store.eventsOfType(domain.EvBookingCompleted), 1)

	// Second run: same end state, no re-emitted events.
	n, err = s.ExpireOverdue(context.Background(), day("2024-06-07"))
	require.NoError(t, err)
	require.Zero(t, n)
	require.Len(t, store.eventsOfType(domain.EvBookingCompleted), 1)
}

// Randomized creation attempts must never leave two overlapping active
// bookings persisted for the same unit.
func TestCreate_NoOverlapInvariant(t *testing.T) {
	store := newFakeStore()
	s := newSvc(store, day("2024-05-01"))
	unit := uuid.New()
	rng := rand.New(rand.NewSource(7))
	base := day("2024-06-01")

	for i := 0; i < 300; i++ {
		start := base.AddDate(0, 0, rng.Intn(40))
		end := start.AddDate(0, 0, 1+rng.Intn(10))
		_, err := s.Create(context.Background(), service.CreateBookingInput{
			UnitID:        unit,
			GuestID:       uuid.New(),
			StartDate:     start,
			EndDate:       end,
			PriceAmount:   1000,
			PriceCurrency: "LYD",
		})
		if err != nil {
			require.ErrorIs(t, err, domain.ErrOverlap)
		}
	}

	var active []*domain.Booking
	for _, b := range store.bookings {
		if b.Active() {
			active = append(active, b)
		}
	}
	for i := range active {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			require.False(t,
				domain.Overlaps(a.StartDate, a.EndDate, b.StartDate, b.EndDate),
				"bookings [%s,%s) and [%s,%s) overlap",
				a.StartDate.Format(time.DateOnly), a.EndDate.Format(time.DateOnly),
				b.StartDate.Format(time.DateOnly), b.EndDate.Format(time.DateOnly))
		}
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{})
}

// CreateWithNoOverlap inserts b and its outbox rows in one transaction,
// failing with domain.ErrOverlap when an active booking already occupies part
// of the range. Candidate rows are locked so two concurrent requests for the
// same unit and overlapping dates cannot both pass the check.
func (r *BookingRepo) CreateWithNoOverlap(ctx context.Context, b *domain.Booking, events []domain.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Booking
		err := tx.Model(&domain.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("unit_id = ? AND status IN ?", b.UnitID, domain.ActiveStatuses).
			Where("start_date < ? AND end_date > ?", b.EndDate, b.StartDate).
			Take(&existing).Error
		if err == nil {
			return domain.ErrOverlap
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("overlap check: %w", err)
		}

		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		return AppendPending(tx, events)
	})
}

// UpdateStatus loads the booking under a row lock, lets apply decide the
// transition and produce its events, then persists both in one transaction.
// apply returning an error rolls everything back.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, apply func(b *domain.Booking) ([]domain.Event, error)) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("load booking: %w", err)
		}

		events, err := apply(&b)
		if err != nil {
			return err
		}
		if err := tx.Save(&b).Error; err != nil {
			return fmt.Errorf("save booking: %w", err)
		}
		return AppendPending(tx, events)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindActiveOverlapping returns the active bookings for a unit whose ranges
// overlap [start, end).
func (r *BookingRepo) FindActiveOverlapping(ctx context.Context, unitID uuid.UUID, start, end time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND status IN ?", unitID, domain.ActiveStatuses).
		Where("start_date < ? AND end_date > ?", end, start).
		Order("start_date ASC").
		Find(&out).Error
	return out, err
}

// ListOverdue returns ids of confirmed bookings whose stay ended before now.
func (r *BookingRepo) ListOverdue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("status = ? AND end_date < ?", domain.StatusConfirmed, now).
		Order("end_date ASC").
		Pluck("id", &ids).Error
	return ids, err
}

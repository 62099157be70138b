package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
)

// AppendPending converts staged domain events into outbox rows inside the
// caller's transaction, so the events exist if and only if the state change
// commits. Serialization failure aborts the transaction; it is never retried.
func AppendPending(tx *gorm.DB, events []domain.Event) error {
	for _, ev := range events {
		msg, err := domain.NewOutboxMessage(ev)
		if err != nil {
			return err
		}
		if err := tx.Create(&msg).Error; err != nil {
			return fmt.Errorf("insert outbox row: %w", err)
		}
	}
	return nil
}

type OutboxRepo struct {
	db          *gorm.DB
	maxAttempts int
}

func NewOutboxRepo(db *gorm.DB, maxAttempts int) *OutboxRepo {
	return &OutboxRepo{db: db, maxAttempts: maxAttempts}
}

func (r *OutboxRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.OutboxMessage{})
}

// ClaimBatch returns up to limit undispatched messages, oldest first. Rows
// that reached the attempt cap stay in the table but are no longer claimed.
// SKIP LOCKED keeps concurrent dispatchers off the same rows.
func (r *OutboxRepo) ClaimBatch(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	var out []domain.OutboxMessage
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_at IS NULL AND attempts < ?", r.maxAttempts).
		Order("occurred_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkProcessed finalizes a delivered message. Already-processed rows are
// never touched again.
func (r *OutboxRepo) MarkProcessed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.OutboxMessage{}).
		Where("id = ? AND processed_at IS NULL", id).
		Updates(map[string]any{"processed_at": at, "last_error": nil}).Error
}

// MarkFailed records a delivery failure and bumps the attempt counter; the
// message stays pending for the next run.
func (r *OutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, errText string) error {
	return r.db.WithContext(ctx).Model(&domain.OutboxMessage{}).
		Where("id = ? AND processed_at IS NULL", id).
		Updates(map[string]any{
			"last_error": errText,
			"attempts":   gorm.Expr("attempts + 1"),
		}).Error
}

// Quarantined returns messages that exhausted their attempts without being
// processed. They are kept for operator inspection, never deleted here.
func (r *OutboxRepo) Quarantined(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	var out []domain.OutboxMessage
	err := r.db.WithContext(ctx).
		Where("processed_at IS NULL AND attempts >= ?", r.maxAttempts).
		Order("occurred_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

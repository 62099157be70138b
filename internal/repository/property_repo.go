package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
)

type PropertyRepo struct{ db *gorm.DB }

func NewPropertyRepo(db *gorm.DB) *PropertyRepo {
	return &PropertyRepo{db: db}
}

func (r *PropertyRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Property{})
}

// CreateWithEvents inserts the property and its outbox rows atomically.
func (r *PropertyRepo) CreateWithEvents(ctx context.Context, p *domain.Property, events []domain.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("insert property: %w", err)
		}
		return AppendPending(tx, events)
	})
}

func (r *PropertyRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	var p domain.Property
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Exists reports whether a property row is present for id.
func (r *PropertyRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Property{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

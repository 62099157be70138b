package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
	"github.com/Motalib01/Ihjizely-sub000/pkg/clock"
)

type PropertyStore interface {
	CreateWithEvents(ctx context.Context, p *domain.Property, events []domain.Event) error
	ByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

type CreatePropertyInput struct {
	OwnerID    uuid.UUID
	Title      string
	Type       domain.PropertyType
	Details    datatypes.JSON
	Images     datatypes.JSON
	Facilities datatypes.JSON
}

type PropertySvc struct {
	store PropertyStore
	clk   clock.Clock
}

func NewPropertySvc(store PropertyStore, clk clock.Clock) *PropertySvc {
	return &PropertySvc{store: store, clk: clk}
}

// Create persists a visible property and its property.created event in one
// transaction.
func (s *PropertySvc) Create(ctx context.Context, in CreatePropertyInput) (*domain.Property, error) {
	if in.Title == "" {
		return nil, errors.New("title is required")
	}
	if !domain.KnownPropertyType(in.Type) {
		return nil, fmt.Errorf("unknown property type %q", in.Type)
	}

	now := s.clk.Now()
	p := &domain.Property{
		ID:         uuid.New(),
		OwnerID:    in.OwnerID,
		Title:      in.Title,
		Type:       in.Type,
		Details:    in.Details,
		Images:     in.Images,
		Facilities: in.Facilities,
		Status:     domain.PropertyVisible,
		CreatedAt:  now,
	}
	ev := domain.PropertyCreated{PropertyID: p.ID, OwnerID: p.OwnerID, Type: p.Type, At: now}
	if err := s.store.CreateWithEvents(ctx, p, []domain.Event{ev}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertySvc) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	return s.store.ByID(ctx, id)
}

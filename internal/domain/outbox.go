package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxMessage is the durable form of a domain event. Rows are created in
// the same transaction as the state change that produced the event and are
// mutated only by the dispatcher. A row with non-nil ProcessedAt is final.
type OutboxMessage struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OccurredAt  time.Time      `gorm:"index"`
	EventType   string         `gorm:"size:64;index"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	ProcessedAt *time.Time     `gorm:"index"`
	LastError   *string
	Attempts    int `gorm:"not null;default:0"`
}

func (OutboxMessage) TableName() string { return "outbox_messages" }

// NewOutboxMessage serializes ev into a pending outbox row. A serialization
// failure here is a programmer error and must abort the surrounding
// transaction.
func NewOutboxMessage(ev Event) (OutboxMessage, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return OutboxMessage{}, fmt.Errorf("serialize event %s: %w", ev.EventName(), err)
	}
	return OutboxMessage{
		ID:         uuid.New(),
		OccurredAt: ev.OccurredAt(),
		EventType:  ev.EventName(),
		Payload:    datatypes.JSON(body),
	}, nil
}

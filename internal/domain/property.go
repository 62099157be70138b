package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PropertyType discriminates the kind of bookable unit. Type-specific
// attributes live in Property.Details keyed by this value instead of a
// subclass per type.
type PropertyType string

const (
	PropertyApartment PropertyType = "APARTMENT"
	PropertyChalet    PropertyType = "CHALET"
	PropertyHotelRoom PropertyType = "HOTEL_ROOM"
	PropertyEventHall PropertyType = "EVENT_HALL"
	PropertyRestHouse PropertyType = "REST_HOUSE"
)

// KnownPropertyType reports whether t is one of the supported discriminators.
func KnownPropertyType(t PropertyType) bool {
	switch t {
	case PropertyApartment, PropertyChalet, PropertyHotelRoom, PropertyEventHall, PropertyRestHouse:
		return true
	}
	return false
}

type PropertyStatus string

const (
	PropertyVisible PropertyStatus = "VISIBLE"
	PropertyHidden  PropertyStatus = "HIDDEN"
)

type Property struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID      `gorm:"type:uuid;index"`
	Title      string         `gorm:"size:255"`
	Type       PropertyType   `gorm:"size:32;index"`
	Details    datatypes.JSON `gorm:"type:jsonb"` // type-specific attributes
	Images     datatypes.JSON `gorm:"type:jsonb"`
	Facilities datatypes.JSON `gorm:"type:jsonb"`
	Status     PropertyStatus `gorm:"size:16;index"`
	CreatedAt  time.Time
}

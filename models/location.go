package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner kinds a Location may be attached to. One location table serves every
// owner type; referential integrity across the (OwnerKind, OwnerID) pair is
// the location service's responsibility, not the database's.
const (
	OwnerKindActivity = "activity"
	OwnerKindPost     = "post"
)

type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerKind string    `gorm:"type:varchar(20);not null;index:idx_locations_owner" json:"ownerKind"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_locations_owner" json:"ownerId"`
	Latitude  float64   `gorm:"type:decimal(9,6);not null" json:"latitude"`
	Longitude float64   `gorm:"type:decimal(9,6);not null" json:"longitude"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

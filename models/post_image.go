package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostImage struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID uuid.UUID `gorm:"type:uuid;not null;index" json:"postId"`
	URL    string    `gorm:"not null" json:"url"`
}

func (pi *PostImage) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sender tags on ConversationMessage.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ConversationMessage is one entry in a user's append-only assistant log.
type ConversationMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Sender    string    `gorm:"type:varchar(10);not null" json:"sender"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *ConversationMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Known attendance statuses. The field itself stays a free string: the status
// set is open and any non-empty value is accepted.
const (
	AttendancePending   = "pending"
	AttendanceConfirmed = "confirmed"
	AttendanceCancelled = "cancelled"
)

// Subscription enrolls a user in a post's event. AttendanceStatus starts
// empty and is only set through an explicit update.
type Subscription struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_post" json:"userId"`
	PostID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_post" json:"postId"`
	AttendanceStatus string    `gorm:"type:varchar(50)" json:"attendanceStatus"`
	CreatedAt        time.Time `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Post Post `json:"-" gorm:"foreignKey:PostID"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

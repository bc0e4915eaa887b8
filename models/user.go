package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender codes accepted on User.Gender.
const (
	GenderMale        = "M"
	GenderFemale      = "F"
	GenderOther       = "O"
	GenderUndisclosed = "N"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-"` // Don't expose password in JSON
	FirstName      string     `gorm:"type:varchar(100)" json:"firstName"`
	LastName       string     `gorm:"type:varchar(100)" json:"lastName"`
	BirthDate      *time.Time `json:"birthDate"`
	Gender         string     `gorm:"type:varchar(1);default:'N'" json:"gender"`
	ProfileImage   string     `json:"profileImage"`
	Bio            string     `gorm:"type:text" json:"bio"`
	Latitude       *float64   `gorm:"type:decimal(9,6)" json:"latitude"`
	Longitude      *float64   `gorm:"type:decimal(9,6)" json:"longitude"`
	City           string     `gorm:"type:varchar(100)" json:"city"`
	Country        string     `gorm:"type:varchar(100)" json:"country"`
	PreferredTheme string     `gorm:"type:varchar(100)" json:"preferredTheme"`
	Verified       bool       `gorm:"default:false" json:"verified"`
	CreatedAt      time.Time  `json:"createdAt"`

	Activities []Activity `json:"activities,omitempty" gorm:"foreignKey:UserID"`
	Posts      []Post     `json:"posts,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate assigns the identity UUID. It is never changed afterwards.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

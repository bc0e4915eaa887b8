package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category codes on Post.Category.
const (
	CategorySocial   = "SOC"
	CategoryCultural = "CUL"
	CategorySports   = "DEP"
	CategoryAcademic = "ACA"
	CategoryOther    = "OTR"
)

// Privacy codes on Post.Privacy.
const (
	PrivacyPublic  = "PUB"
	PrivacyPrivate = "PRI"
	PrivacyFriends = "AMI"
)

// Status codes on Post.Status.
const (
	StatusActive    = "VIG"
	StatusFinished  = "FIN"
	StatusCancelled = "CAN"
)

// CategoryNames maps category codes to their display names, used by the
// statistics endpoint.
var CategoryNames = map[string]string{
	CategorySocial:   "Social",
	CategoryCultural: "Cultural",
	CategorySports:   "Sports",
	CategoryAcademic: "Academic",
	CategoryOther:    "Other",
}

// Post is an event publication. LikeCount and CommentCount are denormalized
// mirrors of the like/comment tables and must only be mutated through the
// engagement service.
type Post struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"userId"`
	User         User        `json:"-" gorm:"foreignKey:UserID"`
	Title        string      `gorm:"type:varchar(200);not null" json:"title"`
	Description  string      `gorm:"type:text" json:"description"`
	Category     string      `gorm:"type:varchar(3);default:'OTR'" json:"category"`
	Privacy      string      `gorm:"type:varchar(3);default:'PUB'" json:"privacy"`
	Status       string      `gorm:"type:varchar(3);default:'VIG'" json:"status"`
	Terms        string      `gorm:"type:text" json:"terms"`
	Capacity     int         `json:"capacity"`
	EventDate    time.Time   `json:"eventDate"`
	LikeCount    int         `gorm:"not null;default:0" json:"likeCount"`
	CommentCount int         `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt    time.Time   `json:"createdAt"`
	Images       []PostImage `json:"images,omitempty" gorm:"foreignKey:PostID"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

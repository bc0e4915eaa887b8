package services

import (
	"errors"
	"time"

	"github.com/geo-planner/api-go/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionService enrolls users in posts and tracks attendance status.
type SubscriptionService struct {
	DB *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{DB: db}
}

// Subscribe creates a subscription for (userID, postID). At most one
// subscription may exist per pair: the pre-check gives the common case a
// clean error and the unique index backs it up under races. The attendance
// status starts empty until set explicitly.
func (ss *SubscriptionService) Subscribe(userID, postID uuid.UUID) (*models.Subscription, error) {
	var post models.Post
	if err := ss.DB.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var existing int64
	if err := ss.DB.Model(&models.Subscription{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateSubscription
	}

	subscription := models.Subscription{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	if err := ss.DB.Create(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSubscription
		}
		return nil, err
	}
	return &subscription, nil
}

// SetAttendance overwrites the attendance status. The status set is open:
// any non-empty value is accepted and no transition rules apply, including
// from cancelled. Empty values are rejected with ErrMissingStatus.
func (ss *SubscriptionService) SetAttendance(subscriptionID uuid.UUID, status string) (*models.Subscription, error) {
	if status == "" {
		return nil, ErrMissingStatus
	}

	var subscription models.Subscription
	if err := ss.DB.First(&subscription, "id = ?", subscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	if err := ss.DB.Model(&subscription).
		Update("attendance_status", status).Error; err != nil {
		return nil, err
	}
	subscription.AttendanceStatus = status
	return &subscription, nil
}

// Get returns one subscription by id.
func (ss *SubscriptionService) Get(subscriptionID uuid.UUID) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := ss.DB.First(&subscription, "id = ?", subscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

// Unsubscribe removes a subscription.
func (ss *SubscriptionService) Unsubscribe(subscriptionID uuid.UUID) error {
	result := ss.DB.Where("id = ?", subscriptionID).Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

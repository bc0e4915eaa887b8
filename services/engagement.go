package services

import (
	"errors"
	"time"

	"github.com/geo-planner/api-go/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EngagementService maintains Post.LikeCount and Post.CommentCount as mirrors
// of the like/comment tables. All counter deltas are single-statement atomic
// updates and every insert/delete commits in the same transaction as its
// counter delta, so concurrent engagement on one post never loses updates and
// a crash cannot leave the counter out of step with the rows.
//
// No other code path may write these two columns.
type EngagementService struct {
	DB *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{DB: db}
}

// AddLike inserts a like and increments the post's like counter. The
// existence pre-check is a fast path; the composite unique index on
// (user_id, post_id) is what actually guarantees one like per pair under
// concurrent duplicate requests.
func (es *EngagementService) AddLike(userID, postID uuid.UUID) (*models.Like, error) {
	var post models.Post
	if err := es.DB.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var existing int64
	if err := es.DB.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateLike
	}

	like := models.Like{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}

	tx := es.DB.Begin()
	if err := tx.Create(&like).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateLike
		}
		return nil, err
	}
	if err := tx.Model(&models.Post{}).Where("id = ?", postID).
		Update("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// RemoveLike deletes a like and decrements the post's like counter in one
// transaction. The decrement is guarded so the counter never goes negative.
func (es *EngagementService) RemoveLike(likeID uuid.UUID) error {
	var like models.Like
	if err := es.DB.First(&like, "id = ?", likeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLikeNotFound
		}
		return err
	}

	tx := es.DB.Begin()
	if err := tx.Delete(&like).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&models.Post{}).
		Where("id = ? AND like_count > 0", like.PostID).
		Update("like_count", gorm.Expr("like_count - ?", 1)).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// AddComment inserts a comment and increments the post's comment counter.
// Multiple comments per user per post are allowed.
func (es *EngagementService) AddComment(userID, postID uuid.UUID, body string) (*models.Comment, error) {
	if body == "" {
		return nil, ErrMissingBody
	}

	var post models.Post
	if err := es.DB.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		UserID:    userID,
		PostID:    postID,
		Body:      body,
		CreatedAt: time.Now(),
	}

	tx := es.DB.Begin()
	if err := tx.Create(&comment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&models.Post{}).Where("id = ?", postID).
		Update("comment_count", gorm.Expr("comment_count + ?", 1)).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// RemoveComment deletes a comment and decrements the post's comment counter
// in one transaction, clamped at zero.
func (es *EngagementService) RemoveComment(commentID uuid.UUID) error {
	var comment models.Comment
	if err := es.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	tx := es.DB.Begin()
	if err := tx.Delete(&comment).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&models.Post{}).
		Where("id = ? AND comment_count > 0", comment.PostID).
		Update("comment_count", gorm.Expr("comment_count - ?", 1)).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// ListLikes returns the likes on a post.
func (es *EngagementService) ListLikes(postID uuid.UUID) ([]models.Like, error) {
	var likes []models.Like
	err := es.DB.Where("post_id = ?", postID).Order("created_at").Find(&likes).Error
	return likes, err
}

// ListComments returns the comments on a post in creation order.
func (es *EngagementService) ListComments(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := es.DB.Where("post_id = ?", postID).Order("created_at").Find(&comments).Error
	return comments, err
}

// HasLiked reports whether the user already likes the post.
func (es *EngagementService) HasLiked(userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := es.DB.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

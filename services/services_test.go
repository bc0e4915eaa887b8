package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/geo-planner/api-go/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Post{},
		&models.PostImage{},
		&models.Location{},
		&models.Like{},
		&models.Comment{},
		&models.Subscription{},
		&models.ConversationMessage{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		Gender:       models.GenderUndisclosed,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, owner models.User, title string) models.Post {
	t.Helper()
	post := models.Post{
		UserID:    owner.ID,
		Title:     title,
		Category:  models.CategoryOther,
		Privacy:   models.PrivacyPublic,
		Status:    models.StatusActive,
		Capacity:  10,
		EventDate: time.Now().Add(48 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func createActivity(t *testing.T, db *gorm.DB, owner models.User, title string) models.Activity {
	t.Helper()
	activity := models.Activity{
		UserID:       owner.ID,
		Title:        title,
		ActivityDate: time.Now().Add(24 * time.Hour),
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&activity).Error)
	return activity
}

func likeCount(t *testing.T, db *gorm.DB, postID uuid.UUID) int {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, "id = ?", postID).Error)
	return post.LikeCount
}

func commentCount(t *testing.T, db *gorm.DB, postID uuid.UUID) int {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, "id = ?", postID).Error)
	return post.CommentCount
}

package controllers

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/models"
	"github.com/geo-planner/api-go/services"
	"github.com/geo-planner/api-go/storage"
)

type UserController struct {
	DB        *gorm.DB
	Media     storage.MediaStore
	Locations *services.LocationService
}

type UpdateUserRequest struct {
	FirstName      *string  `json:"firstName"`
	LastName       *string  `json:"lastName"`
	Gender         *string  `json:"gender"`
	Bio            *string  `json:"bio"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	City           *string  `json:"city"`
	Country        *string  `json:"country"`
	PreferredTheme *string  `json:"preferredTheme"`
}

func NewUserController(db *gorm.DB, media storage.MediaStore) *UserController {
	return &UserController{
		DB:        db,
		Media:     media,
		Locations: services.NewLocationService(db),
	}
}

// GetUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (uc *UserController) GetUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get one user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Router /users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update profile fields
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Router /users/{id} [put]
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.PreferredTheme != nil {
		updates["preferred_theme"] = *req.PreferredTheme
	}

	if len(updates) > 0 {
		if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

// UploadProfileImage godoc
// @Summary Upload a profile image
// @Description Stores the new image and removes the previously stored one
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Router /users/{id}/profile-image [post]
func (uc *UserController) UploadProfileImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	// Replace-then-persist: the old stored image goes away before the new
	// path is written. File removal is best-effort and never blocks the row
	// update.
	if user.ProfileImage != "" {
		if err := uc.Media.Delete(user.ProfileImage); err != nil {
			log.Printf("failed to delete previous profile image %s: %v", user.ProfileImage, err)
		}
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer src.Close()

	key := "profiles/" + user.ID.String() + "/" + uuid.New().String() + filepath.Ext(file.Filename)
	stored, err := uc.Media.Save(key, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	if err := uc.DB.Model(&user).Update("profile_image", stored).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	user.ProfileImage = stored

	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user and everything it owns
// @Description Removes owned activities and posts with their locations,
// images, likes, comments and subscriptions, then the account itself
// @Tags users
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Stored file keys to remove after the rows are gone.
	var orphanedFiles []string
	if user.ProfileImage != "" {
		orphanedFiles = append(orphanedFiles, user.ProfileImage)
	}

	tx := uc.DB.Begin()

	// Activities and their locations.
	var activities []models.Activity
	if err := tx.Where("user_id = ?", id).Find(&activities).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	for _, activity := range activities {
		if err := uc.Locations.DetachAll(tx, models.OwnerKindActivity, activity.ID); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
	}
	if err := tx.Where("user_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	// Posts with their locations, images and engagement rows.
	var posts []models.Post
	if err := tx.Where("user_id = ?", id).Find(&posts).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	for _, post := range posts {
		if err := uc.Locations.DetachAll(tx, models.OwnerKindPost, post.ID); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}

		var images []models.PostImage
		if err := tx.Where("post_id = ?", post.ID).Find(&images).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		for _, image := range images {
			orphanedFiles = append(orphanedFiles, image.URL)
		}

		for _, model := range []interface{}{&models.PostImage{}, &models.Like{}, &models.Comment{}, &models.Subscription{}} {
			if err := tx.Where("post_id = ?", post.ID).Delete(model).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
				return
			}
		}
	}
	if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	// The user's own likes and comments on other posts, with counter
	// decrements so the mirrors stay exact.
	var likes []models.Like
	if err := tx.Where("user_id = ?", id).Find(&likes).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	for _, like := range likes {
		if err := tx.Model(&models.Post{}).
			Where("id = ? AND like_count > 0", like.PostID).
			Update("like_count", gorm.Expr("like_count - ?", 1)).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
	}
	if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	var comments []models.Comment
	if err := tx.Where("user_id = ?", id).Find(&comments).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	for _, comment := range comments {
		if err := tx.Model(&models.Post{}).
			Where("id = ? AND comment_count > 0", comment.PostID).
			Update("comment_count", gorm.Expr("comment_count - ?", 1)).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
	}
	if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	for _, model := range []interface{}{&models.Subscription{}, &models.ConversationMessage{}} {
		if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	// Best-effort file cleanup once the rows are durable.
	for _, key := range orphanedFiles {
		if err := uc.Media.Delete(key); err != nil {
			log.Printf("failed to delete stored file %s: %v", key, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deletedAt": time.Now()})
}

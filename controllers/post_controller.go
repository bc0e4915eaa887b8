package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/models"
	"github.com/geo-planner/api-go/services"
	"github.com/geo-planner/api-go/storage"
	"github.com/geo-planner/api-go/utils"
)

type PostController struct {
	DB         *gorm.DB
	Media      storage.MediaStore
	Locations  *services.LocationService
	Engagement *services.EngagementService
}

type CreatePostRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Category    string            `json:"category" binding:"omitempty,oneof=SOC CUL DEP ACA OTR"`
	Privacy     string            `json:"privacy" binding:"omitempty,oneof=PUB PRI AMI"`
	Terms       string            `json:"terms"`
	Capacity    int               `json:"capacity" binding:"required,min=1"`
	EventDate   time.Time         `json:"eventDate" binding:"required"`
	Locations   []LocationRequest `json:"locations"`
	ImageURLs   []string          `json:"imageUrls"`
}

type UpdatePostRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category" binding:"omitempty,oneof=SOC CUL DEP ACA OTR"`
	Privacy     *string    `json:"privacy" binding:"omitempty,oneof=PUB PRI AMI"`
	Status      *string    `json:"status" binding:"omitempty,oneof=VIG FIN CAN"`
	Terms       *string    `json:"terms"`
	Capacity    *int       `json:"capacity" binding:"omitempty,min=1"`
	EventDate   *time.Time `json:"eventDate"`
}

type postResponse struct {
	models.Post
	Locations []models.Location `json:"locations"`
	HasLiked  bool              `json:"hasLiked"`
}

func NewPostController(db *gorm.DB, media storage.MediaStore) *PostController {
	return &PostController{
		DB:         db,
		Media:      media,
		Locations:  services.NewLocationService(db),
		Engagement: services.NewEngagementService(db),
	}
}

func (pc *PostController) toResponse(post models.Post, viewerID uuid.UUID) postResponse {
	locations, err := pc.Locations.ListFor(models.OwnerKindPost, post.ID)
	if err != nil {
		locations = []models.Location{}
	}
	liked := false
	if viewerID != uuid.Nil {
		liked, _ = pc.Engagement.HasLiked(viewerID, post.ID)
	}
	return postResponse{Post: post, Locations: locations, HasLiked: liked}
}

// CreatePost godoc
// @Summary Create a post
// @Description Creates the post, its locations and image rows in one transaction
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post creation request"
// @Success 201 {object} postResponse
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}
	privacy := req.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}

	post := models.Post{
		UserID:      user.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Privacy:     privacy,
		Status:      models.StatusActive,
		Terms:       req.Terms,
		Capacity:    req.Capacity,
		EventDate:   req.EventDate,
		CreatedAt:   time.Now(),
	}

	// Post, locations and image rows commit together or not at all.
	tx := pc.DB.Begin()
	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	for _, loc := range req.Locations {
		if _, err := pc.Locations.Attach(tx, models.OwnerKindPost, post.ID, loc.Latitude, loc.Longitude); err != nil {
			tx.Rollback()
			if errors.Is(err, services.ErrInvalidOwner) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach location"})
			return
		}
	}
	for _, url := range req.ImageURLs {
		image := models.PostImage{PostID: post.ID, URL: url}
		if err := tx.Create(&image).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image"})
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	pc.DB.Preload("Images").First(&post, "id = ?", post.ID)
	c.JSON(http.StatusCreated, pc.toResponse(post, user.UserID))
}

// GetPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {array} postResponse
// @Router /posts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	user := utils.GetUser(c)

	var posts []models.Post
	query := pc.DB.Preload("Images").Order("created_at DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	response := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, pc.toResponse(post, user.UserID))
	}
	c.JSON(http.StatusOK, response)
}

// GetPost godoc
// @Summary Get one post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} postResponse
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	user := utils.GetUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var post models.Post
	if err := pc.DB.Preload("Images").First(&post, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, pc.toResponse(post, user.UserID))
}

// UpdatePost godoc
// @Summary Update a post
// @Description Updates post fields only; locations and counters are never touched here
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} postResponse
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Privacy != nil {
		updates["privacy"] = *req.Privacy
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Terms != nil {
		updates["terms"] = *req.Terms
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.EventDate != nil {
		updates["event_date"] = *req.EventDate
	}
	if len(updates) > 0 {
		if err := pc.DB.Model(&post).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
	}

	c.JSON(http.StatusOK, pc.toResponse(post, user.UserID))
}

// DeletePost godoc
// @Summary Delete a post
// @Description Detaches locations and removes images, likes, comments and
// subscriptions before the post row; stored image files are cleaned up
// best-effort afterwards
// @Tags posts
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var images []models.PostImage
	if err := pc.DB.Where("post_id = ?", id).Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	tx := pc.DB.Begin()
	if err := pc.Locations.DetachAll(tx, models.OwnerKindPost, post.ID); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	for _, model := range []interface{}{&models.PostImage{}, &models.Like{}, &models.Comment{}, &models.Subscription{}} {
		if err := tx.Where("post_id = ?", id).Delete(model).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
			return
		}
	}
	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	for _, image := range images {
		if err := pc.Media.Delete(image.URL); err != nil {
			log.Printf("failed to delete stored file %s: %v", image.URL, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

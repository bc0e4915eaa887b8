package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/models"
	"github.com/geo-planner/api-go/storage"
	"github.com/geo-planner/api-go/utils"
)

// UploadController hands out presigned PUT URLs for post images when the R2
// backend is configured, and records the image row once the client confirms
// the upload landed.
type UploadController struct {
	DB    *gorm.DB
	Media storage.MediaStore
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type ConfirmImageRequest struct {
	PostID uuid.UUID `json:"postId" binding:"required"`
	Key    string    `json:"key" binding:"required"`
}

func NewUploadController(db *gorm.DB, media storage.MediaStore) *UploadController {
	return &UploadController{DB: db, Media: media}
}

func (uc *UploadController) isValidImageType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}

// GetPresignedURL godoc
// @Summary Presign a post image upload
// @Tags uploads
// @Accept json
// @Produce json
// @Success 200 {object} PresignedURLResponse
// @Router /uploads/presign [post]
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)
	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !uc.isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported content type"})
		return
	}

	r2, ok := uc.Media.(*storage.R2Store)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Direct uploads require the R2 backend"})
		return
	}

	key := "posts/" + user.UserID.String() + "/" + uuid.New().String() + filepath.Ext(req.FileName)
	uploadURL, err := r2.PresignPut(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to presign upload"})
		return
	}

	c.JSON(http.StatusOK, PresignedURLResponse{
		UploadURL: uploadURL,
		Key:       key,
		ExpiresIn: 900,
	})
}

// ConfirmImage godoc
// @Summary Confirm an uploaded post image
// @Description Verifies the object exists and attaches it to the post
// @Tags uploads
// @Accept json
// @Produce json
// @Success 201 {object} models.PostImage
// @Router /uploads/confirm [post]
func (uc *UploadController) ConfirmImage(c *gin.Context) {
	var req ConfirmImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := uc.DB.First(&post, "id = ?", req.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	exists, err := uc.Media.Exists(req.Key)
	if err != nil || !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file not found"})
		return
	}

	image := models.PostImage{PostID: post.ID, URL: req.Key}
	if err := uc.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image"})
		return
	}
	c.JSON(http.StatusCreated, image)
}

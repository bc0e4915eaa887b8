package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/models"
	"github.com/geo-planner/api-go/services"
	"github.com/geo-planner/api-go/utils"
)

type ActivityController struct {
	DB        *gorm.DB
	Locations *services.LocationService
}

type LocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

type CreateActivityRequest struct {
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	ActivityDate time.Time         `json:"activityDate" binding:"required"`
	Locations    []LocationRequest `json:"locations"`
}

type UpdateActivityRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	ActivityDate *time.Time `json:"activityDate"`
}

type activityResponse struct {
	models.Activity
	Locations []models.Location `json:"locations"`
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{
		DB:        db,
		Locations: services.NewLocationService(db),
	}
}

func (ac *ActivityController) withLocations(activity models.Activity) activityResponse {
	locations, err := ac.Locations.ListFor(models.OwnerKindActivity, activity.ID)
	if err != nil {
		locations = []models.Location{}
	}
	return activityResponse{Activity: activity, Locations: locations}
}

// CreateActivity godoc
// @Summary Create an agenda activity
// @Description Creates the activity and its locations in one transaction
// @Tags activities
// @Accept json
// @Produce json
// @Success 201 {object} activityResponse
// @Router /activities [post]
func (ac *ActivityController) CreateActivity(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity := models.Activity{
		UserID:       user.UserID,
		Title:        req.Title,
		Description:  req.Description,
		ActivityDate: req.ActivityDate,
		CreatedAt:    time.Now(),
	}

	// Owner and locations commit together or not at all.
	tx := ac.DB.Begin()
	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}
	for _, loc := range req.Locations {
		if _, err := ac.Locations.Attach(tx, models.OwnerKindActivity, activity.ID, loc.Latitude, loc.Longitude); err != nil {
			tx.Rollback()
			if errors.Is(err, services.ErrInvalidOwner) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach location"})
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	c.JSON(http.StatusCreated, ac.withLocations(activity))
}

// GetActivities godoc
// @Summary List activities
// @Tags activities
// @Produce json
// @Success 200 {array} activityResponse
// @Router /activities [get]
func (ac *ActivityController) GetActivities(c *gin.Context) {
	var activities []models.Activity
	query := ac.DB.Order("activity_date")
	if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching activities"})
		return
	}

	response := make([]activityResponse, 0, len(activities))
	for _, activity := range activities {
		response = append(response, ac.withLocations(activity))
	}
	c.JSON(http.StatusOK, response)
}

// GetActivity godoc
// @Summary Get one activity
// @Tags activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} activityResponse
// @Router /activities/{id} [get]
func (ac *ActivityController) GetActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity id"})
		return
	}

	var activity models.Activity
	if err := ac.DB.First(&activity, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}
	c.JSON(http.StatusOK, ac.withLocations(activity))
}

// UpdateActivity godoc
// @Summary Update an activity
// @Description Updates activity fields only; locations are never touched here
// @Tags activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} activityResponse
// @Router /activities/{id} [put]
func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity id"})
		return
	}

	var activity models.Activity
	if err := ac.DB.First(&activity, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	var req UpdateActivityRequest
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
	if req.ActivityDate != nil {
		updates["activity_date"] = *req.ActivityDate
	}
	if len(updates) > 0 {
		if err := ac.DB.Model(&activity).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
			return
		}
	}

	c.JSON(http.StatusOK, ac.withLocations(activity))
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Description Detaches every location before removing the activity row
// @Tags activities
// @Param id path string true "Activity ID"
// @Success 200 {object} map[string]interface{}
// @Router /activities/{id} [delete]
func (ac *ActivityController) DeleteActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity id"})
		return
	}

	var activity models.Activity
	if err := ac.DB.First(&activity, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	tx := ac.DB.Begin()
	if err := ac.Locations.DetachAll(tx, models.OwnerKindActivity, activity.ID); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}
	if err := tx.Delete(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

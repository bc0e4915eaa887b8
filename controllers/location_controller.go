package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/models"
)

// LocationController exposes the location table read/update/delete only.
// Locations are created exclusively as part of creating an owning activity or
// post, never through this surface, and the owner reference is immutable.
type LocationController struct {
	DB *gorm.DB
}

type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{DB: db}
}

// GetLocations godoc
// @Summary List locations
// @Tags locations
// @Produce json
// @Success 200 {array} models.Location
// @Router /locations [get]
func (lc *LocationController) GetLocations(c *gin.Context) {
	var locations []models.Location
	query := lc.DB
	if kind := c.Query("ownerKind"); kind != "" {
		query = query.Where("owner_kind = ?", kind)
	}
	if ownerID := c.Query("ownerId"); ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}
	if err := query.Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching locations"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GetLocation godoc
// @Summary Get one location
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} models.Location
// @Router /locations/{id} [get]
func (lc *LocationController) GetLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	var location models.Location
	if err := lc.DB.First(&location, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, location)
}

// UpdateLocation godoc
// @Summary Update a location's coordinates
// @Description Only latitude and longitude may change; the owner reference is read-only
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} models.Location
// @Router /locations/{id} [put]
func (lc *LocationController) UpdateLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	var location models.Location
	if err := lc.DB.First(&location, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if len(updates) > 0 {
		if err := lc.DB.Model(&location).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
			return
		}
	}

	c.JSON(http.StatusOK, location)
}

// DeleteLocation godoc
// @Summary Delete a location
// @Tags locations
// @Param id path string true "Location ID"
// @Success 200 {object} map[string]interface{}
// @Router /locations/{id} [delete]
func (lc *LocationController) DeleteLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	result := lc.DB.Where("id = ?", id).Delete(&models.Location{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

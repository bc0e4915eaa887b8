package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/models"
	"github.com/geo-planner/api-go/services"
	"github.com/geo-planner/api-go/utils"
)

type SubscriptionController struct {
	DB            *gorm.DB
	Subscriptions *services.SubscriptionService
}

type SubscribeRequest struct {
	PostID uuid.UUID `json:"postId" binding:"required"`
}

type SetAttendanceRequest struct {
	AttendanceStatus string `json:"attendanceStatus"`
}

func NewSubscriptionController(db *gorm.DB) *SubscriptionController {
	return &SubscriptionController{
		DB:            db,
		Subscriptions: services.NewSubscriptionService(db),
	}
}

// Subscribe godoc
// @Summary Subscribe to a post's event
// @Description At most one subscription per user per post
// @Tags subscriptions
// @Accept json
// @Produce json
// @Success 201 {object} models.Subscription
// @Router /subscriptions [post]
func (sc *SubscriptionController) Subscribe(c *gin.Context) {
	user := utils.GetUser(c)
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription, err := sc.Subscriptions.Subscribe(user.UserID, req.PostID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscription)
}

// SetAttendance godoc
// @Summary Update attendance status
// @Description Requires a non-empty attendanceStatus; any value is accepted
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} models.Subscription
// @Router /subscriptions/{id} [patch]
func (sc *SubscriptionController) SetAttendance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription id"})
		return
	}

	var req SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription, err := sc.Subscriptions.SetAttendance(id, req.AttendanceStatus)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscription)
}

// GetSubscriptions godoc
// @Summary List the caller's subscriptions
// @Tags subscriptions
// @Produce json
// @Success 200 {array} models.Subscription
// @Router /subscriptions [get]
func (sc *SubscriptionController) GetSubscriptions(c *gin.Context) {
	user := utils.GetUser(c)

	var subscriptions []models.Subscription
	query := sc.DB.Where("user_id = ?", user.UserID).Order("created_at")
	if postID := c.Query("postId"); postID != "" {
		query = query.Where("post_id = ?", postID)
	}
	if err := query.Find(&subscriptions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching subscriptions"})
		return
	}
	c.JSON(http.StatusOK, subscriptions)
}

// GetSubscription godoc
// @Summary Get one subscription
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} models.Subscription
// @Router /subscriptions/{id} [get]
func (sc *SubscriptionController) GetSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription id"})
		return
	}

	subscription, err := sc.Subscriptions.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscription)
}

// Unsubscribe godoc
// @Summary Delete a subscription
// @Tags subscriptions
// @Param id path string true "Subscription ID"
// @Success 200 {object} map[string]interface{}
// @Router /subscriptions/{id} [delete]
func (sc *SubscriptionController) Unsubscribe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription id"})
		return
	}

	if err := sc.Subscriptions.Unsubscribe(id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

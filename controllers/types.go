package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geo-planner/api-go/services"
)

type StandardResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// serviceError maps service-layer sentinel errors to HTTP statuses:
// validation 400, not-found 404, duplicates 409. Anything else is a 500.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingStatus),
		errors.Is(err, services.ErrMissingBody):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrLikeNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrSubscriptionNotFound),
		errors.Is(err, services.ErrInvalidOwner):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateLike),
		errors.Is(err, services.ErrDuplicateSubscription):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

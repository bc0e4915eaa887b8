package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/geo-planner/api-go/controllers"
)

func SetupSubscriptionRoutes(protected *gin.RouterGroup, subscriptionController *controllers.SubscriptionController) {
	subscriptions := protected.Group("/subscriptions")
	{
		subscriptions.POST("", subscriptionController.Subscribe)
		subscriptions.GET("", subscriptionController.GetSubscriptions)
		subscriptions.GET("/:id", subscriptionController.GetSubscription)
		subscriptions.PATCH("/:id", subscriptionController.SetAttendance)
		subscriptions.DELETE("/:id", subscriptionController.Unsubscribe)
	}
}

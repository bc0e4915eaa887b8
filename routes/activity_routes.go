package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/geo-planner/api-go/controllers"
)

func SetupActivityRoutes(protected *gin.RouterGroup, activityController *controllers.ActivityController) {
	activities := protected.Group("/activities")
	{
		activities.POST("", activityController.CreateActivity)
		activities.GET("", activityController.GetActivities)
		activities.GET("/:id", activityController.GetActivity)
		activities.PUT("/:id", activityController.UpdateActivity)
		activities.DELETE("/:id", activityController.DeleteActivity)
	}
}

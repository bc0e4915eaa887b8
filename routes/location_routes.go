package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/geo-planner/api-go/controllers"
)

// Locations have no create endpoint: rows only come into existence as part
// of creating an owning activity or post.
func SetupLocationRoutes(protected *gin.RouterGroup, locationController *controllers.LocationController) {
	locations := protected.Group("/locations")
	{
		locations.GET("", locationController.GetLocations)
		locations.GET("/:id", locationController.GetLocation)
		locations.PUT("/:id", locationController.UpdateLocation)
		locations.DELETE("/:id", locationController.DeleteLocation)
	}
}

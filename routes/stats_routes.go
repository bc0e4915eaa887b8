package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/geo-planner/api-go/controllers"
)

func SetupStatsRoutes(protected *gin.RouterGroup, statsController *controllers.StatsController) {
	protected.GET("/statistics", statsController.GetStatistics)
}

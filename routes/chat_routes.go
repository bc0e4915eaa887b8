package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/geo-planner/api-go/controllers"
)

func SetupChatRoutes(protected *gin.RouterGroup, chatController *controllers.ChatController) {
	chat := protected.Group("/chat")
	{
		chat.POST("", chatController.SendMessage)
		chat.GET("/history", chatController.GetHistory)
	}
}

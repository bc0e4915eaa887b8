package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/geo-planner/api-go/controllers"
)

func SetupInteractionRoutes(protected *gin.RouterGroup, interactionController *controllers.InteractionController) {
	posts := protected.Group("/posts")
	{
		posts.POST("/:id/likes", interactionController.LikePost)
		posts.GET("/:id/likes", interactionController.GetPostLikes)
		posts.POST("/:id/comments", interactionController.CommentPost)
		posts.GET("/:id/comments", interactionController.GetPostComments)
	}

	protected.DELETE("/likes/:id", interactionController.UnlikePost)
	protected.DELETE("/comments/:id", interactionController.DeleteComment)
}

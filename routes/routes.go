package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/chatbot"
	"github.com/geo-planner/api-go/controllers"
	"github.com/geo-planner/api-go/geocode"
	"github.com/geo-planner/api-go/middleware"
	"github.com/geo-planner/api-go/storage"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, media storage.MediaStore) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db, media)
	activityController := controllers.NewActivityController(db)
	postController := controllers.NewPostController(db, media)
	locationController := controllers.NewLocationController(db)
	interactionController := controllers.NewInteractionController(db)
	subscriptionController := controllers.NewSubscriptionController(db)
	statsController := controllers.NewStatsController(db, geocode.NewGeocoder())
	chatController := controllers.NewChatController(db, chatbot.NewClient())
	uploadController := controllers.NewUploadController(db, media)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		SetupUserRoutes(protected, userController)
		SetupActivityRoutes(protected, activityController)
		SetupPostRoutes(protected, postController)
		SetupLocationRoutes(protected, locationController)
		SetupInteractionRoutes(protected, interactionController)
		SetupSubscriptionRoutes(protected, subscriptionController)
		SetupStatsRoutes(protected, statsController)
		SetupChatRoutes(protected, chatController)
		SetupUploadRoutes(protected, uploadController)
	}
}

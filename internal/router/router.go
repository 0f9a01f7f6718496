package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/arifdn/inkpot/backend/internal/handlers"
	"github.com/arifdn/inkpot/backend/internal/middleware"
	"github.com/arifdn/inkpot/backend/internal/repositories"
	"github.com/arifdn/inkpot/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, firebaseAuthClient *auth.Client, cfg *config.Config) {
	db := mgClient.Database(cfg.DBName)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	blogRepo := repositories.NewMongoBlogRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	notificationRepo := repositories.NewMongoNotificationRepository(db)

	requireAuth := middleware.JWTAuthMiddleware()

	// Auth routes
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(e, requireAuth)
	log.Println("User routes configured.")

	// Blog routes
	blogHandler := handlers.NewBlogHandler(blogRepo, userRepo, commentRepo, notificationRepo)
	blogHandler.RegisterBlogRoutes(e, requireAuth)
	log.Println("Blog routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, blogRepo, notificationRepo, userRepo)
	commentHandler.RegisterCommentRoutes(e, requireAuth)
	log.Println("Comment routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(e, requireAuth)
	log.Println("Notification routes configured.")

	// Upload routes
	uploadHandler := handlers.NewUploadHandler(cfg.ImageKitPublicKey, cfg.ImageKitPrivateKey)
	uploadHandler.RegisterUploadRoutes(e)
	log.Println("Upload routes configured.")

	log.Println("All routes configured.")
}

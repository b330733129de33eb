package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	_ "elevatia-backend/docs"
	"elevatia-backend/identity-service/handlers"
	"elevatia-backend/shared/config"
	"elevatia-backend/shared/database"
	"elevatia-backend/shared/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	cfg := config.GetConfig()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(database.GetDB())

	// Rate limiter for credential endpoints
	rateLimiter := middleware.NewRateLimiter(30 * time.Minute)
	loginConfig := middleware.RateLimitConfig{
		MaxRequests:   cfg.GetRateLimitMaxRequests(),
		TimeWindow:    time.Duration(cfg.GetRateLimitTimeWindowSeconds()) * time.Second,
		BlockDuration: time.Duration(cfg.GetRateLimitBlockDurationMinutes()) * time.Minute,
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", rateLimiter.RateLimitMiddleware("login:", loginConfig), authHandler.Login)
		auth.POST("/register", rateLimiter.RateLimitMiddleware("register:", loginConfig), authHandler.Register)
		auth.POST("/validate", authHandler.Validate)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "identity",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(cfg.IdentityServiceURL, ":")[2]
	log.Printf("Identity Service starting on port %s...", port)
	router.Run(":" + port)
}

package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	_ "elevatia-backend/docs"
	"elevatia-backend/marketing-service/handlers"
	"elevatia-backend/shared/clients"
	"elevatia-backend/shared/config"
	"elevatia-backend/shared/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	config.LoadConfig()

	cfg := config.GetConfig()

	// Initialize handlers
	subscribeHandler := handlers.NewSubscribeHandler(clients.NewMarketingClient())

	// Rate limiter for the public subscribe endpoint
	rateLimiter := middleware.NewRateLimiter(30 * time.Minute)
	subscribeConfig := middleware.RateLimitConfig{
		MaxRequests:   cfg.GetRateLimitMaxRequests(),
		TimeWindow:    time.Duration(cfg.GetRateLimitTimeWindowSeconds()) * time.Second,
		BlockDuration: time.Duration(cfg.GetRateLimitBlockDurationMinutes()) * time.Minute,
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	// Public routes
	router.POST("/api/subscribe", rateLimiter.RateLimitMiddleware("subscribe:", subscribeConfig), subscribeHandler.Subscribe)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "marketing",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(cfg.MarketingServiceURL, ":")[2]
	log.Printf("Marketing Service starting on port %s...", port)
	router.Run(":" + port)
}

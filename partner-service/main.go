package main

import (
	"log"
	"net/http"
	"strings"

	_ "elevatia-backend/docs"
	"elevatia-backend/partner-service/handlers"
	"elevatia-backend/partner-service/middleware"
	"elevatia-backend/partner-service/services"
	"elevatia-backend/shared/config"
	"elevatia-backend/shared/database"
	"elevatia-backend/shared/identity"
	"elevatia-backend/shared/utils/authz"
	"elevatia-backend/shared/utils/cache"

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

	// Initialize resolution cache (optional; resolver falls back to DB)
	if err := cache.InitCacheManager(); err != nil {
		log.Printf("Warning: cache unavailable, resolving against database only: %v", err)
	}

	db := database.GetDB()
	gateway := identity.NewGateway(db)
	resolver := authz.NewResolver(db, gateway)

	// Logo storage (optional; logo endpoints degrade gracefully)
	logoService, err := services.NewLogoService()
	if err != nil {
		log.Printf("Warning: logo storage unavailable: %v", err)
		logoService = nil
	} else if err := logoService.TestConnection(); err != nil {
		log.Printf("Warning: logo storage unreachable: %v", err)
		logoService = nil
	}

	notifier := services.NewRequestNotifier()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, resolver)
	orgHandler := handlers.NewOrganizationHandler(db, resolver)
	adminHandler := handlers.NewAdminHandler(db, resolver, gateway)
	codeHandler := handlers.NewCodeHandler(db, resolver)
	pathHandler := handlers.NewPathHandler(db, resolver)
	requestHandler := handlers.NewPathRequestHandler(db, resolver, notifier)
	statsHandler := handlers.NewStatsHandler(db, resolver)
	userHandler := handlers.NewUserHandler(db, resolver)
	logoHandler := handlers.NewLogoHandler(db, resolver, logoService)
	eventsHandler := handlers.NewEventsHandler(resolver, notifier)

	router := gin.Default()

	// CORS for the dashboard frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.GetConfig().FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api/partners")
	api.Use(middleware.AuthMiddleware(gateway))
	{
		// Identity check
		api.GET("/auth", authHandler.WhoAmI)

		// Organizations
		api.GET("/organizations", orgHandler.ListOrganizations)
		api.POST("/organizations", orgHandler.CreateOrganization)
		api.GET("/organizations/:id", orgHandler.GetOrganization)
		api.PATCH("/organizations/:id", orgHandler.UpdateOrganization)
		api.POST("/organizations/:id/status", orgHandler.ToggleStatus)
		api.POST("/organizations/:id/logo", logoHandler.UploadLogo)
		api.DELETE("/organizations/:id/logo", logoHandler.DeleteLogo)

		// Team membership
		api.POST("/organizations/:id/admins", adminHandler.AddAdmin)
		api.DELETE("/organizations/:id/admins/:admin_id", adminHandler.RemoveAdmin)

		// Access codes
		api.GET("/organizations/:id/codes", codeHandler.ListCodes)
		api.POST("/organizations/:id/codes", codeHandler.CreateCode)
		api.PATCH("/organizations/:id/codes/:code_id", codeHandler.UpdateCode)
		api.POST("/redeem", codeHandler.RedeemCode)

		// Content paths
		api.GET("/organizations/:id/paths", pathHandler.ListPaths)
		api.POST("/organizations/:id/paths", pathHandler.CreatePath)
		api.PATCH("/organizations/:id/paths/:path_id", pathHandler.UpdatePath)
		api.DELETE("/organizations/:id/paths/:path_id", pathHandler.DeletePath)

		// Path requests
		api.GET("/organizations/:id/path-requests", requestHandler.ListPathRequests)
		api.POST("/organizations/:id/path-requests", requestHandler.SubmitPathRequest)
		api.GET("/path-requests", requestHandler.ListAllPathRequests)
		api.POST("/path-requests/:request_id/transition", requestHandler.TransitionPathRequest)

		// Stats and end users
		api.GET("/organizations/:id/stats", statsHandler.GetStats)
		api.GET("/organizations/:id/users", userHandler.ListUsers)

		// Live review events
		api.GET("/events", eventsHandler.Stream)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "partner",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(config.GetConfig().PartnerServiceURL, ":")[2]
	log.Printf("Partner Service starting on port %s...", port)
	router.Run(":" + port)
}

package main

import (
	"errors"
	"log"
	"os"

	"herospath/internal/auth"
	"herospath/internal/cache"
	"herospath/internal/database"
	"herospath/internal/handlers"
	"herospath/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env in development; production supplies real env vars
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Initialize auth
	if err := auth.InitCrypto(); err != nil {
		log.Fatal("Failed to initialize token encryption:", err)
	}
	if err := auth.InitOAuth(); err != nil {
		log.Fatal("Failed to initialize OAuth:", err)
	}

	// Place details enrichment is optional; saves still work without it
	if err := services.InitMapsClient(); err != nil {
		if errors.Is(err, services.ErrNoAPIKey) {
			log.Println("Warning: Google Maps client not configured, place enrichment disabled")
		} else {
			log.Fatal("Failed to initialize Google Maps client:", err)
		}
	}

	// Wire the saved-place store with its listing cache
	placeRepo := database.NewPlaceRepository(database.GetDB())
	placeStore := services.NewSavedPlaceStore(placeRepo, cache.New(services.PlaceCacheTTL))

	// Photo uploads are optional too
	imageService, err := services.NewImageService()
	if err != nil {
		log.Printf("Warning: Photo uploads disabled: %v", err)
	}

	handlers.Init(placeStore, imageService)

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	// CORS for the mobile app's web views and local development
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8081", "http://localhost:19006"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Auth routes (no auth required)
	router.GET("/auth/login", handlers.LoginHandler)
	router.GET("/auth/callback", handlers.GoogleCallbackHandler)
	router.POST("/auth/refresh", handlers.RefreshTokenHandler)

	// Public map style routes
	router.GET("/map-styles", handlers.GetMapStyles)
	router.GET("/map-styles/resolve", handlers.ResolveMapStyle)
	router.GET("/place-categories", handlers.GetPlaceCategories)

	// Protected routes (auth required)
	protected := router.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/auth/logout", handlers.LogoutHandler)
		protected.POST("/auth/token", handlers.IssueTokens)
		protected.GET("/auth/me", handlers.GetCurrentUser)
		protected.PUT("/auth/me/preferences", handlers.UpdatePreferences)

		// Saved places
		protected.GET("/places", handlers.GetSavedPlaces)
		protected.POST("/places", handlers.SavePlace)
		protected.GET("/places/search", handlers.SearchSavedPlaces)
		protected.GET("/places/:place_id", handlers.GetSavedPlaceByID)
		protected.GET("/places/:place_id/status", handlers.GetSavedPlaceStatus)
		protected.DELETE("/places/:place_id", handlers.UnsavePlace)

		// Journeys
		protected.POST("/journeys", handlers.CreateJourney)
		protected.GET("/journeys", handlers.GetJourneys)
		protected.GET("/journeys/:journey_id", handlers.GetJourneyByID)
		protected.DELETE("/journeys/:journey_id", handlers.DeleteJourney)
		protected.POST("/journeys/:journey_id/photos", handlers.UploadJourneyPhoto)
	}

	// Weekly digest emails
	services.NewDigestWorker().Start()

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

package handlers

import (
	"log"
	"net/http"

	"herospath/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	placeStore   *services.SavedPlaceStore
	imageService *services.ImageService
)

// Init wires the shared services into the handlers package. Called once
// from main before the router starts.
func Init(store *services.SavedPlaceStore, images *services.ImageService) {
	placeStore = store
	imageService = images
}

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// HomeHandler handles requests to the root path "/"
func HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to Hero's Path!")
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"herospath/internal/database"
	"herospath/internal/geo"
	"herospath/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// routeToPoints converts recorded route fixes to geo points
func routeToPoints(route []models.RoutePoint) []geo.Point {
	points := make([]geo.Point, len(route))
	for i, fix := range route {
		points[i] = geo.Point{Latitude: fix.Latitude, Longitude: fix.Longitude}
	}
	return points
}

// CreateJourney records a finished journey. Distance is computed here, once,
// from the route; clients never send their own total.
func CreateJourney(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.CreateJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, fmt.Sprintf("Invalid input: %s", err.Error()), err)
		return
	}

	name := req.Name
	if name == "" {
		name = "Journey on " + time.Now().Format("Jan 2, 2006")
	}

	var duration int64
	first, last := req.Route[0].Timestamp, req.Route[len(req.Route)-1].Timestamp
	if !first.IsZero() && !last.IsZero() && last.After(first) {
		duration = int64(last.Sub(first).Seconds())
	}

	journey := models.Journey{
		ID:       fmt.Sprintf("journey-%d", time.Now().UnixNano()),
		UserID:   userID,
		Name:     name,
		Route:    models.RouteList(req.Route),
		Distance: geo.TotalDistance(routeToPoints(req.Route)),
		Duration: duration,
	}

	db := database.GetDB()
	if err := db.Create(&journey).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to save journey", err)
		return
	}

	c.JSON(http.StatusCreated, journey)
}

// GetJourneys lists the authenticated user's journeys, newest first
func GetJourneys(c *gin.Context) {
	userID := c.GetString("user_id")

	db := database.GetDB()
	var journeys []models.Journey
	if err := db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&journeys).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch journeys", err)
		return
	}

	c.JSON(http.StatusOK, journeys)
}

// GetJourneyByID fetches a single journey with its full route
func GetJourneyByID(c *gin.Context) {
	userID := c.GetString("user_id")
	journeyID := c.Param("journey_id")

	db := database.GetDB()
	var journey models.Journey
	if err := db.Where("id = ? AND user_id = ?", journeyID, userID).
		First(&journey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Journey not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to fetch journey", err)
		return
	}

	c.JSON(http.StatusOK, journey)
}

// DeleteJourney removes a journey and its route
func DeleteJourney(c *gin.Context) {
	userID := c.GetString("user_id")
	journeyID := c.Param("journey_id")

	db := database.GetDB()
	result := db.Where("id = ? AND user_id = ?", journeyID, userID).
		Delete(&models.Journey{})
	if result.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete journey", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Journey not found",
			fmt.Errorf("journey %s not found for user", journeyID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Journey deleted"})
}

// UploadJourneyPhoto attaches an uploaded photo to a journey
func UploadJourneyPhoto(c *gin.Context) {
	userID := c.GetString("user_id")
	journeyID := c.Param("journey_id")

	if imageService == nil {
		handleError(c, http.StatusServiceUnavailable, "Photo uploads are not configured",
			errors.New("image service not initialized"))
		return
	}

	db := database.GetDB()
	var journey models.Journey
	if err := db.Where("id = ? AND user_id = ?", journeyID, userID).
		First(&journey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Journey not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to fetch journey", err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		handleError(c, http.StatusBadRequest, "photo file is required", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to read upload", err)
		return
	}
	defer file.Close()

	// 10 MB cap per photo
	if err := imageService.ValidateImageFile(file, 10<<20); err != nil {
		handleError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	url, err := imageService.UploadJourneyPhoto(file, fileHeader.Filename, userID, journeyID)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to upload photo", err)
		return
	}

	journey.Photos = append(journey.Photos, url)
	if err := db.Model(&journey).Update("photos", &journey.Photos).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to attach photo", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"photo_url": url})
}

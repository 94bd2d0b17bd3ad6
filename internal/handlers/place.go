package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"herospath/internal/models"
	"herospath/internal/places"
	"herospath/internal/services"

	"github.com/gin-gonic/gin"
)

// SavePlace saves (or overwrites) a place for the authenticated user
func SavePlace(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.SavePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, fmt.Sprintf("Invalid input: %s", err.Error()), err)
		return
	}

	if req.PlaceID == "" && req.ID == "" && req.Name == "" {
		handleError(c, http.StatusBadRequest, "A place id, id, or name is required",
			errors.New("empty save request"))
		return
	}

	// When the client only knows the Google place id, fill in the rest from
	// the Places API. Enrichment failures are not fatal; the record is saved
	// with defaults.
	if req.PlaceID != "" && (req.Name == "" || len(req.Types) == 0) {
		if err := services.EnrichSaveRequest(&req); err != nil {
			log.Printf("Warning: Failed to enrich place %s: %v", req.PlaceID, err)
		}
	}

	saved, err := placeStore.Save(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, http.StatusBadGateway, "Failed to save place", err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// GetSavedPlaces lists the authenticated user's saved places with optional
// category filter, sort, and limit
func GetSavedPlaces(c *gin.Context) {
	userID := c.GetString("user_id")

	var opts models.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	placesList, err := placeStore.Load(c.Request.Context(), userID, opts)
	if err != nil {
		handleError(c, http.StatusBadGateway, "Failed to fetch saved places", err)
		return
	}

	c.JSON(http.StatusOK, placesList)
}

// GetSavedPlaceByID fetches a single saved place
func GetSavedPlaceByID(c *gin.Context) {
	userID := c.GetString("user_id")
	placeID := c.Param("place_id")

	place, err := placeStore.Get(c.Request.Context(), userID, placeID)
	if err != nil {
		handleError(c, http.StatusBadGateway, "Failed to fetch place", err)
		return
	}
	if place == nil {
		handleError(c, http.StatusNotFound, "Place not found",
			fmt.Errorf("place %s not saved by user", placeID))
		return
	}

	c.JSON(http.StatusOK, place)
}

// UnsavePlace removes a place from the user's saved collection. Unsaving a
// place that was never saved succeeds.
func UnsavePlace(c *gin.Context) {
	userID := c.GetString("user_id")
	placeID := c.Param("place_id")

	if err := placeStore.Unsave(c.Request.Context(), userID, placeID); err != nil {
		handleError(c, http.StatusBadGateway, "Failed to unsave place", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place unsaved"})
}

// GetSavedPlaceStatus reports whether a place is saved. Follows the store's
// optimistic-false policy: a failed read reads as not saved.
func GetSavedPlaceStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	placeID := c.Param("place_id")

	saved := placeStore.IsSaved(c.Request.Context(), userID, placeID)

	c.JSON(http.StatusOK, gin.H{
		"place_id": placeID,
		"saved":    saved,
	})
}

// SearchSavedPlaces filters the user's saved places by a free-text term
func SearchSavedPlaces(c *gin.Context) {
	userID := c.GetString("user_id")
	term := c.Query("q")

	matched, err := placeStore.Search(c.Request.Context(), userID, term)
	if err != nil {
		handleError(c, http.StatusBadGateway, "Search failed", err)
		return
	}

	c.JSON(http.StatusOK, matched)
}

// GetPlaceCategories returns the category buckets and the icon for each
// sample type, so the client can build its filter UI
func GetPlaceCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":   places.Categories(),
		"default_icon": places.DefaultIcon,
	})
}

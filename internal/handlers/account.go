package handlers

import (
	"errors"
	"net/http"

	"herospath/internal/database"
	"herospath/internal/mapstyle"
	"herospath/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCurrentUser returns the authenticated user's account
func GetCurrentUser(c *gin.Context) {
	userID := c.GetString("user_id")

	db := database.GetDB()
	var account models.Account
	if err := db.Where("google_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Account not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve account", err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdatePreferences updates the user's display and map preferences
func UpdatePreferences(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.PreferredMapStyle != nil {
		// Unknown styles would silently resolve to standard on every render;
		// reject them here instead
		if !mapstyle.IsSupported(*req.PreferredMapStyle, mapstyle.PlatformAndroid) &&
			!mapstyle.IsSupported(*req.PreferredMapStyle, mapstyle.PlatformIOS) {
			handleError(c, http.StatusBadRequest, "Unknown map style",
				errors.New("unknown map style "+*req.PreferredMapStyle))
			return
		}
		updates["preferred_map_style"] = *req.PreferredMapStyle
	}
	if req.PreferredTheme != nil {
		updates["preferred_theme"] = *req.PreferredTheme
	}
	if req.DigestEnabled != nil {
		updates["digest_enabled"] = *req.DigestEnabled
	}

	if len(updates) == 0 {
		handleError(c, http.StatusBadRequest, "Nothing to update", errors.New("empty preferences update"))
		return
	}

	db := database.GetDB()
	result := db.Model(&models.Account{}).Where("google_id = ?", userID).Updates(updates)
	if result.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update preferences", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Account not found", errors.New("no account for user"))
		return
	}

	var account models.Account
	if err := db.Where("google_id = ?", userID).First(&account).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve account", err)
		return
	}

	c.JSON(http.StatusOK, account)
}

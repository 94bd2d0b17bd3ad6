package handlers

import (
	"net/http"

	"herospath/internal/database"
	"herospath/internal/mapstyle"
	"herospath/internal/models"

	"github.com/gin-gonic/gin"
)

// ResolveMapStyle resolves a style/theme/platform triple into rendering
// configuration. Missing style or theme fall back to the signed-in user's
// preferences when available, then to the defaults.
func ResolveMapStyle(c *gin.Context) {
	styleKey := c.Query("style")
	theme := c.Query("theme")
	platform := c.DefaultQuery("platform", string(mapstyle.PlatformAndroid))

	if userID := c.GetString("user_id"); userID != "" && (styleKey == "" || theme == "") {
		var account models.Account
		if err := database.GetDB().Where("google_id = ?", userID).First(&account).Error; err == nil {
			if styleKey == "" {
				styleKey = account.PreferredMapStyle
			}
			if theme == "" {
				theme = account.PreferredTheme
			}
		}
	}

	if styleKey == "" {
		styleKey = mapstyle.StyleStandard
	}
	if theme == "" {
		theme = string(mapstyle.ThemeLight)
	}

	config := mapstyle.Resolve(styleKey, mapstyle.Theme(theme), mapstyle.Platform(platform))
	c.JSON(http.StatusOK, config)
}

// GetMapStyles lists every available style with its per-platform support
func GetMapStyles(c *gin.Context) {
	type styleInfo struct {
		Key              string `json:"key"`
		SupportedIOS     bool   `json:"supported_ios"`
		SupportedAndroid bool   `json:"supported_android"`
		FallbackIOS      string `json:"fallback_ios"`
	}

	var out []styleInfo
	for _, key := range mapstyle.Styles() {
		out = append(out, styleInfo{
			Key:              key,
			SupportedIOS:     mapstyle.IsSupported(key, mapstyle.PlatformIOS),
			SupportedAndroid: mapstyle.IsSupported(key, mapstyle.PlatformAndroid),
			FallbackIOS:      mapstyle.FallbackFor(key, mapstyle.PlatformIOS),
		})
	}

	c.JSON(http.StatusOK, out)
}

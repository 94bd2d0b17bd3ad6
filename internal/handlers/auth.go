package handlers

import (
	"fmt"
	"log"
	"net/http"

	"herospath/internal/auth"
	"herospath/internal/utils"

	"github.com/gin-gonic/gin"
)

// LoginHandler redirects to Google OAuth login
func LoginHandler(c *gin.Context) {
	url, err := auth.GetLoginURL(c)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to generate login URL", err)
		return
	}

	log.Printf("Login initiated from %s", utils.GetRealClientIP(c))
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallbackHandler processes the OAuth callback from Google
func GoogleCallbackHandler(c *gin.Context) {
	auth.HandleGoogleCallback(c)
}

// LogoutHandler handles user logout
func LogoutHandler(c *gin.Context) {
	auth.LogoutHandler(c)
}

// IssueTokens exchanges an authenticated session for a JWT pair the mobile
// client can hold. Requires session or token auth.
func IssueTokens(c *gin.Context) {
	userID := c.GetString("user_id")

	accessToken, accessExpiry, err := auth.GenerateToken(userID, auth.AccessToken)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to generate access token", err)
		return
	}

	refreshToken, refreshExpiry, err := auth.GenerateToken(userID, auth.RefreshToken)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to generate refresh token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":          accessToken,
		"access_token_expires":  accessExpiry,
		"refresh_token":         refreshToken,
		"refresh_token_expires": refreshExpiry,
	})
}

// RefreshTokenHandler exchanges a refresh token for a new access token
func RefreshTokenHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "refresh_token is required", err)
		return
	}

	claims, err := auth.ValidateToken(req.RefreshToken)
	if err != nil {
		handleError(c, http.StatusUnauthorized, "Invalid refresh token", err)
		return
	}

	if claims.TokenType != auth.RefreshToken {
		handleError(c, http.StatusUnauthorized, "Invalid token type",
			fmt.Errorf("token type mismatch: expected refresh, got %s", claims.TokenType))
		return
	}

	accessToken, accessExpiry, err := auth.GenerateToken(claims.UserID, auth.AccessToken)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":         accessToken,
		"access_token_expires": accessExpiry,
	})
}

package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"herospath/internal/database"
	"herospath/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

var (
	googleOAuthConfig *oauth2.Config
)

// InitOAuth initializes the Google OAuth configuration
func InitOAuth() error {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, and GOOGLE_REDIRECT_URL must be set")
	}

	googleOAuthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile", "openid"},
		Endpoint:     google.Endpoint,
	}

	return nil
}

// GetLoginURL returns the Google OAuth login URL with a secure state parameter
func GetLoginURL(c *gin.Context) (string, error) {
	state, err := SetOAuthState(c)
	if err != nil {
		return "", err
	}

	return googleOAuthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	), nil
}

// HandleGoogleCallback processes the OAuth callback from Google
func HandleGoogleCallback(c *gin.Context) {
	// Verify state parameter (CSRF protection)
	state := c.Query("state")
	if !VerifyOAuthState(c, state) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state, possible CSRF attack"})
		c.Abort()
		return
	}

	// Exchange auth code for token
	code := c.Query("code")
	token, err := googleOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "code exchange failed"})
		c.Abort()
		return
	}

	// Extract ID token from the token response
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get id_token"})
		c.Abort()
		return
	}

	// Verify the ID token
	payload, err := verifyIDToken(rawIDToken, googleOAuthConfig.ClientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to verify id_token: %v", err)})
		c.Abort()
		return
	}

	userInfo, err := extractUserInfoFromPayload(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to extract user info from token"})
		c.Abort()
		return
	}

	// Find or create the account for this Google identity
	db := database.GetDB()
	var account models.Account
	if err := db.Where("google_id = ?", userInfo.Sub).First(&account).Error; err != nil {
		account = models.Account{
			GoogleID:      userInfo.Sub,
			Email:         userInfo.Email,
			EmailVerified: userInfo.EmailVerified,
			DisplayName:   userInfo.Name,
			AvatarURL:     userInfo.Picture,
			Locale:        userInfo.Locale,
			LastLogin:     time.Now(),
		}
		if err := db.Create(&account).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			c.Abort()
			return
		}
	} else {
		db.Model(&account).Update("last_login", time.Now())
	}

	// Keep the long-lived refresh token on the account for background use
	if err := SaveRefreshTokenToAccount(db, userInfo.Sub, token); err != nil {
		fmt.Printf("Warning: Failed to save refresh token: %v\n", err)
	}

	if err := CreateSession(c, token, userInfo.Sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		c.Abort()
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// verifyIDToken verifies the ID token using Google's official library
func verifyIDToken(idToken string, audience string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(context.Background(), idToken, audience)
	if err != nil {
		return nil, fmt.Errorf("failed to validate ID token: %w", err)
	}
	return payload, nil
}

// extractUserInfoFromPayload extracts user info from the verified token payload
func extractUserInfoFromPayload(payload *idtoken.Payload) (*UserInfo, error) {
	userInfo := &UserInfo{
		Sub:   payload.Subject,
		Email: payload.Claims["email"].(string),
	}

	// Extract other fields if they exist
	if name, ok := payload.Claims["name"].(string); ok {
		userInfo.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		userInfo.Picture = picture
	}
	if locale, ok := payload.Claims["locale"].(string); ok {
		userInfo.Locale = locale
	}
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok {
		userInfo.EmailVerified = emailVerified
	}

	return userInfo, nil
}

// AuthMiddleware resolves the acting user from either a bearer token (mobile
// client) or a session cookie, and stores the user id in the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Mobile clients send a JWT access token
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			claims, err := ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				c.Abort()
				return
			}
			if claims.TokenType != AccessToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
				c.Abort()
				return
			}

			c.Set("user_id", claims.UserID)
			c.Next()
			return
		}

		// Fall back to the session cookie
		session, err := GetSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		if session.IsExpired() {
			DeleteSession(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
			c.Abort()
			return
		}

		c.Set("user_id", session.UserID)
		c.Next()
	}
}

// LogoutHandler handles user logout
func LogoutHandler(c *gin.Context) {
	DeleteSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Account represents a Hero's Path user. Accounts are created on first
// Google sign-in and keyed by the Google subject ID.
type Account struct {
	GoogleID              string         `gorm:"primaryKey;size:128" json:"-"`
	Email                 string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	EmailVerified         bool           `json:"email_verified"`
	DisplayName           string         `gorm:"size:100" json:"display_name"`
	AvatarURL             string         `gorm:"size:512" json:"avatar_url"`
	Locale                string         `gorm:"size:10" json:"locale"`
	PreferredMapStyle     string         `gorm:"size:20;default:standard" json:"preferred_map_style"`
	PreferredTheme        string         `gorm:"size:10;default:light" json:"preferred_theme"`
	DigestEnabled         bool           `gorm:"default:true" json:"digest_enabled"`
	EncryptedRefreshToken string         `gorm:"type:text" json:"-"`
	TokenExpiry           time.Time      `json:"-"`
	LastLogin             time.Time      `gorm:"not null" json:"last_login"`
	CreatedAt             time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook is called before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	if a.LastLogin.IsZero() {
		a.LastLogin = now
	}
	if a.PreferredMapStyle == "" {
		a.PreferredMapStyle = "standard"
	}
	if a.PreferredTheme == "" {
		a.PreferredTheme = "light"
	}
	return nil
}

// BeforeSave hook is called before saving the account
func (a *Account) BeforeSave(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "account"
}

// UpdatePreferencesRequest represents the editable account preferences
type UpdatePreferencesRequest struct {
	DisplayName       *string `json:"display_name"`
	PreferredMapStyle *string `json:"preferred_map_style"`
	PreferredTheme    *string `json:"preferred_theme" binding:"omitempty,oneof=light dark"`
	DigestEnabled     *bool   `json:"digest_enabled"`
}

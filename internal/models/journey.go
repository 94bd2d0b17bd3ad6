package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RoutePoint is a single recorded GPS fix along a journey
type RoutePoint struct {
	Latitude  float64   `json:"latitude" binding:"required"`
	Longitude float64   `json:"longitude" binding:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// RouteList represents an ordered sequence of route points stored as JSONB
type RouteList []RoutePoint

func (r RouteList) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *RouteList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported type for RouteList: %T", value)
	}
}

// Journey represents a recorded walk with its route and computed stats.
// Distance is set once at creation from the route; it is never recomputed
// by callers so every surface shows the same number.
type Journey struct {
	ID        string     `gorm:"primaryKey;size:50" json:"id"`
	UserID    string     `gorm:"size:128;not null;index" json:"-"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Route     RouteList  `gorm:"type:jsonb" json:"route"`
	Distance  float64    `json:"distance"` // meters
	Duration  int64      `json:"duration"` // seconds
	Photos    StringList `gorm:"type:jsonb" json:"photos"`
	CreatedAt time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook is called before creating a new journey
func (j *Journey) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = now
	}
	if j.Photos == nil {
		j.Photos = StringList{}
	}
	return nil
}

// TableName specifies the table name for the Journey model
func (Journey) TableName() string {
	return "journey"
}

// CreateJourneyRequest represents the data needed to record a journey
type CreateJourneyRequest struct {
	Name  string       `json:"name"`
	Route []RoutePoint `json:"route" binding:"required,min=1"`
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// CurrentPlaceSchemaVersion is written on every save. Records carrying an
// older version (or none) are legacy and may need migration on read.
const CurrentPlaceSchemaVersion = 2

// SavedPlace represents a place a user has bookmarked on the map.
// The document lives in the user's collection, keyed by place ID.
type SavedPlace struct {
	PlaceID       string         `gorm:"primaryKey;size:128" json:"id"`
	UserID        string         `gorm:"primaryKey;size:128;index" json:"-"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	Vicinity      string         `gorm:"size:512" json:"vicinity"`
	Types         StringList     `gorm:"type:jsonb" json:"types"`
	Category      string         `gorm:"size:40" json:"category"`
	Saved         bool           `json:"saved"`
	SchemaVersion int            `json:"schema_version"`
	LastUpdated   string         `gorm:"size:40" json:"last_updated"` // ISO-8601, client-set at write time
	Rating        *float64       `json:"rating,omitempty"`
	PriceLevel    *int           `json:"price_level,omitempty"`
	OpeningHours  datatypes.JSON `gorm:"type:jsonb" json:"opening_hours,omitempty"`
	Photos        datatypes.JSON `gorm:"type:jsonb" json:"photos,omitempty"`
	Metadata      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for the SavedPlace model
func (SavedPlace) TableName() string {
	return "saved_place"
}

// LatLng is a geographic coordinate pair in degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry mirrors the nested geometry object returned by the Places API
type Geometry struct {
	Location LatLng `json:"location"`
}

// SavePlaceRequest represents the data needed to save a place. Everything
// except an identifier is optional; missing fields are defaulted when the
// record is normalized.
type SavePlaceRequest struct {
	PlaceID      string         `json:"place_id"`
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Latitude     *float64       `json:"latitude"`
	Longitude    *float64       `json:"longitude"`
	Geometry     *Geometry      `json:"geometry"`
	Vicinity     string         `json:"vicinity"`
	Types        []string       `json:"types"`
	Rating       *float64       `json:"rating"`
	PriceLevel   *int           `json:"price_level"`
	OpeningHours datatypes.JSON `json:"opening_hours"`
	Photos       datatypes.JSON `json:"photos"`
	Metadata     datatypes.JSON `json:"metadata"`
}

// ListOptions controls filtering, sorting, and result size for saved-place
// listings. The zero value means no category filter, default limit, newest
// first.
type ListOptions struct {
	Category  string `form:"category" json:"category,omitempty"`
	Limit     int    `form:"limit" json:"limit,omitempty"`
	SortBy    string `form:"sort_by" json:"sort_by,omitempty"`
	SortOrder string `form:"sort_order" json:"sort_order,omitempty"`
}

// StringList represents a list of strings that can be stored as JSONB
type StringList []string

func (s *StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = make([]string, 0)
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

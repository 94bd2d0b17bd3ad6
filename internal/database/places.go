package database

import (
	"context"
	"errors"
	"fmt"
	"herospath/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceRepository is the Postgres-backed document store for saved places.
// Every query is scoped to one user, mirroring a per-user collection.
type PlaceRepository struct {
	db *gorm.DB
}

// NewPlaceRepository creates a repository on top of an open connection
func NewPlaceRepository(db *gorm.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// sortColumns is the allowlist of sortable fields; anything else falls back
// to creation time
var sortColumns = map[string]bool{
	"created_at":   true,
	"name":         true,
	"last_updated": true,
	"category":     true,
}

// List returns a user's saved places with the given filter, sort, and limit
func (r *PlaceRepository) List(ctx context.Context, userID string, opts models.ListOptions) ([]models.SavedPlace, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}

	sortBy := opts.SortBy
	if !sortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := "desc"
	if opts.SortOrder == "asc" {
		sortOrder = "asc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	query = query.Limit(limit)

	var placesList []models.SavedPlace
	if err := query.Find(&placesList).Error; err != nil {
		return nil, err
	}
	return placesList, nil
}

// Get returns a single saved place, or nil when the user has no record for
// the place id
func (r *PlaceRepository) Get(ctx context.Context, userID, placeID string) (*models.SavedPlace, error) {
	var place models.SavedPlace
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		First(&place).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

// Put writes the full record, replacing any prior document with the same id
func (r *PlaceRepository) Put(ctx context.Context, userID string, place *models.SavedPlace) error {
	place.UserID = userID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "place_id"}},
			UpdateAll: true,
		}).
		Create(place).Error
}

// Delete removes a saved place. Deleting a missing id is not an error.
func (r *PlaceRepository) Delete(ctx context.Context, userID, placeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Delete(&models.SavedPlace{}).Error
}

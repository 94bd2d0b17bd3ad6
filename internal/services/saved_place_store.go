package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"herospath/internal/cache"
	"herospath/internal/models"
	"herospath/internal/places"

	"gorm.io/datatypes"
)

// DefaultListLimit bounds a listing when the caller supplies none
const DefaultListLimit = 100

// PlaceCacheTTL is how long a cached listing stays fresh
const PlaceCacheTTL = 5 * time.Minute

// PlaceRepository is the remote document store behind the saved-place store.
// The production implementation is database.PlaceRepository; tests supply
// an in-memory fake.
type PlaceRepository interface {
	List(ctx context.Context, userID string, opts models.ListOptions) ([]models.SavedPlace, error)
	Get(ctx context.Context, userID, placeID string) (*models.SavedPlace, error)
	Put(ctx context.Context, userID string, place *models.SavedPlace) error
	Delete(ctx context.Context, userID, placeID string) error
}

// RemoteQueryError wraps any failure reading or writing the remote store.
// The store never retries; retry policy belongs to the caller.
type RemoteQueryError struct {
	Op  string
	Err error
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("saved places: %s failed: %v", e.Op, e.Err)
}

func (e *RemoteQueryError) Unwrap() error {
	return e.Err
}

// SavedPlaceStore is the single source of truth for a user's saved places.
// It mediates between the listing cache and the remote store. The cache is
// injected so tests can run isolated stores with their own clocks.
type SavedPlaceStore struct {
	repo  PlaceRepository
	cache *cache.Cache
	now   func() time.Time
}

// NewSavedPlaceStore creates a store over a repository and listing cache
func NewSavedPlaceStore(repo PlaceRepository, listCache *cache.Cache) *SavedPlaceStore {
	return NewSavedPlaceStoreWithClock(repo, listCache, time.Now)
}

// NewSavedPlaceStoreWithClock creates a store with an injectable clock
func NewSavedPlaceStoreWithClock(repo PlaceRepository, listCache *cache.Cache, now func() time.Time) *SavedPlaceStore {
	return &SavedPlaceStore{
		repo:  repo,
		cache: listCache,
		now:   now,
	}
}

func userKeyPrefix(userID string) string {
	return "places:" + userID + ":"
}

// cacheKey derives a listing cache key from the user and the exact query
// shape, so differently filtered listings never collide
func cacheKey(userID string, opts models.ListOptions) string {
	return fmt.Sprintf("%scat=%s&limit=%d&sort=%s&order=%s",
		userKeyPrefix(userID), opts.Category, opts.Limit, opts.SortBy, opts.SortOrder)
}

// invalidateUser drops every cached listing for the user, whatever query
// shape populated it. Coarse by design: the store tracks no dependency
// between query shapes and records, so whole-user invalidation is what
// keeps reads consistent after a write.
func (s *SavedPlaceStore) invalidateUser(userID string) {
	prefix := userKeyPrefix(userID)
	s.cache.Invalidate(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// Load returns a user's saved places for the given options, from cache when
// fresh, otherwise from the remote store. Every returned record is
// normalized; the normalized listing is cached keyed by the exact options.
func (s *SavedPlaceStore) Load(ctx context.Context, userID string, opts models.ListOptions) ([]models.SavedPlace, error) {
	key := cacheKey(userID, opts)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]models.SavedPlace), nil
	}

	placesList, err := s.repo.List(ctx, userID, opts)
	if err != nil {
		return nil, &RemoteQueryError{Op: "load", Err: err}
	}

	for i := range placesList {
		s.normalizeLoaded(&placesList[i])
	}

	s.cache.Set(key, placesList)
	return placesList, nil
}

// Save normalizes and writes a place, replacing any prior record with the
// same id wholesale, then invalidates every cached listing for the user
func (s *SavedPlaceStore) Save(ctx context.Context, userID string, req models.SavePlaceRequest) (*models.SavedPlace, error) {
	place := s.normalize(req)

	if err := s.repo.Put(ctx, userID, &place); err != nil {
		return nil, &RemoteQueryError{Op: "save", Err: err}
	}

	s.invalidateUser(userID)
	return &place, nil
}

// Unsave deletes a saved place and invalidates the user's cached listings.
// Deleting an id that was never saved is not an error.
func (s *SavedPlaceStore) Unsave(ctx context.Context, userID, placeID string) error {
	if err := s.repo.Delete(ctx, userID, placeID); err != nil {
		return &RemoteQueryError{Op: "unsave", Err: err}
	}

	s.invalidateUser(userID)
	return nil
}

// Get is a point read that bypasses the listing cache. Returns nil when the
// user has no record for the place id.
func (s *SavedPlaceStore) Get(ctx context.Context, userID, placeID string) (*models.SavedPlace, error) {
	place, err := s.repo.Get(ctx, userID, placeID)
	if err != nil {
		return nil, &RemoteQueryError{Op: "get", Err: err}
	}
	if place == nil {
		return nil, nil
	}

	s.normalizeLoaded(place)
	return place, nil
}

// IsSaved reports whether the user has saved the place. Read failures are
// suppressed into false (optimistic-false): a transient error is
// indistinguishable from "not saved" here. Callers that need error
// visibility should use SavedStatus or Get.
func (s *SavedPlaceStore) IsSaved(ctx context.Context, userID, placeID string) bool {
	saved, _ := s.SavedStatus(ctx, userID, placeID)
	return saved
}

// SavedStatus reports whether the place is saved along with any underlying
// read error, for callers that must distinguish "not saved" from "could not
// determine"
func (s *SavedPlaceStore) SavedStatus(ctx context.Context, userID, placeID string) (bool, error) {
	place, err := s.Get(ctx, userID, placeID)
	if err != nil {
		return false, err
	}
	return place != nil, nil
}

// Search filters the user's saved places by a case-insensitive substring
// match against name, vicinity, and type tags. An empty or whitespace-only
// term returns the unfiltered listing. The full set is loaded through the
// cache.
func (s *SavedPlaceStore) Search(ctx context.Context, userID, term string) ([]models.SavedPlace, error) {
	placesList, err := s.Load(ctx, userID, models.ListOptions{})
	if err != nil {
		return nil, err
	}

	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return placesList, nil
	}

	var matched []models.SavedPlace
	for _, place := range placesList {
		if placeMatches(place, term) {
			matched = append(matched, place)
		}
	}
	return matched, nil
}

func placeMatches(place models.SavedPlace, term string) bool {
	if strings.Contains(strings.ToLower(place.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(place.Vicinity), term) {
		return true
	}
	for _, tag := range place.Types {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// normalize builds the canonical record from a save request, applying every
// default: id resolution (place_id > id > synthetic), name, coordinates
// (direct fields, then nested geometry, then 0), types, category from the
// classifier, saved flag, schema version, and a client-set timestamp.
func (s *SavedPlaceStore) normalize(req models.SavePlaceRequest) models.SavedPlace {
	now := s.now()

	id := req.PlaceID
	if id == "" {
		id = req.ID
	}
	if id == "" {
		id = fmt.Sprintf("place-%d", now.UnixNano())
	}

	name := req.Name
	if name == "" {
		name = "Unnamed Place"
	}

	var lat, lng float64
	switch {
	case req.Latitude != nil && req.Longitude != nil:
		lat, lng = *req.Latitude, *req.Longitude
	case req.Geometry != nil:
		lat, lng = req.Geometry.Location.Lat, req.Geometry.Location.Lng
	}

	typeTags := req.Types
	if len(typeTags) == 0 {
		typeTags = []string{"establishment"}
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = datatypes.JSON([]byte("{}"))
	}

	return models.SavedPlace{
		PlaceID:       id,
		Name:          name,
		Latitude:      lat,
		Longitude:     lng,
		Vicinity:      req.Vicinity,
		Types:         models.StringList(typeTags),
		Category:      places.CategoryFor(typeTags),
		Saved:         true,
		SchemaVersion: models.CurrentPlaceSchemaVersion,
		LastUpdated:   now.UTC().Format(time.RFC3339),
		Rating:        req.Rating,
		PriceLevel:    req.PriceLevel,
		OpeningHours:  req.OpeningHours,
		Photos:        req.Photos,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// normalizeLoaded patches up records coming back from the remote store:
// legacy documents may predate the category or schema-version fields, and
// the saved flag marks remote provenance on every read
func (s *SavedPlaceStore) normalizeLoaded(place *models.SavedPlace) {
	if len(place.Types) == 0 {
		place.Types = models.StringList{"establishment"}
	}
	if place.Category == "" {
		place.Category = places.CategoryFor(place.Types)
	}
	if place.Name == "" {
		place.Name = "Unnamed Place"
	}
	if place.SchemaVersion == 0 {
		place.SchemaVersion = 1
	}
	place.Saved = true
}

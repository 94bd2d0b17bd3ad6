package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"herospath/internal/cache"
	"herospath/internal/models"
	"herospath/internal/places"
)

// fakePlaceRepo is an in-memory remote store with call counters
type fakePlaceRepo struct {
	records map[string]map[string]models.SavedPlace // userID -> placeID -> record

	listCalls   int
	getCalls    int
	putCalls    int
	deleteCalls int

	failWith error
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{records: make(map[string]map[string]models.SavedPlace)}
}

func (f *fakePlaceRepo) List(ctx context.Context, userID string, opts models.ListOptions) ([]models.SavedPlace, error) {
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}

	var out []models.SavedPlace
	for _, p := range f.records[userID] {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlaceRepo) Get(ctx context.Context, userID, placeID string) (*models.SavedPlace, error) {
	f.getCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}

	p, ok := f.records[userID][placeID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePlaceRepo) Put(ctx context.Context, userID string, place *models.SavedPlace) error {
	f.putCalls++
	if f.failWith != nil {
		return f.failWith
	}

	if f.records[userID] == nil {
		f.records[userID] = make(map[string]models.SavedPlace)
	}
	place.UserID = userID
	f.records[userID][place.PlaceID] = *place
	return nil
}

func (f *fakePlaceRepo) Delete(ctx context.Context, userID, placeID string) error {
	f.deleteCalls++
	if f.failWith != nil {
		return f.failWith
	}

	delete(f.records[userID], placeID)
	return nil
}

func newTestStore() (*SavedPlaceStore, *fakePlaceRepo) {
	repo := newFakePlaceRepo()
	listCache := cache.New(PlaceCacheTTL)
	return NewSavedPlaceStore(repo, listCache), repo
}

func TestSaveThenGetRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	lat, lng := 52.5200, 13.4050
	saved, err := store.Save(ctx, "alice", models.SavePlaceRequest{
		PlaceID:   "berlin-cafe",
		Name:      "Cafe am Ufer",
		Latitude:  &lat,
		Longitude: &lng,
		Types:     []string{"cafe", "food"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "alice", "berlin-cafe")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a just-saved place")
	}

	if got.PlaceID != saved.PlaceID || got.Name != "Cafe am Ufer" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.Saved {
		t.Error("saved flag should be true")
	}
	if got.Category != places.CategoryFoodDrink {
		t.Errorf("Category = %q, want %q", got.Category, places.CategoryFoodDrink)
	}
	if got.SchemaVersion != models.CurrentPlaceSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", got.SchemaVersion, models.CurrentPlaceSchemaVersion)
	}
	if got.LastUpdated == "" {
		t.Error("LastUpdated should be set")
	}
}

func TestSaveAppliesDefaults(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	saved, err := store.Save(ctx, "alice", models.SavePlaceRequest{
		Geometry: &models.Geometry{Location: models.LatLng{Lat: 35.6762, Lng: 139.6503}},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if saved.Name != "Unnamed Place" {
		t.Errorf("Name = %q, want Unnamed Place", saved.Name)
	}
	if saved.PlaceID == "" {
		t.Error("expected a synthetic id")
	}
	if saved.Latitude != 35.6762 || saved.Longitude != 139.6503 {
		t.Errorf("coordinates not taken from nested geometry: %f,%f", saved.Latitude, saved.Longitude)
	}
	if len(saved.Types) != 1 || saved.Types[0] != "establishment" {
		t.Errorf("Types = %v, want [establishment]", saved.Types)
	}
	if saved.Category != places.CategoryOther {
		t.Errorf("Category = %q, want %q", saved.Category, places.CategoryOther)
	}
}

func TestSaveIDResolutionOrder(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	saved, err := store.Save(ctx, "alice", models.SavePlaceRequest{
		PlaceID: "from-place-id",
		ID:      "from-id",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.PlaceID != "from-place-id" {
		t.Errorf("PlaceID = %q, place_id should win over id", saved.PlaceID)
	}

	saved, err = store.Save(ctx, "alice", models.SavePlaceRequest{ID: "from-id"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.PlaceID != "from-id" {
		t.Errorf("PlaceID = %q, want from-id", saved.PlaceID)
	}
}

func TestLoadUsesCache(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	if _, err := store.Save(ctx, "alice", models.SavePlaceRequest{PlaceID: "p1", Name: "One"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := store.Load(ctx, "alice", models.ListOptions{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := store.Load(ctx, "alice", models.ListOptions{}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if repo.listCalls != 1 {
		t.Errorf("listCalls = %d, second Load should be served from cache", repo.listCalls)
	}
}

func TestSaveInvalidatesUserListings(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	if _, err := store.Load(ctx, "alice", models.ListOptions{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := store.Save(ctx, "alice", models.SavePlaceRequest{PlaceID: "p1", Name: "One"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	listing, err := store.Load(ctx, "alice", models.ListOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if repo.listCalls != 2 {
		t.Errorf("listCalls = %d, Save must force the next Load back to the remote store", repo.listCalls)
	}
	if len(listing) != 1 {
		t.Errorf("listing has %d places, want the freshly saved one", len(listing))
	}
}

func TestInvalidationScopedToUser(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	if _, err := store.Load(ctx, "alice", models.ListOptions{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := store.Load(ctx, "bob", models.ListOptions{}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := store.Save(ctx, "alice", models.SavePlaceRequest{PlaceID: "p1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// bob's listing should still be cached
	if _, err := store.Load(ctx, "bob", models.ListOptions{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if repo.listCalls != 2 {
		t.Errorf("listCalls = %d, bob's cache entry should survive alice's save", repo.listCalls)
	}
}

func TestUnsaveIsIdempotent(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if _, err := store.Save(ctx, "alice", models.SavePlaceRequest{PlaceID: "p1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Unsave(ctx, "alice", "p1"); err != nil {
		t.Fatalf("first Unsave: %v", err)
	}
	if err := store.Unsave(ctx, "alice", "p1"); err != nil {
		t.Errorf("second Unsave should not error: %v", err)
	}

	if store.IsSaved(ctx, "alice", "p1") {
		t.Error("place should be gone after Unsave")
	}
}

func TestLoadWrapsRemoteFailure(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	repo.failWith = errors.New("permission denied")

	_, err := store.Load(ctx, "alice", models.ListOptions{})
	if err == nil {
		t.Fatal("expected error")
	}

	var remoteErr *RemoteQueryError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error %T is not a RemoteQueryError", err)
	}
	if !errors.Is(err, repo.failWith) {
		t.Error("RemoteQueryError should unwrap to the underlying failure")
	}
}

func TestIsSavedSuppressesErrors(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	repo.failWith = errors.New("network down")

	if store.IsSaved(ctx, "alice", "p1") {
		t.Error("IsSaved must report false when the read fails")
	}

	// SavedStatus is the error-visible channel
	saved, err := store.SavedStatus(ctx, "alice", "p1")
	if saved {
		t.Error("SavedStatus bool should be false on failure")
	}
	if err == nil {
		t.Error("SavedStatus should surface the underlying error")
	}
}

func TestSearchEmptyTermReturnsFullListing(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		if _, err := store.Save(ctx, "alice", models.SavePlaceRequest{PlaceID: id, Name: "Place " + id}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := store.Load(ctx, "alice", models.ListOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	found, err := store.Search(ctx, "alice", "   ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != len(all) {
		t.Errorf("Search with blank term returned %d places, want %d", len(found), len(all))
	}
}

func TestSearchMatchesCaseInsensitively(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	saves := []models.SavePlaceRequest{
		{PlaceID: "p1", Name: "Morning Brew", Types: []string{"cafe"}},
		{PlaceID: "p2", Name: "City Park", Types: []string{"park"}},
		{PlaceID: "p3", Name: "Corner Shop", Vicinity: "12 Cafe Street"},
	}
	for _, req := range saves {
		if _, err := store.Save(ctx, "alice", req); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	found, err := store.Search(ctx, "alice", "CAFE")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	ids := make(map[string]bool)
	for _, p := range found {
		ids[p.PlaceID] = true
	}
	if !ids["p1"] {
		t.Error("type tag 'cafe' should match term CAFE")
	}
	if !ids["p3"] {
		t.Error("vicinity containing 'Cafe' should match")
	}
	if ids["p2"] {
		t.Error("park should not match CAFE")
	}
}

func TestLoadNormalizesLegacyRecords(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	// A legacy document: no category, no schema version, no types
	repo.records["alice"] = map[string]models.SavedPlace{
		"old": {PlaceID: "old", UserID: "alice", Name: "Old Haunt"},
	}

	listing, err := store.Load(ctx, "alice", models.ListOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(listing) != 1 {
		t.Fatalf("got %d places, want 1", len(listing))
	}

	got := listing[0]
	if len(got.Types) != 1 || got.Types[0] != "establishment" {
		t.Errorf("Types = %v, want [establishment]", got.Types)
	}
	if got.Category != places.CategoryOther {
		t.Errorf("Category = %q, want %q", got.Category, places.CategoryOther)
	}
	if got.SchemaVersion != 1 {
		t.Errorf("SchemaVersion = %d, legacy records default to 1", got.SchemaVersion)
	}
	if !got.Saved {
		t.Error("saved flag should be set on load")
	}
}

func TestCachedListingExpires(t *testing.T) {
	repo := newFakePlaceRepo()
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	listCache := cache.NewWithClock(PlaceCacheTTL, func() time.Time { return clock })
	store := NewSavedPlaceStoreWithClock(repo, listCache, now)
	ctx := context.Background()

	if _, err := store.Load(ctx, "alice", models.ListOptions{}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	clock = clock.Add(PlaceCacheTTL + time.Second)

	if _, err := store.Load(ctx, "alice", models.ListOptions{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if repo.listCalls != 2 {
		t.Errorf("listCalls = %d, expired entry should force a refetch", repo.listCalls)
	}
}

package services

import (
	"context"
	"errors"
	"os"
	"time"

	"herospath/internal/models"

	"googlemaps.github.io/maps"
)

var (
	mapsClient  *maps.Client
	ErrNoAPIKey = errors.New("GOOGLE_MAPS_API_KEY environment variable not set")
)

// InitMapsClient initializes the Google Maps client
func InitMapsClient() error {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		return ErrNoAPIKey
	}

	var err error
	mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return err
	}

	return nil
}

// LookupPlace fetches place details from the Places API for a Google place ID
func LookupPlace(placeID string) (*maps.PlaceDetailsResult, error) {
	if mapsClient == nil {
		if err := InitMapsClient(); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	request := &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskGeometry,
			maps.PlaceDetailsFieldMaskName,
			maps.PlaceDetailsFieldMaskPlaceID,
			maps.PlaceDetailsFieldMaskVicinity,
			maps.PlaceDetailsFieldMaskTypes,
			maps.PlaceDetailsFieldMaskRatings,
			maps.PlaceDetailsFieldMaskPriceLevel,
		},
	}

	response, err := mapsClient.PlaceDetails(ctx, request)
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// EnrichSaveRequest fills missing fields of a save request from the Places
// API. Used when the mobile client saves a marker it only knows by place ID.
func EnrichSaveRequest(req *models.SavePlaceRequest) error {
	if req.PlaceID == "" {
		return nil
	}

	details, err := LookupPlace(req.PlaceID)
	if err != nil {
		return err
	}

	if req.Name == "" {
		req.Name = details.Name
	}
	if req.Latitude == nil || req.Longitude == nil {
		req.Geometry = &models.Geometry{
			Location: models.LatLng{
				Lat: details.Geometry.Location.Lat,
				Lng: details.Geometry.Location.Lng,
			},
		}
	}
	if req.Vicinity == "" {
		req.Vicinity = details.Vicinity
	}
	if len(req.Types) == 0 {
		req.Types = details.Types
	}
	if req.Rating == nil && details.Rating > 0 {
		rating := float64(details.Rating)
		req.Rating = &rating
	}
	if req.PriceLevel == nil && details.PriceLevel > 0 {
		priceLevel := details.PriceLevel
		req.PriceLevel = &priceLevel
	}

	return nil
}

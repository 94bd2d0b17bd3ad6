package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type ImageService struct {
	cld *cloudinary.Cloudinary
}

func NewImageService() (*ImageService, error) {
	// Get Cloudinary configuration from environment
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("missing Cloudinary configuration")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &ImageService{cld: cld}, nil
}

// UploadJourneyPhoto uploads a photo taken along a journey and returns its URL
func (s *ImageService) UploadJourneyPhoto(file multipart.File, filename, userID, journeyID string) (string, error) {
	allowedTypes := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".heic": true,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedTypes[ext] {
		return "", fmt.Errorf("invalid file type: %s. Allowed types: jpg, jpeg, png, webp, heic", ext)
	}

	publicID := fmt.Sprintf("journeys/%s/%s_%s", userID, journeyID, strings.TrimSuffix(filepath.Base(filename), ext))

	uploadParams := uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "herospath/journeys",
		ResourceType:   "image",
		Transformation: "c_limit,h_1600,w_1600/q_auto,f_auto", // Cap resolution, optimize quality and format
	}

	result, err := s.cld.Upload.Upload(context.Background(), file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return result.SecureURL, nil
}

// DeleteJourneyPhoto deletes an uploaded photo from Cloudinary
func (s *ImageService) DeleteJourneyPhoto(publicID string) error {
	_, err := s.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	return err
}

// ValidateImageFile validates if the uploaded file is a valid image
func (s *ImageService) ValidateImageFile(file multipart.File, maxSize int64) error {
	file.Seek(0, 0)

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if int64(len(data)) > maxSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", len(data), maxSize)
	}

	// Reset file pointer for later use
	file.Seek(0, 0)

	return nil
}

package services

import (
	"fmt"
	"mime/multipart"

	"github.com/daniel-minto/minto-portfolio-api/utils"
)

// Key prefixes for the two kinds of images the API stores
const (
	PrefixProfilePhotos = "profile-photos"
	PrefixSignatures    = "signatures"
)

// ImageService handles image upload, retrieval and deletion
type ImageService interface {
	// UploadProfilePhoto validates and stores a profile photo, returns the storage key
	UploadProfilePhoto(fileHeader *multipart.FileHeader) (string, error)

	// UploadSignature stores a server-rendered signature PNG for an order
	UploadSignature(png []byte, orderNumber string) (string, error)

	// GetImageURL generates a URL for accessing a stored image
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(imageKey string) error
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
}

var imageServiceInstance ImageService

// InitImageService initializes the image service with S3 backend
func InitImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{
		s3Service: s3Service,
	}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// UploadProfilePhoto validates and uploads a profile photo to S3
func (s *S3ImageService) UploadProfilePhoto(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader, PrefixProfilePhotos)
	if err != nil {
		return "", fmt.Errorf("failed to upload profile photo: %w", err)
	}

	return s3Key, nil
}

// UploadSignature uploads a rendered signature PNG to S3
func (s *S3ImageService) UploadSignature(png []byte, orderNumber string) (string, error) {
	s3Key, err := s.s3Service.UploadBytes(png, PrefixSignatures, orderNumber+".png", "image/png")
	if err != nil {
		return "", fmt.Errorf("failed to upload signature: %w", err)
	}

	return s3Key, nil
}

// GetImageURL generates a presigned URL for accessing an image
func (s *S3ImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return url, nil
}

// DeleteImage deletes an image from S3
func (s *S3ImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

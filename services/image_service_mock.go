package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/daniel-minto/minto-portfolio-api/utils"
)

// MockImageService is an in-memory ImageService for tests
type MockImageService struct {
	mu         sync.Mutex
	Uploads    map[string][]byte
	FailAll    bool
	counter    int
	Validation bool // when true, run the real file validation
}

// NewMockImageService creates an empty mock with validation enabled
func NewMockImageService() *MockImageService {
	return &MockImageService{Uploads: make(map[string][]byte), Validation: true}
}

// UploadProfilePhoto records the upload
func (m *MockImageService) UploadProfilePhoto(fileHeader *multipart.FileHeader) (string, error) {
	if m.Validation {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			return "", err
		}
	}
	if m.FailAll {
		return "", fmt.Errorf("mock image upload failure")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	key := fmt.Sprintf("%s/%d_%s", PrefixProfilePhotos, m.counter, fileHeader.Filename)
	m.Uploads[key] = nil
	return key, nil
}

// UploadSignature records the rendered signature
func (m *MockImageService) UploadSignature(png []byte, orderNumber string) (string, error) {
	if m.FailAll {
		return "", fmt.Errorf("mock signature upload failure")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	key := fmt.Sprintf("%s/%d_%s.png", PrefixSignatures, m.counter, orderNumber)
	m.Uploads[key] = png
	return key, nil
}

// GetImageURL returns a fake URL embedding the key
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}
	if m.FailAll {
		return "", fmt.Errorf("mock image URL failure")
	}
	return "https://mock-bucket.s3.amazonaws.com/" + imageKey, nil
}

// DeleteImage removes the recorded upload
func (m *MockImageService) DeleteImage(imageKey string) error {
	if m.FailAll {
		return fmt.Errorf("mock image delete failure")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Uploads, imageKey)
	return nil
}

package services

import (
	"fmt"
	"mime/multipart"
	"sync"
)

// MockS3Service is an in-memory S3Interface for tests
type MockS3Service struct {
	mu      sync.Mutex
	Objects map[string][]byte
	FailAll bool
	counter int
}

// NewMockS3Service creates an empty mock
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{Objects: make(map[string][]byte)}
}

// UploadFile records the file under a deterministic key
func (m *MockS3Service) UploadFile(fileHeader *multipart.FileHeader, prefix string) (string, error) {
	if m.FailAll {
		return "", fmt.Errorf("mock S3 upload failure")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	content := make([]byte, fileHeader.Size)
	if _, err := file.Read(content); err != nil && err.Error() != "EOF" {
		return "", err
	}

	return m.UploadBytes(content, prefix, fileHeader.Filename, "image/png")
}

// UploadBytes records raw content under a deterministic key
func (m *MockS3Service) UploadBytes(content []byte, prefix, filename, contentType string) (string, error) {
	if m.FailAll {
		return "", fmt.Errorf("mock S3 upload failure")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++
	key := fmt.Sprintf("%s/%d_%s", prefix, m.counter, filename)
	m.Objects[key] = content
	return key, nil
}

// GetPresignedURL returns a fake URL embedding the key
func (m *MockS3Service) GetPresignedURL(s3Key string) (string, error) {
	if s3Key == "" {
		return "", nil
	}
	if m.FailAll {
		return "", fmt.Errorf("mock S3 presign failure")
	}
	return "https://mock-bucket.s3.amazonaws.com/" + s3Key, nil
}

// DeleteFile removes the recorded object
func (m *MockS3Service) DeleteFile(s3Key string) error {
	if m.FailAll {
		return fmt.Errorf("mock S3 delete failure")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, s3Key)
	return nil
}

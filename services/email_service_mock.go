package services

import (
	"fmt"
	"sync"
)

// MockEmailService records sent emails for tests
type MockEmailService struct {
	mu            sync.Mutex
	Confirmations []OrderEmailData
	AdminNotices  []OrderEmailData
	FailAll       bool
}

// NewMockEmailService creates an empty mock
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SendOrderConfirmation records the confirmation send
func (m *MockEmailService) SendOrderConfirmation(data OrderEmailData) error {
	if m.FailAll {
		return fmt.Errorf("mock email failure")
	}

	m.mu.Lock()
	m.Confirmations = append(m.Confirmations, data)
	m.mu.Unlock()
	return nil
}

// SendAdminNotification records the admin notification send
func (m *MockEmailService) SendAdminNotification(data OrderEmailData) error {
	if m.FailAll {
		return fmt.Errorf("mock email failure")
	}

	m.mu.Lock()
	m.AdminNotices = append(m.AdminNotices, data)
	m.mu.Unlock()
	return nil
}

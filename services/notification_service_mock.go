package services

import "sync"

// MockNotification is a single recorded dispatch
type MockNotification struct {
	RecipientID uint
	EventType   string
	Payload     map[string]interface{}
}

// MockNotificationService records dispatched notifications for test
// assertions instead of delivering them
type MockNotificationService struct {
	mu            sync.Mutex
	notifications []MockNotification
	// FailWith, when set, is returned from every Notify call
	FailWith error
}

// NewMockNotificationService creates a new mock notification service
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SetAsMockForTesting sets this mock as the global notification service
func (m *MockNotificationService) SetAsMockForTesting() {
	SetNotificationService(m)
}

// Notify records the dispatch
func (m *MockNotificationService) Notify(recipientID uint, eventType string, payload map[string]interface{}) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, MockNotification{
		RecipientID: recipientID,
		EventType:   eventType,
		Payload:     payload,
	})
	return nil
}

// Notifications returns a copy of all recorded dispatches
func (m *MockNotificationService) Notifications() []MockNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockNotification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// Clear removes all recorded dispatches
func (m *MockNotificationService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = nil
}

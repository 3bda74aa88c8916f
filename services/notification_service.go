package services

import "log"

// NotificationService dispatches events to platform users. Callers treat it
// as fire-and-forget: dispatch failures are logged by the caller and never
// block or roll back the triggering operation.
type NotificationService interface {
	Notify(recipientID uint, eventType string, payload map[string]interface{}) error
}

// LogNotificationService writes notifications to the application log. The
// actual delivery transport (push, SMS) hangs off this seam in deployment.
type LogNotificationService struct{}

var notificationServiceInstance NotificationService

// InitNotificationService initializes the default notification service
func InitNotificationService() NotificationService {
	notificationServiceInstance = &LogNotificationService{}
	return notificationServiceInstance
}

// GetNotificationService returns the initialized notification service instance
func GetNotificationService() NotificationService {
	return notificationServiceInstance
}

// SetNotificationService sets the notification service instance (primarily for testing)
func SetNotificationService(service NotificationService) {
	notificationServiceInstance = service
}

// Notify logs the dispatch
func (s *LogNotificationService) Notify(recipientID uint, eventType string, payload map[string]interface{}) error {
	log.Printf("notify user %d: %s %v", recipientID, eventType, payload)
	return nil
}

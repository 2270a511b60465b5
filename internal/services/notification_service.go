package services

import (
	"fmt"

	"courseforge/internal/testutils"
	"courseforge/pkg/coursetypes"
)

// NotificationService queues transient user-visible notifications on the
// context. The presentation layer drains them after each action.
type NotificationService struct {
	initialized bool
	ctx         coursetypes.Context
}

// NewNotificationService creates a new NotificationService instance.
func NewNotificationService(ctx coursetypes.Context) *NotificationService {
	return &NotificationService{ctx: ctx}
}

// Name returns the service name "notification" for registration.
func (n *NotificationService) Name() string {
	return "notification"
}

// Initialize sets up the NotificationService for operation.
func (n *NotificationService) Initialize() error {
	n.initialized = true
	return nil
}

// Notify queues a notification of the given type.
func (n *NotificationService) Notify(message string, notifyType coursetypes.NotificationType) error {
	if !n.initialized {
		return fmt.Errorf("notification service not initialized")
	}

	n.ctx.PushNotification(coursetypes.Notification{
		ID:      testutils.GenerateUUID(n.ctx),
		Message: message,
		Type:    notifyType,
	})
	return nil
}

// Drain returns all pending notifications and clears the queue.
func (n *NotificationService) Drain() []coursetypes.Notification {
	return n.ctx.DrainNotifications()
}

// Package coursetypes provides shared types and interfaces for CourseForge.
// This package contains the data model for curricula, assessments, sessions,
// and settings, plus the contracts between the state container, the service
// layer, and the generation provider. It has no dependencies on internal
// packages so every layer can import it.
package coursetypes

// Context represents the application state container interface. It holds the
// session collection, the active session's working state, settings, auth, and
// pending notifications. All mutation is routed through named service
// operations; nothing reads or writes these fields ad hoc.
type Context interface {
	// Session collection and active pointer
	GetSessions() map[string]*Session
	SetSessions(sessions map[string]*Session)
	GetCurrentSessionID() string
	SetCurrentSessionID(id string)

	// Active session working state
	GetMode() Mode
	SetMode(mode Mode)
	GetCurriculum() *Curriculum
	SetCurriculum(curriculum *Curriculum)
	GetAssessments() []Assessment
	SetAssessments(assessments []Assessment)
	GetMessages() map[Mode][]Message
	SetMessages(messages map[Mode][]Message)

	// Generation state: at most one generation in flight application-wide
	IsGenerating() bool
	SetGenerating(generating bool)

	// Display settings and auth
	GetSettings() UserSettings
	SetSettings(settings UserSettings)
	GetCurrentUser() *User
	SetCurrentUser(user *User)

	// User-visible notification queue
	PushNotification(n Notification)
	DrainNotifications() []Notification

	// Test mode for deterministic IDs and timestamps
	SetTestMode(testMode bool)
	IsTestMode() bool
}

// Service represents a service component that can be registered and
// initialized by the service registry.
type Service interface {
	// Name returns the unique name of the service for registration.
	Name() string

	// Initialize sets up the service for operation.
	Initialize() error
}

// ServiceRegistry manages service registration and lookup.
type ServiceRegistry interface {
	// RegisterService adds a service to the registry.
	RegisterService(service Service) error

	// GetService retrieves a service by name.
	GetService(name string) (Service, error)

	// InitializeAll initializes all registered services.
	InitializeAll() error
}

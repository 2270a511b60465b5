// Package context provides application state management for CourseForge.
// It maintains the session collection, the active session's working state,
// settings, notifications, and test metadata across operations. All mutation is
// routed through named service operations; nothing outside the services layer
// writes these fields directly.
package context

import (
	"sync"

	"courseforge/pkg/coursetypes"
)

// CourseContext implements the coursetypes.Context interface providing
// application state management for authoring sessions.
type CourseContext struct {
	mu sync.RWMutex // Protects all state fields

	// Session collection and active pointer
	sessions         map[string]*coursetypes.Session
	currentSessionID string

	// Active session working state
	mode        coursetypes.Mode
	curriculum  *coursetypes.Curriculum
	assessments []coursetypes.Assessment
	messages    map[coursetypes.Mode][]coursetypes.Message

	// Generation state: at most one generation is in flight application-wide
	generating bool

	// Display settings and auth
	settings    coursetypes.UserSettings
	currentUser *coursetypes.User

	// Pending user-visible notifications
	notifications []coursetypes.Notification

	testMode bool
}

// New creates a new CourseContext with initialized collections and defaults.
func New() *CourseContext {
	return &CourseContext{
		sessions:      make(map[string]*coursetypes.Session),
		mode:          coursetypes.ModeCurriculum,
		assessments:   make([]coursetypes.Assessment, 0),
		messages:      make(map[coursetypes.Mode][]coursetypes.Message),
		settings:      coursetypes.DefaultSettings(),
		notifications: make([]coursetypes.Notification, 0),
	}
}

// GetSessions returns the session collection stored in the context.
func (ctx *CourseContext) GetSessions() map[string]*coursetypes.Session {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.sessions
}

// SetSessions sets the session collection in the context.
func (ctx *CourseContext) SetSessions(sessions map[string]*coursetypes.Session) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.sessions = sessions
}

// GetCurrentSessionID returns the active session ID.
func (ctx *CourseContext) GetCurrentSessionID() string {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.currentSessionID
}

// SetCurrentSessionID sets the active session ID.
func (ctx *CourseContext) SetCurrentSessionID(id string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.currentSessionID = id
}

// GetMode returns the active agent mode.
func (ctx *CourseContext) GetMode() coursetypes.Mode {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.mode
}

// SetMode sets the active agent mode.
func (ctx *CourseContext) SetMode(mode coursetypes.Mode) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.mode = mode
}

// GetCurriculum returns the active session's curriculum, which may be nil.
func (ctx *CourseContext) GetCurriculum() *coursetypes.Curriculum {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.curriculum
}

// SetCurriculum sets the active session's curriculum.
func (ctx *CourseContext) SetCurriculum(curriculum *coursetypes.Curriculum) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.curriculum = curriculum
}

// GetAssessments returns the active session's assessments.
func (ctx *CourseContext) GetAssessments() []coursetypes.Assessment {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.assessments
}

// SetAssessments sets the active session's assessments.
func (ctx *CourseContext) SetAssessments(assessments []coursetypes.Assessment) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.assessments = assessments
}

// GetMessages returns the active session's per-mode message lists.
func (ctx *CourseContext) GetMessages() map[coursetypes.Mode][]coursetypes.Message {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.messages
}

// SetMessages sets the active session's per-mode message lists.
func (ctx *CourseContext) SetMessages(messages map[coursetypes.Mode][]coursetypes.Message) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.messages = messages
}

// IsGenerating reports whether a generation request is in flight.
func (ctx *CourseContext) IsGenerating() bool {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.generating
}

// SetGenerating sets the application-wide generating flag.
func (ctx *CourseContext) SetGenerating(generating bool) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.generating = generating
}

// GetSettings returns the current display settings.
func (ctx *CourseContext) GetSettings() coursetypes.UserSettings {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.settings
}

// SetSettings sets the current display settings.
func (ctx *CourseContext) SetSettings(settings coursetypes.UserSettings) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.settings = settings
}

// GetCurrentUser returns the authenticated user record, or nil.
func (ctx *CourseContext) GetCurrentUser() *coursetypes.User {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.currentUser
}

// SetCurrentUser sets the authenticated user record.
func (ctx *CourseContext) SetCurrentUser(user *coursetypes.User) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.currentUser = user
}

// PushNotification queues a user-visible notification.
func (ctx *CourseContext) PushNotification(n coursetypes.Notification) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.notifications = append(ctx.notifications, n)
}

// DrainNotifications returns all pending notifications and clears the queue.
func (ctx *CourseContext) DrainNotifications() []coursetypes.Notification {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	drained := ctx.notifications
	ctx.notifications = make([]coursetypes.Notification, 0)
	return drained
}

// SetTestMode enables or disables test mode for deterministic behavior.
func (ctx *CourseContext) SetTestMode(testMode bool) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.testMode = testMode
}

// IsTestMode returns whether test mode is currently enabled.
func (ctx *CourseContext) IsTestMode() bool {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.testMode
}

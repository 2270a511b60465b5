package coursetypes

// User is the minimal authenticated-user record exposed to the application.
// It never carries credentials.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credential is a stored account record. It lives only in the credential
// blob read by the auth service and is never exposed beyond a yes/no
// authentication answer.
type Credential struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// NotificationType classifies user-visible notifications.
type NotificationType string

// Supported notification types.
const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyInfo    NotificationType = "info"
)

// Notification is a transient user-visible message queued by services and
// drained by the presentation layer.
type Notification struct {
	ID      string           `json:"id"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

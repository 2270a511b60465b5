// Package store provides the durable persistence layer for CourseForge.
// It wraps a string-keyed blob store with the JSON (de)serialization used for
// sessions, settings, and auth records, including timestamp revival.
package store

// Blob keys used by the persistence layer. Each key holds one independent
// JSON blob; a key may be absent on first run.
const (
	SessionsKey    = "courseforge_sessions_v2"
	SettingsKey    = "courseforge_settings"
	CurrentUserKey = "courseforge_current_user"
	UsersKey       = "courseforge_users"
)

// KVStore is the durable key-value store contract. Implementations are
// synchronous and unbounded; a missing key is reported via the ok result, not
// an error.
type KVStore interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set writes the full value for key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases any resources held by the store.
	Close() error
}

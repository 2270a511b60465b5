package store

import (
	"encoding/json"
	"fmt"

	"courseforge/pkg/coursetypes"
)

// MarshalArchive serializes the full session archive (session collection plus
// active-session pointer) to its persisted JSON form. Timestamps are written
// as RFC 3339 strings so they revive losslessly.
func MarshalArchive(archive *coursetypes.SessionArchive) ([]byte, error) {
	data, err := json.Marshal(archive)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize session archive: %w", err)
	}
	return data, nil
}

// UnmarshalArchive revives a session archive from its persisted JSON form.
// Reviving a blob twice yields state equal to reviving it once.
func UnmarshalArchive(data []byte) (*coursetypes.SessionArchive, error) {
	var archive coursetypes.SessionArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("failed to revive session archive: %w", err)
	}
	if archive.Sessions == nil {
		archive.Sessions = make(map[string]*coursetypes.Session)
	}
	return &archive, nil
}

// LoadArchive reads and revives the session archive blob from the store.
// ok is false when no archive has been persisted yet (first run).
func LoadArchive(kv KVStore) (*coursetypes.SessionArchive, bool, error) {
	data, ok, err := kv.Get(SessionsKey)
	if err != nil || !ok {
		return nil, false, err
	}
	archive, err := UnmarshalArchive(data)
	if err != nil {
		return nil, false, err
	}
	return archive, true, nil
}

// SaveArchive serializes and writes the full session archive. The whole
// snapshot is always written; there are no partial writes.
func SaveArchive(kv KVStore, archive *coursetypes.SessionArchive) error {
	data, err := MarshalArchive(archive)
	if err != nil {
		return err
	}
	return kv.Set(SessionsKey, data)
}

// LoadSettings reads the settings blob, falling back to defaults when absent
// or unreadable fields are missing.
func LoadSettings(kv KVStore) (coursetypes.UserSettings, error) {
	settings := coursetypes.DefaultSettings()
	data, ok, err := kv.Get(SettingsKey)
	if err != nil || !ok {
		return settings, err
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return coursetypes.DefaultSettings(), fmt.Errorf("failed to revive settings: %w", err)
	}
	return settings, nil
}

// SaveSettings writes the flat settings blob. Last write wins.
func SaveSettings(kv KVStore, settings coursetypes.UserSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	return kv.Set(SettingsKey, data)
}

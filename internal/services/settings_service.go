package services

import (
	"fmt"

	"courseforge/internal/store"
	"courseforge/pkg/coursetypes"
)

// SettingsService owns user display preferences. Settings persist in their
// own blob, independent of sessions; last write wins.
type SettingsService struct {
	initialized bool
	ctx         coursetypes.Context
	kv          store.KVStore
}

// NewSettingsService creates a new SettingsService backed by the given store.
func NewSettingsService(ctx coursetypes.Context, kv store.KVStore) *SettingsService {
	return &SettingsService{ctx: ctx, kv: kv}
}

// Name returns the service name "settings" for registration.
func (s *SettingsService) Name() string {
	return "settings"
}

// Initialize loads persisted settings, falling back to defaults.
func (s *SettingsService) Initialize() error {
	settings, err := store.LoadSettings(s.kv)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	s.ctx.SetSettings(settings)
	s.initialized = true
	return nil
}

// Get returns the current settings.
func (s *SettingsService) Get() (coursetypes.UserSettings, error) {
	if !s.initialized {
		return coursetypes.UserSettings{}, fmt.Errorf("settings service not initialized")
	}
	return s.ctx.GetSettings(), nil
}

// Update applies a partial settings delta and persists the result.
func (s *SettingsService) Update(delta coursetypes.SettingsDelta) error {
	if !s.initialized {
		return fmt.Errorf("settings service not initialized")
	}

	settings := s.ctx.GetSettings()
	if delta.Theme != nil {
		settings.Theme = *delta.Theme
	}
	if delta.PrimaryColor != nil {
		settings.PrimaryColor = *delta.PrimaryColor
	}
	if delta.FontSize != nil {
		settings.FontSize = *delta.FontSize
	}
	if delta.IconSize != nil {
		settings.IconSize = *delta.IconSize
	}
	if delta.SidebarCollapsed != nil {
		settings.SidebarCollapsed = *delta.SidebarCollapsed
	}
	if delta.LayoutSpacing != nil {
		settings.LayoutSpacing = *delta.LayoutSpacing
	}

	s.ctx.SetSettings(settings)
	if err := store.SaveSettings(s.kv, settings); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

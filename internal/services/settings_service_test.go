package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseforge/internal/store"
	"courseforge/pkg/coursetypes"
)

func TestSettingsService_DefaultsOnFirstRun(t *testing.T) {
	h := newHarness(t)

	settings, err := h.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, coursetypes.DefaultSettings(), settings)
}

func TestSettingsService_PartialUpdate(t *testing.T) {
	h := newHarness(t)

	theme := coursetypes.ThemeLight
	color := "green"
	require.NoError(t, h.settings.Update(coursetypes.SettingsDelta{
		Theme:        &theme,
		PrimaryColor: &color,
	}))

	settings, err := h.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, coursetypes.ThemeLight, settings.Theme)
	assert.Equal(t, "green", settings.PrimaryColor)
	// Untouched fields keep their values
	assert.Equal(t, coursetypes.SizeMedium, settings.FontSize)
	assert.False(t, settings.SidebarCollapsed)
}

func TestSettingsService_LastWriteWinsAndPersists(t *testing.T) {
	h := newHarness(t)

	first := "purple"
	second := "blue"
	require.NoError(t, h.settings.Update(coursetypes.SettingsDelta{PrimaryColor: &first}))
	require.NoError(t, h.settings.Update(coursetypes.SettingsDelta{PrimaryColor: &second}))

	persisted, err := store.LoadSettings(h.kv)
	require.NoError(t, err)
	assert.Equal(t, "blue", persisted.PrimaryColor)
}

func TestSettingsService_ReloadsPersistedValues(t *testing.T) {
	h := newHarness(t)

	collapsed := true
	require.NoError(t, h.settings.Update(coursetypes.SettingsDelta{SidebarCollapsed: &collapsed}))

	fresh := NewSettingsService(h.ctx, h.kv)
	require.NoError(t, fresh.Initialize())

	settings, err := fresh.Get()
	require.NoError(t, err)
	assert.True(t, settings.SidebarCollapsed)
}

func TestSettingsService_RequiresInitialization(t *testing.T) {
	svc := NewSettingsService(nil, store.NewMemoryStore())
	err := svc.Update(coursetypes.SettingsDelta{})
	assert.Error(t, err)
}

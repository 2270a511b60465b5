package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseforge/pkg/coursetypes"
)

func TestAgentCatalog_LoadsAllProfiles(t *testing.T) {
	catalog := NewAgentCatalogService()
	require.NoError(t, catalog.Initialize())

	for _, mode := range coursetypes.AllModes {
		profile, err := catalog.GetProfile(mode)
		require.NoError(t, err, "profile for mode %s", mode)
		assert.Equal(t, mode, profile.Mode)
		assert.NotEmpty(t, profile.SystemPrompt)
	}
}

func TestAgentCatalog_ProfileShapes(t *testing.T) {
	catalog := NewAgentCatalogService()
	require.NoError(t, catalog.Initialize())

	coach, err := catalog.GetProfile(coursetypes.ModeCoach)
	require.NoError(t, err)
	assert.True(t, coach.Streaming)
	assert.False(t, coach.JSONOutput)
	assert.InDelta(t, 0.5, coach.Temperature, 0.001)

	curriculum, err := catalog.GetProfile(coursetypes.ModeCurriculum)
	require.NoError(t, err)
	assert.False(t, curriculum.Streaming)
	assert.True(t, curriculum.JSONOutput)
	assert.InDelta(t, 0.2, curriculum.Temperature, 0.001)

	assessment, err := catalog.GetProfile(coursetypes.ModeAssessment)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, assessment.Temperature, 0.001)

	adaptive, err := catalog.GetProfile(coursetypes.ModeAdaptive)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, adaptive.Temperature, 0.001)
}

func TestAgentCatalog_RequiresInitialization(t *testing.T) {
	catalog := NewAgentCatalogService()

	_, err := catalog.GetProfile(coursetypes.ModeCoach)
	assert.Error(t, err)
}

func TestAgentCatalog_UnknownMode(t *testing.T) {
	catalog := NewAgentCatalogService()
	require.NoError(t, catalog.Initialize())

	_, err := catalog.GetProfile("tutor")
	assert.Error(t, err)
}

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseforge/pkg/coursetypes"
)

func sampleArchive(t *testing.T) *coursetypes.SessionArchive {
	t.Helper()

	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return &coursetypes.SessionArchive{
		CurrentSessionID: "s-1",
		Sessions: map[string]*coursetypes.Session{
			"s-1": {
				ID:           "s-1",
				Title:        "Python for Beginners",
				LastModified: created.Add(time.Hour),
				Mode:         coursetypes.ModeCoach,
				Curriculum: &coursetypes.Curriculum{
					Title:                  "Python for Beginners",
					Description:            "Intro course",
					TargetAudience:         "Beginners",
					DifficultyLevel:        coursetypes.DifficultyBeginner,
					EstimatedTotalDuration: "4 weeks",
					Modules:                []coursetypes.Module{},
				},
				Assessments: []coursetypes.Assessment{},
				Messages: map[coursetypes.Mode][]coursetypes.Message{
					coursetypes.ModeCurriculum: {
						{ID: "m-1", Role: coursetypes.RoleUser, Text: "teach python", Timestamp: created},
						{ID: "m-2", Role: coursetypes.RoleModel, Text: "done", Timestamp: created.Add(time.Minute), Feedback: coursetypes.FeedbackUp},
					},
				},
			},
		},
	}
}

// Reviving a serialized archive twice must equal reviving it once, including
// every timestamp.
func TestArchiveRoundTripIdempotence(t *testing.T) {
	original := sampleArchive(t)

	first, err := MarshalArchive(original)
	require.NoError(t, err)
	onceRevived, err := UnmarshalArchive(first)
	require.NoError(t, err)

	second, err := MarshalArchive(onceRevived)
	require.NoError(t, err)
	twiceRevived, err := UnmarshalArchive(second)
	require.NoError(t, err)

	assert.Equal(t, onceRevived, twiceRevived)
	assert.True(t, original.Sessions["s-1"].LastModified.Equal(twiceRevived.Sessions["s-1"].LastModified))
	assert.True(t, original.Sessions["s-1"].Messages[coursetypes.ModeCurriculum][0].Timestamp.Equal(
		twiceRevived.Sessions["s-1"].Messages[coursetypes.ModeCurriculum][0].Timestamp))
}

func TestUnmarshalArchive_NilSessions(t *testing.T) {
	archive, err := UnmarshalArchive([]byte(`{"currentSessionId":""}`))
	require.NoError(t, err)
	assert.NotNil(t, archive.Sessions)
}

func TestUnmarshalArchive_Malformed(t *testing.T) {
	_, err := UnmarshalArchive([]byte(`{not json`))
	assert.Error(t, err)
}

func TestLoadArchive_FirstRun(t *testing.T) {
	kv := NewMemoryStore()
	_, ok, err := LoadArchive(kv)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveAndLoadArchive(t *testing.T) {
	kv := NewMemoryStore()
	require.NoError(t, SaveArchive(kv, sampleArchive(t)))

	loaded, ok, err := LoadArchive(kv)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "s-1", loaded.CurrentSessionID)
	assert.Equal(t, "Python for Beginners", loaded.Sessions["s-1"].Title)
}

func TestLoadSettings_DefaultsWhenAbsent(t *testing.T) {
	kv := NewMemoryStore()
	settings, err := LoadSettings(kv)
	require.NoError(t, err)
	assert.Equal(t, coursetypes.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	kv := NewMemoryStore()
	settings := coursetypes.DefaultSettings()
	settings.Theme = coursetypes.ThemeLight
	settings.PrimaryColor = "green"
	require.NoError(t, SaveSettings(kv, settings))

	loaded, err := LoadSettings(kv)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	coursectx "courseforge/internal/context"
	"courseforge/internal/store"
	"courseforge/internal/testutils"
	"courseforge/pkg/coursetypes"
)

// harness wires the full service stack onto a memory store with a mock
// provider and deterministic IDs and timestamps.
type harness struct {
	ctx           coursetypes.Context
	kv            *store.MemoryStore
	provider      *MockProvider
	notifications *NotificationService
	catalog       *AgentCatalogService
	sessions      *SessionService
	settings      *SettingsService
	auth          *AuthService
	orchestrator  *OrchestratorService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	testutils.ResetTestCounters()

	ctx := coursectx.New()
	ctx.SetTestMode(true)
	kv := store.NewMemoryStore()
	provider := NewMockProvider()

	h := &harness{
		ctx:           ctx,
		kv:            kv,
		provider:      provider,
		notifications: NewNotificationService(ctx),
		catalog:       NewAgentCatalogService(),
	}
	h.sessions = NewSessionService(ctx, kv, h.notifications)
	h.settings = NewSettingsService(ctx, kv)
	h.auth = NewAuthService(ctx, kv, h.notifications)
	h.orchestrator = NewOrchestratorService(ctx, h.sessions, h.catalog, provider, h.notifications)

	require.NoError(t, h.notifications.Initialize())
	require.NoError(t, h.catalog.Initialize())
	require.NoError(t, h.sessions.Initialize())
	require.NoError(t, h.settings.Initialize())
	require.NoError(t, h.auth.Initialize())
	require.NoError(t, h.orchestrator.Initialize())

	// Discard bootstrap notifications so tests see only their own
	h.notifications.Drain()
	return h
}

// messages returns the active conversation for a mode.
func (h *harness) messages(mode coursetypes.Mode) []coursetypes.Message {
	return h.ctx.GetMessages()[mode]
}

// lastMessage returns the newest message in a mode's conversation.
func (h *harness) lastMessage(t *testing.T, mode coursetypes.Mode) coursetypes.Message {
	t.Helper()
	msgs := h.messages(mode)
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

// notificationMessages drains the queue and returns just the texts.
func (h *harness) notificationMessages() []string {
	var out []string
	for _, n := range h.notifications.Drain() {
		out = append(out, n.Message)
	}
	return out
}

// sampleCurriculumJSON returns a schema-valid curriculum document.
func sampleCurriculumJSON(t *testing.T, title string) string {
	t.Helper()

	c := coursetypes.Curriculum{
		Title:                  title,
		Description:            "A structured course",
		TargetAudience:         "Beginners",
		DifficultyLevel:        coursetypes.DifficultyBeginner,
		EstimatedTotalDuration: "4 weeks",
		Modules: []coursetypes.Module{
			{
				Title:       "Getting Started",
				Description: "Setup and Basics",
				Lessons: []coursetypes.Lesson{
					{Title: "Install", Duration: "15 min", Type: coursetypes.LessonVideo, Objectives: []string{"Set up the tools"}},
				},
			},
			{
				Title:       "Core Concepts",
				Description: "Variables and control flow",
				Lessons: []coursetypes.Lesson{
					{Title: "Variables", Duration: "30 min", Type: coursetypes.LessonText, Objectives: []string{"Declare variables"}},
				},
			},
		},
	}
	data, err := json.Marshal(c)
	require.NoError(t, err)
	return string(data)
}

// sampleQuizJSON returns a schema-valid quiz assessment document.
func sampleQuizJSON(t *testing.T) string {
	t.Helper()

	a := coursetypes.Assessment{
		Title:         "Module 1 Quiz",
		TargetContext: "Module 1: Getting Started",
		Type:          coursetypes.AssessmentQuiz,
		TotalPoints:   10,
		Questions: []coursetypes.Question{
			{ID: 1, Text: "What did you install?", Type: coursetypes.QuestionShortAnswer, Points: 10},
		},
	}
	data, err := json.Marshal(a)
	require.NoError(t, err)
	return string(data)
}

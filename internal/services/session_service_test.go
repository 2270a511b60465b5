package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseforge/internal/store"
	"courseforge/pkg/coursetypes"
)

func TestSessionService_InitializeCreatesFirstSession(t *testing.T) {
	h := newHarness(t)

	sessions := h.ctx.GetSessions()
	require.Len(t, sessions, 1)

	id := h.ctx.GetCurrentSessionID()
	session := sessions[id]
	assert.Equal(t, coursetypes.PlaceholderTitle, session.Title)
	assert.Equal(t, coursetypes.ModeCurriculum, session.Mode)
	assert.Nil(t, session.Curriculum)

	// Four mode-keyed welcome messages
	for _, mode := range coursetypes.AllModes {
		msgs := h.messages(mode)
		require.Len(t, msgs, 1, "mode %s", mode)
		assert.Equal(t, coursetypes.RoleModel, msgs[0].Role)
		assert.NotEmpty(t, msgs[0].Text)
	}
}

func TestSessionService_InitializeRestoresArchive(t *testing.T) {
	h := newHarness(t)
	firstID := h.ctx.GetCurrentSessionID()
	require.NoError(t, h.sessions.RenameSession(firstID, "My Course"))

	// A second service over the same store sees the persisted state
	restored := NewSessionService(h.ctx, h.kv, h.notifications)
	require.NoError(t, restored.Initialize())

	assert.Equal(t, firstID, h.ctx.GetCurrentSessionID())
	assert.Equal(t, "My Course", h.ctx.GetSessions()[firstID].Title)
}

func TestSessionService_SwitchUnknownIDIsNoOp(t *testing.T) {
	h := newHarness(t)
	before := h.ctx.GetCurrentSessionID()

	require.NoError(t, h.sessions.SwitchSession("does-not-exist"))
	assert.Equal(t, before, h.ctx.GetCurrentSessionID())
}

func TestSessionService_SwitchSwapsWorkingState(t *testing.T) {
	h := newHarness(t)
	firstID := h.ctx.GetCurrentSessionID()

	curriculum := &coursetypes.Curriculum{Title: "Go 101"}
	require.NoError(t, h.sessions.SetCurriculum(curriculum))
	require.NoError(t, h.sessions.SetMode(coursetypes.ModeCoach))

	require.NoError(t, h.sessions.CreateSession())
	secondID := h.ctx.GetCurrentSessionID()
	require.NotEqual(t, firstID, secondID)

	// Fresh session resets the working state
	assert.Nil(t, h.ctx.GetCurriculum())
	assert.Equal(t, coursetypes.ModeCurriculum, h.ctx.GetMode())

	// Switching back restores the first session's snapshot
	require.NoError(t, h.sessions.SwitchSession(firstID))
	assert.Equal(t, "Go 101", h.ctx.GetCurriculum().Title)
	assert.Equal(t, coursetypes.ModeCoach, h.ctx.GetMode())
}

func TestSessionService_DeleteNonActiveKeepsState(t *testing.T) {
	h := newHarness(t)
	firstID := h.ctx.GetCurrentSessionID()
	require.NoError(t, h.sessions.CreateSession())
	activeID := h.ctx.GetCurrentSessionID()

	require.NoError(t, h.sessions.DeleteSession(firstID))

	assert.Equal(t, activeID, h.ctx.GetCurrentSessionID())
	assert.Len(t, h.ctx.GetSessions(), 1)
}

func TestSessionService_DeleteActiveFallsBackToMostRecent(t *testing.T) {
	h := newHarness(t)
	sessions := h.ctx.GetSessions()

	require.NoError(t, h.sessions.CreateSession())
	require.NoError(t, h.sessions.CreateSession())
	activeID := h.ctx.GetCurrentSessionID()
	require.Len(t, sessions, 3)

	var survivorA, survivorB string
	for id := range sessions {
		if id == activeID {
			continue
		}
		if survivorA == "" {
			survivorA = id
		} else {
			survivorB = id
		}
	}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions[survivorA].LastModified = base
	sessions[survivorB].LastModified = base.Add(time.Hour)

	require.NoError(t, h.sessions.DeleteSession(activeID))
	assert.Equal(t, survivorB, h.ctx.GetCurrentSessionID())
	assert.Len(t, h.ctx.GetSessions(), 2)
}

func TestSessionService_DeleteActiveTieBreaksOnLargerID(t *testing.T) {
	h := newHarness(t)
	sessions := h.ctx.GetSessions()

	require.NoError(t, h.sessions.CreateSession())
	require.NoError(t, h.sessions.CreateSession())
	activeID := h.ctx.GetCurrentSessionID()

	tie := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var largest string
	for id, session := range sessions {
		if id == activeID {
			continue
		}
		session.LastModified = tie
		if id > largest {
			largest = id
		}
	}

	require.NoError(t, h.sessions.DeleteSession(activeID))
	assert.Equal(t, largest, h.ctx.GetCurrentSessionID())
}

func TestSessionService_DeleteLastSessionCreatesReplacement(t *testing.T) {
	h := newHarness(t)
	onlyID := h.ctx.GetCurrentSessionID()

	require.NoError(t, h.sessions.DeleteSession(onlyID))

	newID := h.ctx.GetCurrentSessionID()
	assert.NotEqual(t, onlyID, newID)
	assert.Len(t, h.ctx.GetSessions(), 1)
	assert.Equal(t, coursetypes.PlaceholderTitle, h.ctx.GetSessions()[newID].Title)
}

func TestSessionService_WriteThroughPersistsEveryMutation(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.sessions.SetMode(coursetypes.ModeAdaptive))

	archive, ok, err := store.LoadArchive(h.kv)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, coursetypes.ModeAdaptive, archive.Sessions[h.ctx.GetCurrentSessionID()].Mode)

	require.NoError(t, h.sessions.AppendMessage(coursetypes.ModeAdaptive, coursetypes.Message{
		ID: "m-x", Role: coursetypes.RoleUser, Text: "hello",
	}))

	archive, _, err = store.LoadArchive(h.kv)
	require.NoError(t, err)
	persisted := archive.Sessions[h.ctx.GetCurrentSessionID()].Messages[coursetypes.ModeAdaptive]
	assert.Equal(t, "hello", persisted[len(persisted)-1].Text)
}

func TestSessionService_WriteThroughRefreshesLastModified(t *testing.T) {
	h := newHarness(t)
	id := h.ctx.GetCurrentSessionID()
	before := h.ctx.GetSessions()[id].LastModified

	require.NoError(t, h.sessions.SetMode(coursetypes.ModeCoach))

	after := h.ctx.GetSessions()[id].LastModified
	assert.True(t, after.After(before))
}

func TestSessionService_AppendToMessage(t *testing.T) {
	h := newHarness(t)

	msg := coursetypes.Message{ID: "stream-1", Role: coursetypes.RoleModel, Text: ""}
	require.NoError(t, h.sessions.AppendMessage(coursetypes.ModeCoach, msg))

	require.NoError(t, h.sessions.AppendToMessage(coursetypes.ModeCoach, "stream-1", "Hello"))
	require.NoError(t, h.sessions.AppendToMessage(coursetypes.ModeCoach, "stream-1", " world"))

	last := h.lastMessage(t, coursetypes.ModeCoach)
	assert.Equal(t, "Hello world", last.Text)

	assert.Error(t, h.sessions.AppendToMessage(coursetypes.ModeCoach, "missing", "x"))
}

func TestSessionService_SubmitFeedback(t *testing.T) {
	h := newHarness(t)

	welcome := h.messages(coursetypes.ModeCurriculum)[0]
	require.NoError(t, h.sessions.SubmitFeedback(welcome.ID, coursetypes.FeedbackUp))

	assert.Equal(t, coursetypes.FeedbackUp, h.messages(coursetypes.ModeCurriculum)[0].Feedback)
	assert.Contains(t, h.notificationMessages(), "Thanks for the positive feedback!")
}

func TestSessionService_ResetAllWipesStore(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.sessions.SetCurriculum(&coursetypes.Curriculum{Title: "Go 101"}))
	oldID := h.ctx.GetCurrentSessionID()

	require.NoError(t, h.sessions.ResetAll())

	assert.NotEqual(t, oldID, h.ctx.GetCurrentSessionID())
	assert.Len(t, h.ctx.GetSessions(), 1)
	assert.Nil(t, h.ctx.GetCurriculum())
	assert.Equal(t, coursetypes.DefaultSettings(), h.ctx.GetSettings())
}

package services

import (
	"fmt"
	"sort"

	"courseforge/internal/logger"
	"courseforge/internal/store"
	"courseforge/internal/testutils"
	"courseforge/pkg/coursetypes"
)

// Welcome text seeded into each mode's conversation for a new session.
var welcomeTexts = map[coursetypes.Mode]string{
	coursetypes.ModeCurriculum: "Hello! I am your Curriculum Architect. \n\nTell me about the course topic you want to teach, and I will design a structured blueprint for you.",
	coursetypes.ModeAssessment: "I am the Assessment Designer. \n\nOnce you have a curriculum, I can create quizzes and assignments for specific modules. Just ask!",
	coursetypes.ModeAdaptive:   "I am your Adaptive Learning Specialist. \n\nDoes the current curriculum need adjustment? Tell me your learning style (e.g., Visual, Auditory) or constraints (e.g., 'Make it 1 week long'), and I will personalize the path.",
	coursetypes.ModeCoach:      "I am your Coach Assistant. \n\nI can explain complex concepts, suggest teaching strategies, or draft lesson content for you. What do you need help with.",
}

// SessionService owns the session collection and the active-session working
// state. Every mutation to active curriculum, assessments, messages, or mode
// triggers a synchronous write-through of the full session archive.
type SessionService struct {
	initialized   bool
	ctx           coursetypes.Context
	kv            store.KVStore
	notifications *NotificationService
}

// NewSessionService creates a new SessionService backed by the given store.
func NewSessionService(ctx coursetypes.Context, kv store.KVStore, notifications *NotificationService) *SessionService {
	return &SessionService{ctx: ctx, kv: kv, notifications: notifications}
}

// Name returns the service name "session" for registration.
func (s *SessionService) Name() string {
	return "session"
}

// Initialize restores the persisted session archive, or creates the first
// session when the store is empty.
func (s *SessionService) Initialize() error {
	s.initialized = true

	archive, ok, err := store.LoadArchive(s.kv)
	if err != nil {
		return fmt.Errorf("failed to load session archive: %w", err)
	}

	if !ok || len(archive.Sessions) == 0 {
		if err := s.CreateSession(); err != nil {
			return err
		}
		// The first session is an implicit creation, not a user action
		s.ctx.DrainNotifications()
		return nil
	}

	s.ctx.SetSessions(archive.Sessions)
	s.ctx.SetCurrentSessionID(archive.CurrentSessionID)
	if current, exists := archive.Sessions[archive.CurrentSessionID]; exists {
		s.loadWorkingState(current)
	}

	logger.Debug("Session archive restored", "sessions", len(archive.Sessions))
	return nil
}

// newWelcomeMessages seeds the four mode-keyed welcome messages.
func (s *SessionService) newWelcomeMessages() map[coursetypes.Mode][]coursetypes.Message {
	messages := make(map[coursetypes.Mode][]coursetypes.Message, len(coursetypes.AllModes))
	for _, mode := range coursetypes.AllModes {
		messages[mode] = []coursetypes.Message{{
			ID:        testutils.GenerateUUID(s.ctx),
			Role:      coursetypes.RoleModel,
			Text:      welcomeTexts[mode],
			Timestamp: testutils.GetCurrentTime(s.ctx),
		}}
	}
	return messages
}

// CreateSession allocates a fresh session, makes it active, and resets the
// working state to empty curriculum, empty assessments, and welcome messages.
func (s *SessionService) CreateSession() error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	session := &coursetypes.Session{
		ID:           testutils.GenerateUUID(s.ctx),
		Title:        coursetypes.PlaceholderTitle,
		LastModified: testutils.GetCurrentTime(s.ctx),
		Mode:         coursetypes.ModeCurriculum,
		Curriculum:   nil,
		Assessments:  []coursetypes.Assessment{},
		Messages:     s.newWelcomeMessages(),
	}

	sessions := s.ctx.GetSessions()
	sessions[session.ID] = session
	s.ctx.SetSessions(sessions)
	s.ctx.SetCurrentSessionID(session.ID)
	s.loadWorkingState(session)

	if err := s.persistArchive(); err != nil {
		return err
	}

	_ = s.notifications.Notify("New session created", coursetypes.NotifyInfo)
	logger.ServiceOperation("session", "create", "id", session.ID)
	return nil
}

// SwitchSession makes the target session active and swaps the working state
// to its snapshot. Unknown ids are a silent no-op. The session being left is
// not touched; its write-through already captured it.
func (s *SessionService) SwitchSession(id string) error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	target, exists := s.ctx.GetSessions()[id]
	if !exists {
		return nil
	}

	s.ctx.SetCurrentSessionID(id)
	s.loadWorkingState(target)

	if err := s.persistArchive(); err != nil {
		return err
	}

	_ = s.notifications.Notify(fmt.Sprintf("Switched to %q", target.Title), coursetypes.NotifyInfo)
	return nil
}

// DeleteSession removes a session. Deleting the active session falls back to
// the most recently modified survivor, or creates a replacement when none
// remain. Equal timestamps break toward the larger session id.
func (s *SessionService) DeleteSession(id string) error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	sessions := s.ctx.GetSessions()
	if _, exists := sessions[id]; !exists {
		return nil
	}
	delete(sessions, id)
	s.ctx.SetSessions(sessions)

	if id != s.ctx.GetCurrentSessionID() {
		return s.persistArchive()
	}

	if len(sessions) == 0 {
		return s.CreateSession()
	}

	ids := make([]string, 0, len(sessions))
	for sid := range sessions {
		ids = append(ids, sid)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := sessions[ids[i]], sessions[ids[j]]
		if !a.LastModified.Equal(b.LastModified) {
			return a.LastModified.After(b.LastModified)
		}
		return a.ID > b.ID
	})

	return s.SwitchSession(ids[0])
}

// RenameSession sets a session's display title.
func (s *SessionService) RenameSession(id string, title string) error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	session, exists := s.ctx.GetSessions()[id]
	if !exists {
		return fmt.Errorf("session %s not found", id)
	}
	session.Title = title
	return s.persistArchive()
}

// SetMode switches the active agent mode.
func (s *SessionService) SetMode(mode coursetypes.Mode) error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}
	if !mode.Valid() {
		return fmt.Errorf("invalid mode %q", mode)
	}

	s.ctx.SetMode(mode)
	return s.saveActive()
}

// SetCurriculum replaces the active session's curriculum wholesale.
func (s *SessionService) SetCurriculum(curriculum *coursetypes.Curriculum) error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	s.ctx.SetCurriculum(curriculum)
	return s.saveActive()
}

// PrependAssessment inserts a new assessment at the head of the list.
func (s *SessionService) PrependAssessment(assessment coursetypes.Assessment) error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	s.ctx.SetAssessments(append([]coursetypes.Assessment{assessment}, s.ctx.GetAssessments()...))
	return s.saveActive()
}

// AppendMessage adds a message to the given mode's conversation.
func (s *SessionService) AppendMessage(mode coursetypes.Mode, msg coursetypes.Message) error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	messages := s.ctx.GetMessages()
	messages[mode] = append(messages[mode], msg)
	s.ctx.SetMessages(messages)
	return s.saveActive()
}

// AppendToMessage appends a text fragment to an existing message. Used for
// streamed model replies; fragments are applied in arrival order.
func (s *SessionService) AppendToMessage(mode coursetypes.Mode, messageID string, fragment string) error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	messages := s.ctx.GetMessages()
	list := messages[mode]
	for i := range list {
		if list[i].ID == messageID {
			list[i].Text += fragment
			messages[mode] = list
			s.ctx.SetMessages(messages)
			return s.saveActive()
		}
	}
	return fmt.Errorf("message %s not found in mode %s", messageID, mode)
}

// SubmitFeedback records an up or down vote on a message in the active mode.
func (s *SessionService) SubmitFeedback(messageID string, vote coursetypes.FeedbackVote) error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	messages := s.ctx.GetMessages()
	mode := s.ctx.GetMode()
	list := messages[mode]
	for i := range list {
		if list[i].ID == messageID {
			list[i].Feedback = vote
			messages[mode] = list
			s.ctx.SetMessages(messages)
			if err := s.saveActive(); err != nil {
				return err
			}
			if vote == coursetypes.FeedbackUp {
				_ = s.notifications.Notify("Thanks for the positive feedback!", coursetypes.NotifyInfo)
			} else {
				_ = s.notifications.Notify("Feedback received. We'll improve.", coursetypes.NotifyInfo)
			}
			return nil
		}
	}
	return fmt.Errorf("message %s not found in mode %s", messageID, mode)
}

// ResetAll wipes every persisted blob and starts over with one fresh session.
func (s *SessionService) ResetAll() error {
	if !s.initialized {
		return fmt.Errorf("session service not initialized")
	}

	for _, key := range []string{store.SessionsKey, store.SettingsKey, store.CurrentUserKey} {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to clear stored data: %w", err)
		}
	}

	s.ctx.SetSessions(make(map[string]*coursetypes.Session))
	s.ctx.SetCurrentSessionID("")
	s.ctx.SetSettings(coursetypes.DefaultSettings())
	s.ctx.SetCurrentUser(nil)
	return s.CreateSession()
}

// loadWorkingState copies a session's snapshot into the active working state.
func (s *SessionService) loadWorkingState(session *coursetypes.Session) {
	s.ctx.SetMode(session.Mode)
	s.ctx.SetCurriculum(session.Curriculum)
	s.ctx.SetAssessments(session.Assessments)
	s.ctx.SetMessages(session.Messages)
}

// saveActive recomputes the active session's snapshot with a fresh
// last-modified timestamp and writes the whole archive through to the store.
func (s *SessionService) saveActive() error {
	id := s.ctx.GetCurrentSessionID()
	if id == "" {
		return nil
	}
	sessions := s.ctx.GetSessions()
	session, exists := sessions[id]
	if !exists {
		return nil
	}

	session.Mode = s.ctx.GetMode()
	session.Curriculum = s.ctx.GetCurriculum()
	session.Assessments = s.ctx.GetAssessments()
	session.Messages = s.ctx.GetMessages()
	session.LastModified = testutils.GetCurrentTime(s.ctx)

	return s.persistArchive()
}

// persistArchive serializes the full session collection plus the active
// pointer. Always the whole snapshot; there are no partial writes.
func (s *SessionService) persistArchive() error {
	archive := &coursetypes.SessionArchive{
		Sessions:         s.ctx.GetSessions(),
		CurrentSessionID: s.ctx.GetCurrentSessionID(),
	}
	if err := store.SaveArchive(s.kv, archive); err != nil {
		return fmt.Errorf("failed to persist sessions: %w", err)
	}
	return nil
}

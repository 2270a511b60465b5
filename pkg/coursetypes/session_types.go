package coursetypes

import "time"

// Mode selects which agent profile handles a submission and which document
// the user is working on.
type Mode string

// The four fixed agent modes.
const (
	ModeCurriculum Mode = "curriculum"
	ModeAssessment Mode = "assessment"
	ModeAdaptive   Mode = "adaptive"
	ModeCoach      Mode = "coach"
)

// AllModes lists every mode in presentation order.
var AllModes = []Mode{ModeCurriculum, ModeAssessment, ModeAdaptive, ModeCoach}

// Valid reports whether m is one of the four supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeCurriculum, ModeAssessment, ModeAdaptive, ModeCoach:
		return true
	}
	return false
}

// MessageRole identifies the author of a message.
type MessageRole string

// Supported message roles.
const (
	RoleUser   MessageRole = "user"
	RoleModel  MessageRole = "model"
	RoleSystem MessageRole = "system"
)

// FeedbackVote is a user's rating of a model message.
type FeedbackVote string

// Supported feedback votes.
const (
	FeedbackUp   FeedbackVote = "up"
	FeedbackDown FeedbackVote = "down"
)

// Message is a single conversation entry. Streamed model messages have their
// Text appended to incrementally; all other fields are immutable after
// creation. A message belongs to exactly one mode of one session.
type Message struct {
	ID        string       `json:"id"`
	Role      MessageRole  `json:"role"`
	Text      string       `json:"text"`
	Timestamp time.Time    `json:"timestamp"`
	Feedback  FeedbackVote `json:"feedback,omitempty"`
}

// Session title placeholders. A placeholder title is replaced by the
// curriculum title on first curriculum creation; user-chosen titles never are.
const (
	PlaceholderTitle = "Untitled Course"
	MigratedTitle    = "Migrated Session"
)

// Session is the unit of persistence: one curriculum, its assessments, and
// the four mode-keyed conversation histories.
type Session struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	LastModified time.Time          `json:"lastModified"`
	Mode         Mode               `json:"mode"`
	Curriculum   *Curriculum        `json:"curriculum"`
	Assessments  []Assessment       `json:"assessments"`
	Messages     map[Mode][]Message `json:"messages"`
}

// SessionArchive is the persisted blob holding the full session collection
// plus the active-session pointer. It is always written as a whole snapshot.
type SessionArchive struct {
	Sessions         map[string]*Session `json:"sessions"`
	CurrentSessionID string              `json:"currentSessionId"`
}

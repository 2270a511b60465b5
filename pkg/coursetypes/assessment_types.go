package coursetypes

import "fmt"

// AssessmentType distinguishes graded quizzes from rubric-based assignments.
type AssessmentType string

// Supported assessment types.
const (
	AssessmentQuiz       AssessmentType = "Quiz"
	AssessmentAssignment AssessmentType = "Assignment"
)

// Valid reports whether t is one of the supported assessment types.
func (t AssessmentType) Valid() bool {
	return t == AssessmentQuiz || t == AssessmentAssignment
}

// QuestionType tags a quiz question's answer format.
type QuestionType string

// Supported question types.
const (
	QuestionMultipleChoice QuestionType = "Multiple Choice"
	QuestionShortAnswer    QuestionType = "Short Answer"
)

// Question is a single graded quiz item.
type Question struct {
	ID            int          `json:"id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	Points        float64      `json:"points"`
}

// RubricItem is a single grading criterion for an assignment.
type RubricItem struct {
	Criteria    string  `json:"criteria"`
	Description string  `json:"description"`
	MaxPoints   float64 `json:"maxPoints"`
}

// Assessment is a quiz or assignment tied to a curriculum region via its
// free-text TargetContext. Quizzes carry questions, assignments carry a
// rubric; the two never coexist.
type Assessment struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	TargetContext string         `json:"targetContext"`
	Type          AssessmentType `json:"type"`
	Questions     []Question     `json:"questions,omitempty"`
	Rubric        []RubricItem   `json:"rubric,omitempty"`
	TotalPoints   float64        `json:"totalPoints"`
}

// Validate checks the required fields and the question/rubric exclusivity
// rule. Enforced before an assessment is accepted into state.
func (a *Assessment) Validate() error {
	if a == nil {
		return fmt.Errorf("assessment is nil")
	}
	if a.Title == "" {
		return fmt.Errorf("assessment title is required")
	}
	if a.TargetContext == "" {
		return fmt.Errorf("assessment target context is required")
	}
	if !a.Type.Valid() {
		return fmt.Errorf("invalid assessment type %q", a.Type)
	}
	switch a.Type {
	case AssessmentQuiz:
		if len(a.Questions) == 0 {
			return fmt.Errorf("quiz assessment requires questions")
		}
		if len(a.Rubric) > 0 {
			return fmt.Errorf("quiz assessment must not carry a rubric")
		}
	case AssessmentAssignment:
		if len(a.Rubric) == 0 {
			return fmt.Errorf("assignment assessment requires a rubric")
		}
		if len(a.Questions) > 0 {
			return fmt.Errorf("assignment assessment must not carry questions")
		}
	}
	return nil
}

package coursetypes

import "fmt"

// DifficultyLevel is the curriculum difficulty tier.
type DifficultyLevel string

// Supported difficulty tiers.
const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
)

// Valid reports whether d is one of the supported difficulty tiers.
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// LessonType tags a lesson's delivery format.
type LessonType string

// Supported lesson types.
const (
	LessonVideo      LessonType = "Video"
	LessonText       LessonType = "Text"
	LessonQuiz       LessonType = "Quiz"
	LessonAssignment LessonType = "Assignment"
)

// Valid reports whether t is one of the supported lesson types.
func (t LessonType) Valid() bool {
	switch t {
	case LessonVideo, LessonText, LessonQuiz, LessonAssignment:
		return true
	}
	return false
}

// Lesson is a single teachable unit inside a module.
type Lesson struct {
	Title      string     `json:"title"`
	Duration   string     `json:"duration"`
	Type       LessonType `json:"type"`
	Objectives []string   `json:"objectives"`
}

// Module is an ordered group of lessons inside a curriculum.
type Module struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Lessons     []Lesson `json:"lessons"`
}

// Curriculum is the structured course document shared across agent modes.
// It is the unit the curriculum and adaptive modes replace wholesale.
type Curriculum struct {
	Title                  string          `json:"title"`
	Description            string          `json:"description"`
	TargetAudience         string          `json:"targetAudience"`
	DifficultyLevel        DifficultyLevel `json:"difficultyLevel"`
	EstimatedTotalDuration string          `json:"estimatedTotalDuration"`
	Modules                []Module        `json:"modules"`
}

// Validate checks the full required-field schema. A curriculum that fails
// validation must never be stored; there is no partial acceptance.
func (c *Curriculum) Validate() error {
	if c == nil {
		return fmt.Errorf("curriculum is nil")
	}
	if c.Title == "" {
		return fmt.Errorf("curriculum title is required")
	}
	if c.Description == "" {
		return fmt.Errorf("curriculum description is required")
	}
	if c.TargetAudience == "" {
		return fmt.Errorf("curriculum target audience is required")
	}
	if !c.DifficultyLevel.Valid() {
		return fmt.Errorf("invalid difficulty level %q", c.DifficultyLevel)
	}
	if c.EstimatedTotalDuration == "" {
		return fmt.Errorf("curriculum estimated total duration is required")
	}
	if c.Modules == nil {
		return fmt.Errorf("curriculum modules are required")
	}
	for i, module := range c.Modules {
		if module.Title == "" {
			return fmt.Errorf("module %d title is required", i)
		}
		if module.Description == "" {
			return fmt.Errorf("module %d description is required", i)
		}
		if module.Lessons == nil {
			return fmt.Errorf("module %d lessons are required", i)
		}
		for j, lesson := range module.Lessons {
			if lesson.Title == "" {
				return fmt.Errorf("module %d lesson %d title is required", i, j)
			}
			if lesson.Duration == "" {
				return fmt.Errorf("module %d lesson %d duration is required", i, j)
			}
			if !lesson.Type.Valid() {
				return fmt.Errorf("module %d lesson %d has invalid type %q", i, j, lesson.Type)
			}
			if lesson.Objectives == nil {
				return fmt.Errorf("module %d lesson %d objectives are required", i, j)
			}
		}
	}
	return nil
}

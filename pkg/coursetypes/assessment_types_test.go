package coursetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuiz() *Assessment {
	return &Assessment{
		ID:            "a-1",
		Title:         "Module 1 Quiz",
		TargetContext: "Module 1: Getting Started",
		Type:          AssessmentQuiz,
		TotalPoints:   10,
		Questions: []Question{
			{ID: 1, Text: "What is a variable?", Type: QuestionShortAnswer, Points: 5},
			{ID: 2, Text: "Pick the keyword", Type: QuestionMultipleChoice, Options: []string{"def", "func"}, CorrectAnswer: "def", Points: 5},
		},
	}
}

func validAssignment() *Assessment {
	return &Assessment{
		ID:            "a-2",
		Title:         "Final Project",
		TargetContext: "Module 3: Capstone",
		Type:          AssessmentAssignment,
		TotalPoints:   100,
		Rubric: []RubricItem{
			{Criteria: "Correctness", Description: "Program runs without errors", MaxPoints: 60},
			{Criteria: "Style", Description: "Readable, idiomatic code", MaxPoints: 40},
		},
	}
}

func TestAssessmentValidate_Accepts(t *testing.T) {
	require.NoError(t, validQuiz().Validate())
	require.NoError(t, validAssignment().Validate())
}

func TestAssessmentValidate_QuizRubricExclusivity(t *testing.T) {
	quiz := validQuiz()
	quiz.Rubric = validAssignment().Rubric
	assert.Error(t, quiz.Validate())

	assignment := validAssignment()
	assignment.Questions = validQuiz().Questions
	assert.Error(t, assignment.Validate())
}

func TestAssessmentValidate_RequiresContent(t *testing.T) {
	quiz := validQuiz()
	quiz.Questions = nil
	assert.Error(t, quiz.Validate())

	assignment := validAssignment()
	assignment.Rubric = nil
	assert.Error(t, assignment.Validate())
}

func TestAssessmentValidate_RequiredFields(t *testing.T) {
	a := validQuiz()
	a.Title = ""
	assert.Error(t, a.Validate())

	a = validQuiz()
	a.TargetContext = ""
	assert.Error(t, a.Validate())

	a = validQuiz()
	a.Type = "Exam"
	assert.Error(t, a.Validate())
}

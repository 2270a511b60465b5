package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/genai"
)

func TestCurriculumSchema_Shape(t *testing.T) {
	schema := CurriculumSchema()

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.ElementsMatch(t,
		[]string{"title", "description", "targetAudience", "difficultyLevel", "estimatedTotalDuration", "modules"},
		schema.Required)
	assert.ElementsMatch(t, []string{"Beginner", "Intermediate", "Advanced"}, schema.Properties["difficultyLevel"].Enum)

	lessons := schema.Properties["modules"].Items.Properties["lessons"]
	require.NotNil(t, lessons)
	assert.ElementsMatch(t, []string{"Video", "Text", "Quiz", "Assignment"}, lessons.Items.Properties["type"].Enum)
	assert.ElementsMatch(t, []string{"title", "duration", "type", "objectives"}, lessons.Items.Required)
}

func TestAssessmentSchema_Shape(t *testing.T) {
	schema := AssessmentSchema()

	assert.ElementsMatch(t, []string{"title", "type", "totalPoints", "targetContext"}, schema.Required)
	assert.ElementsMatch(t, []string{"Quiz", "Assignment"}, schema.Properties["type"].Enum)

	questions := schema.Properties["questions"]
	require.NotNil(t, questions)
	assert.ElementsMatch(t, []string{"id", "text", "type", "points"}, questions.Items.Required)
	assert.ElementsMatch(t, []string{"Multiple Choice", "Short Answer"}, questions.Items.Properties["type"].Enum)

	rubric := schema.Properties["rubric"]
	require.NotNil(t, rubric)
	assert.ElementsMatch(t, []string{"criteria", "description", "maxPoints"}, rubric.Items.Required)
}

func TestEvaluationSchema_Shape(t *testing.T) {
	schema := EvaluationSchema()

	assert.ElementsMatch(t, []string{"score", "reason"}, schema.Required)
	assert.Equal(t, genai.TypeNumber, schema.Properties["score"].Type)
	assert.Equal(t, genai.TypeString, schema.Properties["reason"].Type)
}

package services

import "google.golang.org/genai"

// Response schemas passed to the generation provider for the JSON-output
// modes. They constrain the provider toward well-formed documents, but local
// validation after parsing remains authoritative.

// CurriculumSchema constrains curriculum and adaptive mode output.
func CurriculumSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":           {Type: genai.TypeString},
			"description":     {Type: genai.TypeString},
			"targetAudience":  {Type: genai.TypeString},
			"difficultyLevel": {Type: genai.TypeString, Enum: []string{"Beginner", "Intermediate", "Advanced"}},
			"estimatedTotalDuration": {
				Type: genai.TypeString,
			},
			"modules": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"lessons": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"title":      {Type: genai.TypeString},
									"duration":   {Type: genai.TypeString},
									"type":       {Type: genai.TypeString, Enum: []string{"Video", "Text", "Quiz", "Assignment"}},
									"objectives": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
								},
								Required: []string{"title", "duration", "type", "objectives"},
							},
						},
					},
					Required: []string{"title", "description", "lessons"},
				},
			},
		},
		Required: []string{"title", "description", "targetAudience", "difficultyLevel", "estimatedTotalDuration", "modules"},
	}
}

// AssessmentSchema constrains assessment mode output.
func AssessmentSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":         {Type: genai.TypeString, Description: "Title of the assessment, e.g., 'Module 1 Quiz'"},
			"targetContext": {Type: genai.TypeString, Description: "The specific lesson or module this covers"},
			"type":          {Type: genai.TypeString, Enum: []string{"Quiz", "Assignment"}},
			"totalPoints":   {Type: genai.TypeNumber},
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":            {Type: genai.TypeInteger},
						"text":          {Type: genai.TypeString, Description: "The question text"},
						"type":          {Type: genai.TypeString, Enum: []string{"Multiple Choice", "Short Answer"}},
						"options":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Required for Multiple Choice"},
						"correctAnswer": {Type: genai.TypeString},
						"points":        {Type: genai.TypeNumber},
					},
					Required: []string{"id", "text", "type", "points"},
				},
			},
			"rubric": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"criteria":    {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"maxPoints":   {Type: genai.TypeNumber},
					},
					Required: []string{"criteria", "description", "maxPoints"},
				},
			},
		},
		Required: []string{"title", "type", "totalPoints", "targetContext"},
	}
}

// EvaluationSchema constrains the LLM-as-judge score object used by the
// evaluation harness.
func EvaluationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":  {Type: genai.TypeNumber},
			"reason": {Type: genai.TypeString},
		},
		Required: []string{"score", "reason"},
	}
}

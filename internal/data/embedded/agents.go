// Package embedded provides access to embedded agent profile configuration files.
package embedded

import _ "embed"

// CurriculumAgentData contains the embedded curriculum architect profile YAML.
//
//go:embed agents/curriculum.yaml
var CurriculumAgentData []byte

// AssessmentAgentData contains the embedded assessment designer profile YAML.
//
//go:embed agents/assessment.yaml
var AssessmentAgentData []byte

// AdaptiveAgentData contains the embedded adaptive learning profile YAML.
//
//go:embed agents/adaptive.yaml
var AdaptiveAgentData []byte

// CoachAgentData contains the embedded coach assistant profile YAML.
//
//go:embed agents/coach.yaml
var CoachAgentData []byte

package services

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"courseforge/internal/data/embedded"
	"courseforge/internal/logger"
	"courseforge/pkg/coursetypes"
)

// AgentCatalogService loads the four fixed agent profiles from embedded YAML.
// Profiles are immutable after initialization; callers get copies.
type AgentCatalogService struct {
	initialized bool
	profiles    map[coursetypes.Mode]coursetypes.AgentProfile
}

// NewAgentCatalogService creates a new AgentCatalogService instance.
func NewAgentCatalogService() *AgentCatalogService {
	return &AgentCatalogService{
		profiles: make(map[coursetypes.Mode]coursetypes.AgentProfile),
	}
}

// Name returns the service name "agent_catalog" for registration.
func (a *AgentCatalogService) Name() string {
	return "agent_catalog"
}

// Initialize loads and validates the embedded agent profiles.
func (a *AgentCatalogService) Initialize() error {
	profileFiles := map[coursetypes.Mode][]byte{
		coursetypes.ModeCurriculum: embedded.CurriculumAgentData,
		coursetypes.ModeAssessment: embedded.AssessmentAgentData,
		coursetypes.ModeAdaptive:   embedded.AdaptiveAgentData,
		coursetypes.ModeCoach:      embedded.CoachAgentData,
	}

	for mode, data := range profileFiles {
		var profile coursetypes.AgentProfile
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return fmt.Errorf("failed to parse agent profile for mode %s: %w", mode, err)
		}
		if profile.Mode != mode {
			return fmt.Errorf("agent profile mode mismatch: expected %s, got %s", mode, profile.Mode)
		}
		if profile.SystemPrompt == "" {
			return fmt.Errorf("agent profile for mode %s has no system prompt", mode)
		}
		a.profiles[mode] = profile
	}

	a.initialized = true
	logger.Debug("Agent catalog loaded", "profiles", len(a.profiles))
	return nil
}

// GetProfile returns the agent profile for the given mode.
func (a *AgentCatalogService) GetProfile(mode coursetypes.Mode) (coursetypes.AgentProfile, error) {
	if !a.initialized {
		return coursetypes.AgentProfile{}, fmt.Errorf("agent catalog service not initialized")
	}

	profile, exists := a.profiles[mode]
	if !exists {
		return coursetypes.AgentProfile{}, fmt.Errorf("no agent profile for mode %q", mode)
	}
	return profile, nil
}

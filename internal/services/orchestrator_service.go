package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"courseforge/internal/logger"
	"courseforge/internal/testutils"
	"courseforge/pkg/coursetypes"
)

// Guidance appended when a mode that needs a curriculum is used without one.
// The provider is never called in that case.
const (
	assessmentGuidanceText = "I need a curriculum to work with before I can create assessments. Please generate one in Phase 1."
	adaptiveGuidanceText   = "I cannot adapt a curriculum that doesn't exist yet. Please create one in Phase 1."
	coachErrorText         = "Sorry, I encountered an error."
)

// flight is one in-flight generation. Results are bound to the session and
// mode captured at submission time and discarded if either moved on.
type flight struct {
	cancel        context.CancelFunc
	sessionID     string
	mode          coursetypes.Mode
	userCancelled bool
}

// OrchestratorService routes user utterances to the active agent profile,
// invokes the generation provider, and applies results to curriculum,
// assessment, or conversation state. At most one generation is in flight
// application-wide; a new submission cancels the previous one first.
type OrchestratorService struct {
	initialized   bool
	ctx           coursetypes.Context
	sessions      *SessionService
	catalog       *AgentCatalogService
	provider      coursetypes.GenerationProvider
	notifications *NotificationService

	mu     sync.Mutex
	active *flight
}

// NewOrchestratorService creates a new OrchestratorService wired to the given
// collaborators.
func NewOrchestratorService(ctx coursetypes.Context, sessions *SessionService, catalog *AgentCatalogService, provider coursetypes.GenerationProvider, notifications *NotificationService) *OrchestratorService {
	return &OrchestratorService{
		ctx:           ctx,
		sessions:      sessions,
		catalog:       catalog,
		provider:      provider,
		notifications: notifications,
	}
}

// Name returns the service name "orchestrator" for registration.
func (o *OrchestratorService) Name() string {
	return "orchestrator"
}

// Initialize sets up the OrchestratorService for operation.
func (o *OrchestratorService) Initialize() error {
	o.initialized = true
	return nil
}

// Submit routes an utterance through the active mode's agent. Empty
// utterances are silently ignored. The user message is appended before any
// provider interaction; all provider failures surface as a model message plus
// a notification, never as a half-applied mutation.
func (o *OrchestratorService) Submit(utterance string) error {
	if !o.initialized {
		return fmt.Errorf("orchestrator service not initialized")
	}

	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil
	}

	mode := o.ctx.GetMode()
	fl, flightCtx := o.beginFlight(mode)
	defer o.endFlight(fl)

	userMsg := coursetypes.Message{
		ID:        testutils.GenerateUUID(o.ctx),
		Role:      coursetypes.RoleUser,
		Text:      utterance,
		Timestamp: testutils.GetCurrentTime(o.ctx),
	}
	if err := o.sessions.AppendMessage(mode, userMsg); err != nil {
		return err
	}
	o.ctx.SetGenerating(true)

	logger.GenerationEvent(string(mode), "submit", "session", fl.sessionID)

	switch mode {
	case coursetypes.ModeCurriculum:
		o.runCurriculum(flightCtx, fl, utterance)
	case coursetypes.ModeAssessment:
		o.runAssessment(flightCtx, fl, utterance)
	case coursetypes.ModeAdaptive:
		o.runAdaptive(flightCtx, fl, utterance)
	case coursetypes.ModeCoach:
		o.runCoach(flightCtx, fl, utterance)
	}
	return nil
}

// CancelActive aborts the in-flight generation, if any. User cancellation is
// distinguished from failure: it suppresses the error message path and emits
// a neutral notification instead.
func (o *OrchestratorService) CancelActive() error {
	if !o.initialized {
		return fmt.Errorf("orchestrator service not initialized")
	}

	o.mu.Lock()
	fl := o.active
	if fl == nil {
		o.mu.Unlock()
		return nil
	}
	fl.userCancelled = true
	fl.cancel()
	o.active = nil
	o.mu.Unlock()

	o.ctx.SetGenerating(false)
	_ = o.notifications.Notify("Generation cancelled by user.", coursetypes.NotifyInfo)
	logger.GenerationEvent(string(fl.mode), "cancelled", "session", fl.sessionID)
	return nil
}

// beginFlight cancels any active flight and registers a new one, capturing
// the session and mode it is bound to.
func (o *OrchestratorService) beginFlight(mode coursetypes.Mode) (*flight, context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active != nil {
		o.active.cancel()
	}

	flightCtx, cancel := context.WithCancel(context.Background())
	fl := &flight{
		cancel:    cancel,
		sessionID: o.ctx.GetCurrentSessionID(),
		mode:      mode,
	}
	o.active = fl
	return fl, flightCtx
}

// endFlight clears the generating flag and releases the flight, unless a
// newer flight has already taken over.
func (o *OrchestratorService) endFlight(fl *flight) {
	fl.cancel()

	o.mu.Lock()
	current := o.active == fl
	if current {
		o.active = nil
	}
	o.mu.Unlock()

	if current {
		o.ctx.SetGenerating(false)
	}
}

// stale reports whether the flight's session is no longer active. Stale
// results are discarded, never misapplied to the new session.
func (o *OrchestratorService) stale(fl *flight) bool {
	return o.ctx.GetCurrentSessionID() != fl.sessionID
}

// cancelled reports whether the flight's token has been revoked, either by
// the user or by a superseding submission.
func (o *OrchestratorService) cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}

// fail surfaces a provider or validation error: one model message in the
// flight's mode plus an error notification. Cancelled and stale flights are
// silent.
func (o *OrchestratorService) fail(ctx context.Context, fl *flight, err error) {
	if o.cancelled(ctx) || o.stale(fl) {
		return
	}

	logger.Error("Generation failed", "mode", fl.mode, "error", err)

	text := fmt.Sprintf("Error: %s", err.Error())
	if fl.mode == coursetypes.ModeCoach {
		text = coachErrorText
	}
	_ = o.sessions.AppendMessage(fl.mode, coursetypes.Message{
		ID:        testutils.GenerateUUID(o.ctx),
		Role:      coursetypes.RoleModel,
		Text:      text,
		Timestamp: testutils.GetCurrentTime(o.ctx),
	})
	_ = o.notifications.Notify(fmt.Sprintf("Error: %s", err.Error()), coursetypes.NotifyError)
}

// appendModelMessage adds a model reply to the flight's mode.
func (o *OrchestratorService) appendModelMessage(fl *flight, text string) {
	_ = o.sessions.AppendMessage(fl.mode, coursetypes.Message{
		ID:        testutils.GenerateUUID(o.ctx),
		Role:      coursetypes.RoleModel,
		Text:      text,
		Timestamp: testutils.GetCurrentTime(o.ctx),
	})
}

// serializeCurriculum renders the current curriculum for prompt grounding.
// A nil curriculum serializes as "null".
func serializeCurriculum(c *coursetypes.Curriculum) string {
	data, err := json.Marshal(c)
	if err != nil {
		return "null"
	}
	return string(data)
}

// runCurriculum handles curriculum mode: single response, full replace of the
// curriculum document, session rename on first creation.
func (o *OrchestratorService) runCurriculum(ctx context.Context, fl *flight, utterance string) {
	profile, err := o.catalog.GetProfile(coursetypes.ModeCurriculum)
	if err != nil {
		o.fail(ctx, fl, err)
		return
	}

	prior := o.ctx.GetCurriculum()
	var prompt string
	if prior != nil {
		prompt = fmt.Sprintf("Current Curriculum JSON:\n%s\n\nUser Request: %s\n\nUpdate and return FULL JSON.", serializeCurriculum(prior), utterance)
	} else {
		prompt = fmt.Sprintf("%s\n\nCreate a new curriculum. Return FULL JSON.", utterance)
	}

	result, err := o.provider.GenerateContent(ctx, coursetypes.GenerationRequest{
		Model:             DefaultModel,
		Prompt:            prompt,
		SystemInstruction: profile.SystemPrompt,
		Temperature:       profile.Temperature,
		ResponseSchema:    CurriculumSchema(),
	})
	if err != nil {
		o.fail(ctx, fl, err)
		return
	}
	if o.cancelled(ctx) || o.stale(fl) {
		return
	}
	if result.Text == "" {
		return
	}

	var curriculum coursetypes.Curriculum
	if err := json.Unmarshal([]byte(result.Text), &curriculum); err != nil {
		o.fail(ctx, fl, fmt.Errorf("failed to parse curriculum response: %w", err))
		return
	}
	if err := curriculum.Validate(); err != nil {
		o.fail(ctx, fl, fmt.Errorf("curriculum response failed validation: %w", err))
		return
	}

	_ = o.sessions.SetCurriculum(&curriculum)
	if prior != nil {
		o.appendModelMessage(fl, "I've updated the curriculum blueprint.")
	} else {
		o.appendModelMessage(fl, fmt.Sprintf("I've designed a curriculum for %q.", curriculum.Title))
		o.renameIfPlaceholder(fl.sessionID, curriculum.Title)
	}
	_ = o.notifications.Notify("Curriculum updated successfully", coursetypes.NotifySuccess)
}

// renameIfPlaceholder replaces a placeholder session title with the newly
// created curriculum's title. User-chosen titles are never overridden.
func (o *OrchestratorService) renameIfPlaceholder(sessionID string, title string) {
	session, exists := o.ctx.GetSessions()[sessionID]
	if !exists || title == "" {
		return
	}
	if session.Title == coursetypes.PlaceholderTitle || session.Title == coursetypes.MigratedTitle {
		_ = o.sessions.RenameSession(sessionID, title)
	}
}

// runAssessment handles assessment mode: requires a curriculum, prepends the
// generated assessment to the list.
func (o *OrchestratorService) runAssessment(ctx context.Context, fl *flight, utterance string) {
	curriculum := o.ctx.GetCurriculum()
	if curriculum == nil {
		o.appendModelMessage(fl, assessmentGuidanceText)
		return
	}

	profile, err := o.catalog.GetProfile(coursetypes.ModeAssessment)
	if err != nil {
		o.fail(ctx, fl, err)
		return
	}

	prompt := fmt.Sprintf("Current Curriculum: %s\nUser Request: %q\nGenerate assessment JSON.", serializeCurriculum(curriculum), utterance)

	result, err := o.provider.GenerateContent(ctx, coursetypes.GenerationRequest{
		Model:             DefaultModel,
		Prompt:            prompt,
		SystemInstruction: profile.SystemPrompt,
		Temperature:       profile.Temperature,
		ResponseSchema:    AssessmentSchema(),
	})
	if err != nil {
		o.fail(ctx, fl, err)
		return
	}
	if o.cancelled(ctx) || o.stale(fl) {
		return
	}
	if result.Text == "" {
		return
	}

	var assessment coursetypes.Assessment
	if err := json.Unmarshal([]byte(result.Text), &assessment); err != nil {
		o.fail(ctx, fl, fmt.Errorf("failed to parse assessment response: %w", err))
		return
	}
	assessment.ID = testutils.GenerateUUID(o.ctx)
	if err := assessment.Validate(); err != nil {
		o.fail(ctx, fl, fmt.Errorf("assessment response failed validation: %w", err))
		return
	}

	_ = o.sessions.PrependAssessment(assessment)
	o.appendModelMessage(fl, fmt.Sprintf("I've created a %s for %q.", assessment.Type, assessment.TargetContext))
	_ = o.notifications.Notify("Assessment generated", coursetypes.NotifySuccess)
}

// runAdaptive handles adaptive mode: requires a curriculum, replaces it
// wholesale with the adapted version.
func (o *OrchestratorService) runAdaptive(ctx context.Context, fl *flight, utterance string) {
	curriculum := o.ctx.GetCurriculum()
	if curriculum == nil {
		o.appendModelMessage(fl, adaptiveGuidanceText)
		return
	}

	profile, err := o.catalog.GetProfile(coursetypes.ModeAdaptive)
	if err != nil {
		o.fail(ctx, fl, err)
		return
	}

	prompt := fmt.Sprintf("Current Curriculum: %s\nRequest: %q\nAdapt and return FULL JSON.", serializeCurriculum(curriculum), utterance)

	result, err := o.provider.GenerateContent(ctx, coursetypes.GenerationRequest{
		Model:             DefaultModel,
		Prompt:            prompt,
		SystemInstruction: profile.SystemPrompt,
		Temperature:       profile.Temperature,
		ResponseSchema:    CurriculumSchema(),
	})
	if err != nil {
		o.fail(ctx, fl, err)
		return
	}
	if o.cancelled(ctx) || o.stale(fl) {
		return
	}
	if result.Text == "" {
		return
	}

	var adapted coursetypes.Curriculum
	if err := json.Unmarshal([]byte(result.Text), &adapted); err != nil {
		o.fail(ctx, fl, fmt.Errorf("failed to parse adapted curriculum: %w", err))
		return
	}
	if err := adapted.Validate(); err != nil {
		o.fail(ctx, fl, fmt.Errorf("adapted curriculum failed validation: %w", err))
		return
	}

	_ = o.sessions.SetCurriculum(&adapted)
	o.appendModelMessage(fl, "Curriculum adapted successfully.")
	_ = o.notifications.Notify("Curriculum adapted", coursetypes.NotifySuccess)
}

// runCoach handles coach mode: streams the reply into a single placeholder
// message, appending fragments in arrival order. The cancellation token is
// checked before each fragment is applied.
func (o *OrchestratorService) runCoach(ctx context.Context, fl *flight, utterance string) {
	profile, err := o.catalog.GetProfile(coursetypes.ModeCoach)
	if err != nil {
		o.fail(ctx, fl, err)
		return
	}

	placeholder := coursetypes.Message{
		ID:        testutils.GenerateUUID(o.ctx),
		Role:      coursetypes.RoleModel,
		Text:      "",
		Timestamp: testutils.GetCurrentTime(o.ctx),
	}
	if err := o.sessions.AppendMessage(coursetypes.ModeCoach, placeholder); err != nil {
		return
	}

	prompt := fmt.Sprintf("Current Curriculum Context: %s\nUser Question: %q\nProvide a helpful response in markdown.", serializeCurriculum(o.ctx.GetCurriculum()), utterance)

	stream, err := o.provider.GenerateContentStream(ctx, coursetypes.GenerationRequest{
		Model:             DefaultModel,
		Prompt:            prompt,
		SystemInstruction: profile.SystemPrompt,
		Temperature:       profile.Temperature,
	})
	if err != nil {
		o.fail(ctx, fl, err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case chunk, ok := <-stream:
			if !ok {
				return
			}
			if chunk.Err != nil {
				o.fail(ctx, fl, chunk.Err)
				return
			}
			if chunk.Done {
				return
			}
			// The chunk branch can win the select against a cancelled token;
			// re-check before applying so no fragment lands after the cancel.
			if o.cancelled(ctx) || o.stale(fl) {
				return
			}
			if chunk.Text != "" {
				_ = o.sessions.AppendToMessage(coursetypes.ModeCoach, placeholder.ID, chunk.Text)
			}
		}
	}
}

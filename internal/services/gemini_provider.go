package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"courseforge/internal/logger"
	"courseforge/pkg/coursetypes"
)

// DefaultModel is the generation model used for all agent modes.
const DefaultModel = "gemini-2.5-flash"

// GeminiProvider implements the coursetypes.GenerationProvider interface for
// the Google Gemini API. It provides lazy initialization of the underlying
// client and handles all Gemini-specific communication logic.
type GeminiProvider struct {
	apiKey string
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider with lazy initialization.
// The actual client is created only when the first request is made.
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		apiKey: apiKey,
		client: nil, // Will be initialized lazily
	}
}

// Name returns the service name "provider" for registration.
func (p *GeminiProvider) Name() string {
	return "provider"
}

// Initialize sets up the GeminiProvider for operation. The client itself is
// created lazily so a missing key only fails once a request is attempted.
func (p *GeminiProvider) Initialize() error {
	return nil
}

// IsConfigured returns true if the provider has an API key.
func (p *GeminiProvider) IsConfigured() bool {
	return p.apiKey != ""
}

// initializeClientIfNeeded initializes the Gemini client if it hasn't been initialized yet.
func (p *GeminiProvider) initializeClientIfNeeded(ctx context.Context) error {
	if p.client != nil {
		return nil // Already initialized
	}

	if p.apiKey == "" {
		return fmt.Errorf("gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: p.apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Debug("Gemini client initialized", "provider", "gemini")
	p.client = client
	return nil
}

// GenerateContent performs a single-response generation call. An empty
// response body yields an empty Text, not an error.
func (p *GeminiProvider) GenerateContent(ctx context.Context, req coursetypes.GenerationRequest) (*coursetypes.GenerationResult, error) {
	if err := p.initializeClientIfNeeded(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	config := p.buildGenerationConfig(req)

	result, err := p.client.Models.GenerateContent(ctx, p.model(req), contents, config)
	if err != nil {
		logger.Error("Gemini request failed", "error", err)
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := result.Text()
	logger.Debug("Gemini response received", "content_length", len(text))
	return &coursetypes.GenerationResult{Text: text}, nil
}

// GenerateContentStream performs a streaming generation call, yielding
// fragments on the returned channel in arrival order. The channel is closed
// after the final chunk; cancellation of ctx terminates the stream.
func (p *GeminiProvider) GenerateContentStream(ctx context.Context, req coursetypes.GenerationRequest) (<-chan coursetypes.StreamChunk, error) {
	if err := p.initializeClientIfNeeded(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	config := p.buildGenerationConfig(req)

	responseChan := make(chan coursetypes.StreamChunk, 10)

	go func() {
		defer close(responseChan)

		for result, err := range p.client.Models.GenerateContentStream(ctx, p.model(req), contents, config) {
			if err != nil {
				select {
				case responseChan <- coursetypes.StreamChunk{Done: true, Err: err}:
				case <-ctx.Done():
				}
				return
			}

			text := result.Text()
			if text == "" {
				continue // Skip empty chunks
			}

			select {
			case responseChan <- coursetypes.StreamChunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}

		select {
		case responseChan <- coursetypes.StreamChunk{Done: true}:
		case <-ctx.Done():
		}
	}()

	return responseChan, nil
}

func (p *GeminiProvider) model(req coursetypes.GenerationRequest) string {
	if req.Model != "" {
		return req.Model
	}
	return DefaultModel
}

// buildGenerationConfig creates a Gemini generation config from the request.
func (p *GeminiProvider) buildGenerationConfig(req coursetypes.GenerationRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	temperature := req.Temperature
	config.Temperature = &temperature

	if req.ResponseSchema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.ResponseSchema
	}

	return config
}

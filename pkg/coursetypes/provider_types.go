package coursetypes

import (
	"context"

	"google.golang.org/genai"
)

// GenerationRequest carries everything the generation provider needs for one
// call. ResponseSchema, when set, is a hint constraining the provider toward
// structured JSON output; callers still validate locally.
type GenerationRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string
	Temperature       float32
	ResponseSchema    *genai.Schema
}

// GenerationResult is a completed single-response generation. An empty Text
// means the provider produced no output; that is not an error.
type GenerationResult struct {
	Text string
}

// StreamChunk is one increment of a streaming generation. Done marks the
// final chunk; Err, when non-nil, reports why the stream ended early.
type StreamChunk struct {
	Text string
	Done bool
	Err  error
}

// GenerationProvider is the external oracle producing text or structured
// JSON from a prompt. It may succeed, fail, or be cancelled mid-flight via
// the context.
type GenerationProvider interface {
	// GenerateContent performs a single-response generation call.
	GenerateContent(ctx context.Context, req GenerationRequest) (*GenerationResult, error)

	// GenerateContentStream performs a streaming generation call. Fragments
	// arrive on the returned channel in order; the channel is closed after
	// the final chunk.
	GenerateContentStream(ctx context.Context, req GenerationRequest) (<-chan StreamChunk, error)
}

package services

import (
	"context"
	"fmt"
	"sync"

	"courseforge/pkg/coursetypes"
)

// mockReply is one scripted single-response outcome.
type mockReply struct {
	text string
	err  error
	gate <-chan struct{} // when non-nil, the call blocks until the gate closes
}

// MockProvider provides a scriptable implementation of GenerationProvider for
// testing. Replies and stream scripts are consumed in queue order, and every
// request is recorded for assertion.
type MockProvider struct {
	mu       sync.Mutex
	requests []coursetypes.GenerationRequest
	replies  []mockReply
	streams  []<-chan coursetypes.StreamChunk
}

// NewMockProvider creates a new MockProvider with empty queues.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// QueueResult queues a successful single-response reply.
func (m *MockProvider) QueueResult(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, mockReply{text: text})
}

// QueueError queues a failing single-response reply.
func (m *MockProvider) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, mockReply{err: err})
}

// QueueGatedResult queues a reply that blocks until gate closes or the call's
// context is cancelled. Used to exercise in-flight cancellation.
func (m *MockProvider) QueueGatedResult(text string, gate <-chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, mockReply{text: text, gate: gate})
}

// QueueStream queues a streaming script from literal fragments. The stream
// delivers each fragment then a final Done chunk.
func (m *MockProvider) QueueStream(fragments ...string) {
	ch := make(chan coursetypes.StreamChunk, len(fragments)+1)
	for _, fragment := range fragments {
		ch <- coursetypes.StreamChunk{Text: fragment}
	}
	ch <- coursetypes.StreamChunk{Done: true}
	close(ch)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams = append(m.streams, ch)
}

// QueueStreamChannel queues a caller-controlled stream channel, letting tests
// feed fragments and observe consumption timing directly.
func (m *MockProvider) QueueStreamChannel(ch <-chan coursetypes.StreamChunk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams = append(m.streams, ch)
}

// Requests returns a copy of all requests received so far.
func (m *MockProvider) Requests() []coursetypes.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]coursetypes.GenerationRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of requests received so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// GenerateContent returns the next queued single-response reply.
func (m *MockProvider) GenerateContent(ctx context.Context, req coursetypes.GenerationRequest) (*coursetypes.GenerationResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	if len(m.replies) == 0 {
		m.mu.Unlock()
		return nil, fmt.Errorf("mock provider has no queued reply")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	m.mu.Unlock()

	if reply.gate != nil {
		select {
		case <-reply.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if reply.err != nil {
		return nil, reply.err
	}
	return &coursetypes.GenerationResult{Text: reply.text}, nil
}

// GenerateContentStream returns the next queued stream channel.
func (m *MockProvider) GenerateContentStream(_ context.Context, req coursetypes.GenerationRequest) (<-chan coursetypes.StreamChunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if len(m.streams) == 0 {
		return nil, fmt.Errorf("mock provider has no queued stream")
	}
	ch := m.streams[0]
	m.streams = m.streams[1:]
	return ch, nil
}

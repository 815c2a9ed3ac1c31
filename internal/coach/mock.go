package coach

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is a canned outcome for MockProvider.
type MockReply struct {
	Content json.RawMessage
	Err     error
}

// MockProvider replays canned replies in order and records prompts.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	Prompts []Prompt
}

// NewMockProvider creates a mock with queued replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Generate pops the next reply. An empty queue reports the provider unavailable.
func (m *MockProvider) Generate(ctx context.Context, pr Prompt) (*Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, pr)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.replies[0]
	m.replies = m.replies[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	if err := validate(pr.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Reply{Content: next.Content, Model: "mock"}, nil
}

func (m *MockProvider) Model() string { return "mock" }

// Calls returns how many prompts were received.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

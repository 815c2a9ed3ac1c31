// Package coach generates short motivational messages after a lesson using
// an optional LLM provider.
package coach

import (
	"context"
	"encoding/json"
)

// Provider sends one prompt to a model and returns its output. When the
// prompt carries a Schema the returned content is schema-valid JSON.
type Provider interface {
	Generate(ctx context.Context, p Prompt) (*Reply, error)
	Model() string
}

// Prompt is a single-turn request.
type Prompt struct {
	System      string
	User        string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Schema names a JSON Schema the reply must satisfy.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Reply is a model's output.
type Reply struct {
	Content json.RawMessage
	Model   string
	Usage   Usage
}

// Usage is token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Provider names accepted by New.
const (
	ProviderNone       = "none"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Providers lists every accepted provider name.
func Providers() []string {
	return []string{ProviderNone, ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter, ProviderMock}
}

const (
	DefaultTimeout = 3 * time.Second
	maxMessageLen  = 280
)

var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp",
}

// Config selects and tunes the provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	Backoff  Backoff
}

// Moment is what the coach knows about the lesson just finished.
type Moment struct {
	Correct         int
	Total           int
	Accuracy        int
	XP              int
	Streak          int
	StreakIncreased bool
	Milestone       string
	Achievements    []string
	League          string
	Rank            int
}

// Coach turns a Moment into a one- or two-sentence encouragement.
type Coach struct {
	provider Provider
	timeout  time.Duration
	logger   *log.Logger
}

var messageSchema = &Schema{
	Name: "coach-message",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{"type": "string", "minLength": 1, "maxLength": maxMessageLen},
		},
		"required":             []string{"message"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a warm, concise study coach for learners memorising the Bhagavad Gita.
Write one or two sentences of encouragement for the learner based on their lesson result.
Refer to the numbers only when they help. You may allude to a teaching of the Gita
such as steady practice (abhyasa) or acting without attachment to results.
Never use more than 40 words. Respond with JSON: {"message": "..."}.`

// New builds a Coach for cfg. It returns nil without error when the coach
// is disabled.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Coach, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	model := cfg.Model
	if model == "" {
		model = defaultModels[cfg.Provider]
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "", ProviderNone:
		return nil, nil
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.APIKey, model)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.APIKey, model, cfg.BaseURL)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.APIKey, model)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.APIKey, model, cfg.BaseURL)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown coach provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s coach: %w", cfg.Provider, err)
	}

	backoff := cfg.Backoff
	if backoff.MaxAttempts == 0 {
		backoff = DefaultBackoff()
	}
	p := WithRetry(WithLogging(base, logger), backoff)
	return NewWithProvider(p, cfg.Timeout, logger), nil
}

// NewWithProvider wraps an existing provider.
func NewWithProvider(p Provider, timeout time.Duration, logger *log.Logger) *Coach {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coach{provider: p, timeout: timeout, logger: logger}
}

// Motivate asks the provider for a message. Callers fall back to a static
// message on error.
func (c *Coach) Motivate(ctx context.Context, m Moment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.provider.Generate(ctx, Prompt{
		System:      systemPrompt,
		User:        describe(m),
		Schema:      messageSchema,
		MaxTokens:   120,
		Temperature: 0.8,
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(reply.Content, &out); err != nil {
		return "", &ErrInvalidResponse{Content: reply.Content, Err: err}
	}
	msg := strings.TrimSpace(out.Message)
	if msg == "" {
		return "", &ErrInvalidResponse{Content: reply.Content, Err: fmt.Errorf("empty message")}
	}
	return msg, nil
}

func describe(m Moment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lesson result: %d of %d correct (%d%%), %d XP earned.\n", m.Correct, m.Total, m.Accuracy, m.XP)
	if m.StreakIncreased {
		fmt.Fprintf(&b, "Streak extended to %d days.\n", m.Streak)
	} else {
		fmt.Fprintf(&b, "Current streak: %d days.\n", m.Streak)
	}
	if m.Milestone != "" {
		fmt.Fprintf(&b, "Streak milestone reached: %s.\n", m.Milestone)
	}
	if len(m.Achievements) > 0 {
		fmt.Fprintf(&b, "New achievements: %s.\n", strings.Join(m.Achievements, ", "))
	}
	if m.League != "" && m.Rank > 0 {
		fmt.Fprintf(&b, "Weekly league: %s, rank %d.\n", m.League, m.Rank)
	}
	return b.String()
}

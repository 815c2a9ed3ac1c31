package coach

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff configures retries of transient failures.
type Backoff struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultBackoff suits the short coach timeout.
func DefaultBackoff() Backoff {
	return Backoff{MaxAttempts: 2, InitialWait: 250 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}
}

type retrying struct {
	inner Provider
	cfg   Backoff
}

// WithRetry retries rate limits and unavailability with jittered backoff.
// Invalid responses get a single retry. Context errors are never retried.
func WithRetry(p Provider, cfg Backoff) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retrying{inner: p, cfg: cfg}
}

func (r *retrying) Generate(ctx context.Context, pr Prompt) (*Reply, error) {
	var lastErr error
	invalidSeen := false
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		reply, err := r.inner.Generate(ctx, pr)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}
	return nil, lastErr
}

func (r *retrying) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	w := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	if w > float64(r.cfg.MaxWait) {
		w = float64(r.cfg.MaxWait)
	}
	w += w * 0.2 * (2*rand.Float64() - 1)
	if w < 0 {
		return 0
	}
	return time.Duration(w)
}

func (r *retrying) Model() string { return r.inner.Model() }

package coach

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

type logging struct {
	inner  Provider
	logger *log.Logger
}

// WithLogging logs every call's latency, token usage and outcome.
func WithLogging(p Provider, logger *log.Logger) Provider {
	return &logging{inner: p, logger: logger}
}

func (l *logging) Generate(ctx context.Context, pr Prompt) (*Reply, error) {
	start := time.Now()
	reply, err := l.inner.Generate(ctx, pr)
	fields := []any{"model", l.inner.Model(), "latency", time.Since(start).Round(time.Millisecond)}
	if reply != nil {
		fields = append(fields, "tokens", reply.Usage.Total())
	}
	if err != nil {
		l.logger.Warn("coach request failed", append(fields, "err", err)...)
		return nil, err
	}
	l.logger.Debug("coach request", fields...)
	return reply, nil
}

func (l *logging) Model() string { return l.inner.Model() }

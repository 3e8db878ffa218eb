// Package llm defines the text-in/text-out model capability the analysis
// services depend on, plus provider selection and instrumentation.
package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
	"github.com/MikeSquared-Agency/solace/internal/metrics"
)

// Generator sends a prompt to a generative-text API and returns the raw reply.
// Implementations must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type instrumented struct {
	next     Generator
	provider string
	timeout  time.Duration
	logger   *slog.Logger
}

// Instrument wraps g with a per-call timeout, metrics and debug logging.
// A zero timeout leaves the caller's deadline untouched.
func Instrument(g Generator, provider string, timeout time.Duration, logger *slog.Logger) Generator {
	return &instrumented{next: g, provider: provider, timeout: timeout, logger: logger}
}

func (i *instrumented) Generate(ctx context.Context, prompt string) (string, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	started := time.Now()
	out, err := i.next.Generate(ctx, prompt)
	metrics.ObserveUpstream("model", i.provider, started, err)

	if err != nil {
		i.logger.Warn("model call failed",
			"provider", i.provider,
			"kind", apperr.KindOf(err),
			"duration_ms", time.Since(started).Milliseconds(),
			"error", err,
		)
		return "", err
	}
	i.logger.Debug("model call complete",
		"provider", i.provider,
		"prompt_len", len(prompt),
		"response_len", len(out),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return out, nil
}

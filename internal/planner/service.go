// Package planner builds a personalised daily plan from a user message.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
	"github.com/MikeSquared-Agency/solace/internal/extractor"
	"github.com/MikeSquared-Agency/solace/internal/llm"
	"github.com/MikeSquared-Agency/solace/internal/prompts"
)

type Service struct {
	llm    llm.Generator
	logger *slog.Logger
}

func New(g llm.Generator, logger *slog.Logger) *Service {
	return &Service{llm: g, logger: logger}
}

// Create asks the model for a daily plan shaped by prefs. Sections the
// model leaves out come back as empty lists.
func (s *Service) Create(ctx context.Context, message string, prefs map[string]any, mood string) (*Plan, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperr.Validation("planner", "user message is empty")
	}

	prompt, err := prompts.DailyPlan(message, prefs, mood)
	if err != nil {
		return nil, apperr.Validation("planner", "%v", err)
	}

	s.logger.Info("creating daily plan",
		"message_len", len(message),
		"preferences", len(prefs),
		"mood_context", mood != "",
	)

	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("daily plan: %w", err)
	}

	var plan Plan
	strategy, err := extractor.Decode(raw, &plan)
	if err != nil {
		s.logger.Error("failed to parse daily plan", "error", err, "raw_len", len(raw))
		s.logger.Debug("unparseable daily plan", "raw", raw)
		return nil, fmt.Errorf("daily plan: %w", err)
	}
	plan.normalize()

	s.logger.Info("daily plan created", "strategy", strategy, "entries", plan.Len())
	return &plan, nil
}

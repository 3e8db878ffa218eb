// Package grief produces the emotional-support analysis for a user message.
package grief

import (
	"context"
	"errors"
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

// Analyze validates the user's emotions, analyses their mood and suggests
// coping strategies. A non-empty mood is passed to the model as context.
func (s *Service) Analyze(ctx context.Context, message, mood string) (*Response, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperr.Validation("grief", "user message is empty")
	}

	prompt := prompts.Emotional(message, mood)

	s.logger.Info("analyzing message for grief response",
		"message_len", len(message),
		"mood_context", mood != "",
	)

	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("grief analysis: %w", err)
	}

	var resp Response
	strategy, err := extractor.Decode(raw, &resp)
	if err != nil {
		s.logger.Error("failed to parse grief response", "error", err, "raw_len", len(raw))
		s.logger.Debug("unparseable grief response", "raw", raw)
		return nil, fmt.Errorf("grief analysis: %w", err)
	}
	if resp.MoodAnalysis != nil && resp.MoodAnalysis.MoodIntensity == 0 {
		err := &apperr.ParseError{Raw: raw, Err: errors.New("mood_analysis has no mood_intensity")}
		s.logger.Error("incomplete grief response", "error", err, "raw_len", len(raw))
		return nil, fmt.Errorf("grief analysis: %w", err)
	}
	if resp.CopingStrategies == nil {
		resp.CopingStrategies = []string{}
	}

	s.logger.Info("grief analysis complete",
		"strategy", strategy,
		"detected_mood", resp.DetectedMood(),
		"coping_strategies", len(resp.CopingStrategies),
	)
	return &resp, nil
}

// Package media recommends mood-matched videos for a user message.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
	"github.com/MikeSquared-Agency/solace/internal/llm"
	"github.com/MikeSquared-Agency/solace/internal/prompts"
)

const annotateConcurrency = 4

type Service struct {
	llm      llm.Generator
	searcher Searcher
	logger   *slog.Logger

	// QueryMode defaults to QueryLLM.
	QueryMode QueryMode
	// Annotate adds a model-written relevance explanation to each result.
	Annotate bool
}

func New(g llm.Generator, s Searcher, logger *slog.Logger) *Service {
	return &Service{
		llm:       g,
		searcher:  s,
		logger:    logger,
		QueryMode: QueryLLM,
	}
}

// Recommend detects the mood (unless opts.Mood is set), derives a search
// query, and returns matching videos.
func (s *Service) Recommend(ctx context.Context, opts Options) (*Response, error) {
	mediaType := strings.ToLower(strings.TrimSpace(opts.MediaType))
	if mediaType == "" {
		mediaType = TypeMusic
	}
	if mediaType != TypeMusic {
		return nil, apperr.Validation("media", "unsupported media type %q", opts.MediaType)
	}
	if strings.TrimSpace(opts.Message) == "" {
		return nil, apperr.Validation("media", "user message is empty")
	}
	maxResults := clampResults(opts.MaxResults)

	mood := strings.TrimSpace(opts.Mood)
	if mood == "" {
		raw, err := s.llm.Generate(ctx, prompts.MoodPhrase(opts.Message))
		if err != nil {
			return nil, fmt.Errorf("detect mood: %w", err)
		}
		mood = cleanPhrase(raw)
		s.logger.Info("detected mood", "mood", mood)
	} else {
		s.logger.Info("using supplied mood", "mood", mood)
	}

	query, err := s.query(ctx, mood, mediaType)
	if err != nil {
		return nil, err
	}

	results, err := s.searcher.Search(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("search media: %w", err)
	}
	results = dedupe(results)
	s.logger.Info("media search complete", "query", query, "results", len(results))

	if s.Annotate && len(results) > 0 {
		if err := s.annotate(ctx, mood, mediaType, results); err != nil {
			return nil, err
		}
	}

	return &Response{
		DetectedMood:    mood,
		SearchQueryUsed: query,
		MediaType:       mediaType,
		Recommendations: results,
	}, nil
}

func (s *Service) query(ctx context.Context, mood, mediaType string) (string, error) {
	if s.QueryMode == QueryDirect {
		return mood + " " + mediaType, nil
	}
	raw, err := s.llm.Generate(ctx, prompts.SearchQuery(mood, mediaType))
	if err != nil {
		return "", fmt.Errorf("build search query: %w", err)
	}
	query := cleanPhrase(firstLine(raw))
	if query == "" {
		query = mood + " " + mediaType
	}
	return query, nil
}

// annotate fills RelevanceExplanation in place. A failed explanation leaves
// the field empty; only cancellation of ctx fails the whole batch.
func (s *Service) annotate(ctx context.Context, mood, mediaType string, results []Result) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(annotateConcurrency)

	for i := range results {
		r := &results[i]
		g.Go(func() error {
			text, err := s.llm.Generate(gctx, prompts.Relevance(mood, mediaType, prompts.Candidate{
				Title:       r.Title,
				Description: r.Description,
			}))
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn("relevance explanation failed",
					"video_id", r.VideoID,
					"kind", apperr.KindOf(err),
					"error", err,
				)
				return nil
			}
			r.RelevanceExplanation = strings.TrimSpace(text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("annotate results: %w", err)
	}
	return nil
}

// dedupe drops repeated videos, keeping the first occurrence. It always
// returns a non-nil slice.
func dedupe(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		key := r.VideoID
		if key == "" {
			key = r.VideoURL
		}
		if key != "" && seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func clampResults(n int) int {
	switch {
	case n <= 0:
		return DefaultMaxResults
	case n > MaxMaxResults:
		return MaxMaxResults
	default:
		return n
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// cleanPhrase strips whitespace, wrapping quotes and a trailing period.
func cleanPhrase(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSuffix(s, ".")
	return strings.TrimSpace(s)
}

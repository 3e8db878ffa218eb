// Package unified runs the grief, plan and media analyses for one message
// in a fixed order, threading the detected mood forward.
package unified

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/solace/internal/grief"
	"github.com/MikeSquared-Agency/solace/internal/media"
	"github.com/MikeSquared-Agency/solace/internal/planner"
)

type Request struct {
	UserMessage                 string         `json:"user_message"`
	IncludeGriefAnalysis        bool           `json:"include_grief_analysis"`
	IncludeDailyPlan            bool           `json:"include_daily_plan"`
	IncludeMediaRecommendations bool           `json:"include_media_recommendations"`
	PlanPreferences             map[string]any `json:"plan_preferences,omitempty"`
	MediaType                   string         `json:"media_type,omitempty"`
	MaxMediaResults             int            `json:"max_media_results,omitempty"`
}

// UnmarshalJSON applies the request defaults: grief analysis on, five
// media results.
func (r *Request) UnmarshalJSON(b []byte) error {
	type plain Request
	p := plain{
		IncludeGriefAnalysis: true,
		MaxMediaResults:      media.DefaultMaxResults,
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Request(p)
	return nil
}

type Response struct {
	EmotionalResponse *grief.Response `json:"emotional_response,omitempty"`
	DailyPlan         *planner.Plan   `json:"daily_plan,omitempty"`
	MediaResponse     *media.Response `json:"media_response,omitempty"`
}

// DetectedMood returns the mood found by whichever step detected one first.
func (r *Response) DetectedMood() string {
	if m := r.EmotionalResponse.DetectedMood(); m != "" {
		return m
	}
	if r.MediaResponse != nil {
		return r.MediaResponse.DetectedMood
	}
	return ""
}

type GriefAnalyzer interface {
	Analyze(ctx context.Context, message, mood string) (*grief.Response, error)
}

type Planner interface {
	Create(ctx context.Context, message string, prefs map[string]any, mood string) (*planner.Plan, error)
}

type Recommender interface {
	Recommend(ctx context.Context, opts media.Options) (*media.Response, error)
}

type Coordinator struct {
	grief  GriefAnalyzer
	plan   Planner
	media  Recommender
	logger *slog.Logger
}

func New(g GriefAnalyzer, p Planner, m Recommender, logger *slog.Logger) *Coordinator {
	return &Coordinator{grief: g, plan: p, media: m, logger: logger}
}

// Run executes the enabled steps as grief, then plan, then media. A mood
// detected by the grief step is handed to the later steps. The first
// failing step aborts the run.
func (c *Coordinator) Run(ctx context.Context, req Request) (*Response, error) {
	resp := &Response{}
	var mood string

	if req.IncludeGriefAnalysis {
		gr, err := c.grief.Analyze(ctx, req.UserMessage, "")
		if err != nil {
			return nil, fmt.Errorf("unified grief step: %w", err)
		}
		resp.EmotionalResponse = gr
		mood = gr.DetectedMood()
		c.logger.Info("unified grief step complete", "detected_mood", mood)
	}

	if req.IncludeDailyPlan {
		plan, err := c.plan.Create(ctx, req.UserMessage, req.PlanPreferences, mood)
		if err != nil {
			return nil, fmt.Errorf("unified plan step: %w", err)
		}
		resp.DailyPlan = plan
		c.logger.Info("unified plan step complete", "entries", plan.Len())
	}

	if req.IncludeMediaRecommendations {
		mr, err := c.media.Recommend(ctx, media.Options{
			Message:    req.UserMessage,
			MediaType:  req.MediaType,
			MaxResults: req.MaxMediaResults,
			Mood:       mood,
		})
		if err != nil {
			return nil, fmt.Errorf("unified media step: %w", err)
		}
		resp.MediaResponse = mr
		c.logger.Info("unified media step complete", "recommendations", len(mr.Recommendations))
	}

	return resp, nil
}

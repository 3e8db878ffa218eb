package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/solace/internal/apperr"
	"github.com/MikeSquared-Agency/solace/internal/grief"
	"github.com/MikeSquared-Agency/solace/internal/hermes"
	"github.com/MikeSquared-Agency/solace/internal/media"
	"github.com/MikeSquared-Agency/solace/internal/metrics"
	"github.com/MikeSquared-Agency/solace/internal/planner"
	"github.com/MikeSquared-Agency/solace/internal/unified"
)

const (
	analysisIDHeader = "X-Analysis-ID"
	maxBodyBytes     = 1 << 20
)

const (
	kindAnalyze   = "analyze"
	kindDailyPlan = "daily_plan"
	kindMedia     = "media"
	kindUnified   = "unified"
)

// POST /analyze
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req grief.Request
	if !s.decode(w, r, &req) || !requireMessage(w, req.UserMessage) {
		return
	}

	a := s.begin(w, kindAnalyze)
	resp, err := s.grief.Analyze(r.Context(), req.UserMessage, "")
	if err != nil {
		s.fail(w, a, err, "Failed to analyze post")
		return
	}
	s.complete(a, resp.DetectedMood())
	writeJSON(w, http.StatusOK, resp)
}

// POST /daily-plan
func (s *Server) dailyPlan(w http.ResponseWriter, r *http.Request) {
	var req planner.Request
	if !s.decode(w, r, &req) || !requireMessage(w, req.UserMessage) {
		return
	}

	a := s.begin(w, kindDailyPlan)
	plan, err := s.planner.Create(r.Context(), req.UserMessage, req.Preferences, "")
	if err != nil {
		s.fail(w, a, err, "Failed to create daily plan")
		return
	}
	s.complete(a, "")
	writeJSON(w, http.StatusOK, plan)
}

// POST /media-recommendations
func (s *Server) mediaRecommendations(w http.ResponseWriter, r *http.Request) {
	var req media.Request
	if !s.decode(w, r, &req) || !requireMessage(w, req.UserMessage) {
		return
	}

	a := s.begin(w, kindMedia)
	resp, err := s.media.Recommend(r.Context(), media.Options{
		Message:    req.UserMessage,
		MediaType:  req.MediaType,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		s.fail(w, a, err, "Failed to get media recommendations")
		return
	}
	s.complete(a, resp.DetectedMood)
	writeJSON(w, http.StatusOK, resp)
}

// POST /unified-analysis
func (s *Server) unifiedAnalysis(w http.ResponseWriter, r *http.Request) {
	var req unified.Request
	if !s.decode(w, r, &req) || !requireMessage(w, req.UserMessage) {
		return
	}

	a := s.begin(w, kindUnified)
	resp, err := s.unified.Run(r.Context(), req)
	if err != nil {
		s.fail(w, a, err, "Failed to process unified analysis")
		return
	}
	s.complete(a, resp.DetectedMood())
	writeJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body into v, answering 422 when it cannot.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func requireMessage(w http.ResponseWriter, msg string) bool {
	if strings.TrimSpace(msg) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "user_message is required")
		return false
	}
	return true
}

type analysis struct {
	id      string
	kind    string
	started time.Time
}

func (s *Server) begin(w http.ResponseWriter, kind string) analysis {
	a := analysis{id: uuid.NewString(), kind: kind, started: time.Now()}
	w.Header().Set(analysisIDHeader, a.id)
	return a
}

func (s *Server) complete(a analysis, mood string) {
	metrics.Analyses.WithLabelValues(a.kind, "ok").Inc()
	ev := hermes.NewEvent(a.id, a.kind, a.started)
	ev.DetectedMood = mood
	hermes.Emit(s.publisher, s.logger, ev)
}

// fail logs the classified error and answers with a generic 500.
func (s *Server) fail(w http.ResponseWriter, a analysis, err error, detail string) {
	kind := apperr.KindOf(err)
	metrics.Analyses.WithLabelValues(a.kind, string(kind)).Inc()
	s.logger.Error("analysis failed",
		"analysis_id", a.id,
		"kind", a.kind,
		"error_kind", kind,
		"error", err,
	)

	ev := hermes.NewEvent(a.id, a.kind, a.started)
	ev.Error = detail
	ev.ErrorKind = string(kind)
	hermes.Emit(s.publisher, s.logger, ev)

	writeDetail(w, http.StatusInternalServerError, detail)
}

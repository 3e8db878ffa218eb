package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MikeSquared-Agency/solace/internal/grief"
	"github.com/MikeSquared-Agency/solace/internal/hermes"
	"github.com/MikeSquared-Agency/solace/internal/media"
	"github.com/MikeSquared-Agency/solace/internal/metrics"
	"github.com/MikeSquared-Agency/solace/internal/planner"
	"github.com/MikeSquared-Agency/solace/internal/unified"
)

const version = "1.0.0"

type GriefAnalyzer interface {
	Analyze(ctx context.Context, message, mood string) (*grief.Response, error)
}

type Planner interface {
	Create(ctx context.Context, message string, prefs map[string]any, mood string) (*planner.Plan, error)
}

type Recommender interface {
	Recommend(ctx context.Context, opts media.Options) (*media.Response, error)
}

type Coordinator interface {
	Run(ctx context.Context, req unified.Request) (*unified.Response, error)
}

// Deps are the services behind the HTTP routes.
type Deps struct {
	Grief     GriefAnalyzer
	Planner   Planner
	Media     Recommender
	Unified   Coordinator
	Publisher hermes.Publisher
	Logger    *slog.Logger
}

type Server struct {
	router *chi.Mux
	env    string
	srv    *http.Server

	grief     GriefAnalyzer
	planner   Planner
	media     Recommender
	unified   Coordinator
	publisher hermes.Publisher
	logger    *slog.Logger
}

func NewServer(port int, env string, requestTimeout time.Duration, deps Deps) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{analysisIDHeader},
		AllowCredentials: true,
	}))
	router.Use(metrics.Middleware)

	publisher := deps.Publisher
	if publisher == nil {
		publisher = hermes.Nop{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:    router,
		env:       env,
		grief:     deps.Grief,
		planner:   deps.Planner,
		media:     deps.Media,
		unified:   deps.Unified,
		publisher: publisher,
		logger:    logger,
	}

	router.Get("/", s.root)
	router.Get("/health", s.health)
	router.Handle("/metrics", metrics.Handler())

	analysis := func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Post("/analyze", s.analyze)
		r.Post("/daily-plan", s.dailyPlan)
		r.Post("/media-recommendations", s.mediaRecommendations)
		r.Post("/unified-analysis", s.unifiedAnalysis)
	}
	router.Group(analysis)
	router.Route("/api/v1", analysis)

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Grief Support API.",
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"environment": s.env,
		"version":     version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

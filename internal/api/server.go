// Package api serves the counselling engine over HTTP: stateless scoring
// endpoints, per-user state endpoints and the counsellor chat.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studyabroad-workers/internal/catalog"
	"studyabroad-workers/internal/common/logger"
	"studyabroad-workers/internal/counsellor"
	"studyabroad-workers/internal/models"
)

// Store is the profile store as the API uses it.
type Store interface {
	counsellor.StateStore
	SaveProfile(ctx context.Context, userID string, profile models.UserProfile) error
	Unshortlist(ctx context.Context, userID, universityID string) error
	AddTodo(ctx context.Context, userID, task string, category models.TaskCategory) (models.ToDoItem, error)
	ToggleTodo(ctx context.Context, userID, todoID string) error
	SetStage(ctx context.Context, userID string, stage models.AppStage) error
}

// Check reports whether a dependency is ready to serve.
type Check func(ctx context.Context) error

type Options struct {
	AllowedOrigins []string
	Checks         map[string]Check
}

type Server struct {
	catalog   catalog.Source
	store     Store
	responder counsellor.Responder
	executor  *counsellor.Executor
	checks    map[string]Check
	origins   []string
	logger    logger.Logger
}

func NewServer(src catalog.Source, store Store, responder counsellor.Responder, opts Options, log logger.Logger) *Server {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		catalog:   src,
		store:     store,
		responder: responder,
		executor:  counsellor.NewExecutor(store, src),
		checks:    opts.Checks,
		origins:   origins,
		logger:    log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/universities", s.listUniversities)
		r.Post("/catalog/refresh", s.refreshCatalog)
		r.Post("/universities/filter", s.filterUniversities)
		r.Post("/universities/{id}/fit", s.explainFit)
		r.Post("/profile/analysis", s.analyzeProfile)
		r.Post("/recommendations", s.recommend)
		r.Post("/ai/chat", s.chat)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/state", s.getState)
			r.Put("/profile", s.putProfile)
			r.Put("/stage", s.putStage)
			r.Get("/greeting", s.greeting)
			r.Post("/shortlist/{id}", s.shortlist)
			r.Delete("/shortlist/{id}", s.unshortlist)
			r.Post("/lock/{id}", s.lock)
			r.Post("/todos", s.addTodo)
			r.Patch("/todos/{todoID}", s.toggleTodo)
			r.Post("/actions", s.applyAction)
		})
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request", map[string]interface{}{
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"bytes":     ww.BytesWritten(),
			"duration":  time.Since(start).String(),
			"requestId": middleware.GetReqID(r.Context()),
		})
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	writeJSON(w, status, map[string]interface{}{"status": state, "checks": results})
}

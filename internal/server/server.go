// Package server exposes the workout list over a small JSON/HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/riordanpawley/workouttimer/internal/services/workouts"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	// mu serialises access to the single-threaded workout service
	mu      sync.Mutex
	service *workouts.Service
	log     *slog.Logger
	now     func() time.Time
	router  chi.Router
}

// Option configures a Server
type Option func(*Server)

// WithClock overrides the time source used for completions and export names
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a new Server with all routes configured.
func New(service *workouts.Service, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		service: service,
		log:     log,
		now:     time.Now,
		router:  chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleCreateWorkout)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Put("/workouts/{id}", s.handleUpdateWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		r.Post("/workouts/{id}/complete", s.handleCompleteWorkout)
		r.Post("/workouts/import", s.handleImport)
		r.Delete("/workouts", s.handleClear)

		r.Get("/export.json", s.handleExportJSON)
		r.Get("/export.md", s.handleExportMarkdown)

		r.Get("/stats", s.handleStats)
		r.Get("/theme", s.handleGetTheme)
		r.Put("/theme", s.handleSetTheme)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

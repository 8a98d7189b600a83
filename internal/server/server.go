// Package server exposes health and metrics endpoints plus the slay and lore
// API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/game/slay"
	"github.com/udisondev/slays/internal/game/slaycache"
	"github.com/udisondev/slays/internal/lore"
	"github.com/udisondev/slays/internal/metrics"
	"github.com/udisondev/slays/internal/model"
)

// Pinger checks a dependency for readiness. *db.DB satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services behind the HTTP handlers.
type Deps struct {
	Matcher *slay.Matcher
	Cache   *slaycache.Cache
	Book    *lore.Book
	// DB is nil when lore is memory-only.
	DB Pinger

	// Race and Ego default to the loaded game data tables.
	Race func(id int32) *model.Race
	Ego  func(id int32) *model.EgoItem
}

// Server HTTP-интерфейс slayd.
type Server struct {
	httpServer *http.Server
}

// NewServer wires the router.
func NewServer(addr string, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the chi router. Exposed for tests.
func NewRouter(deps Deps) http.Handler {
	if deps.Race == nil {
		deps.Race = data.GetRace
	}
	if deps.Ego == nil {
		deps.Ego = data.GetEgoItem
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metrics.MetricsMiddleware)

	r.Get("/healthz", handleHealthz())
	r.Get("/readyz", handleReadyz(deps.DB))
	r.Handle("/metrics", promhttp.Handler())

	h := &handlers{deps: deps}
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/slays", h.listCatalog)
		r.Get("/slays/match", h.match)
		r.Get("/slays/random", h.random)
		r.Get("/cache", h.listCache)
		r.Get("/cache/lookup", h.lookup)
		r.Post("/attacks", h.attack)
		r.Get("/lore/{raceID}", h.raceLore)
		r.Delete("/lore/{raceID}", h.forgetLore)
	})

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

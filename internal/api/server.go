// Package api serves the store over HTTP as JSON: the report catalog with
// its filters, and the listing and claim mutators.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Server timeouts.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Handler holds the dependencies of every route.
type Handler struct {
	store   types.Store
	logger  *slog.Logger
	now     func() time.Time
	version string
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock sets the clock used to stamp claims created without a
// Timestamp and the health response.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(h *Handler) { h.version = v }
}

// NewHandler returns a Handler over an attached store.
func NewHandler(store types.Store, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{store: store, logger: logger, now: time.Now, version: "dev"}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router builds the chi router with middleware and all routes mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", h.options)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", h.listReports)
			r.Get("/{reportID}", h.runReport)
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", h.listListings)
			r.Post("/", h.createListing)
			r.Get("/{foodID}", h.getListing)
			r.Put("/{foodID}", h.updateListing)
			r.Delete("/{foodID}", h.deleteListing)
		})

		r.Route("/claims", func(r chi.Router) {
			r.Get("/", h.listClaims)
			r.Post("/", h.createClaim)
			r.Get("/{claimID}", h.getClaim)
			r.Delete("/{claimID}", h.deleteClaim)
			r.Put("/{claimID}/status", h.updateClaimStatus)
		})
	})

	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}

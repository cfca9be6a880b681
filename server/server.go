package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tsawler/pagelayout/config"
	"github.com/tsawler/pagelayout/telemetry"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	*config.Config

	handler http.Handler
}

func New(cfg *config.Config) (*Server, error) {
	h, err := NewHandler(cfg)

	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(limit(cfg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		h.Attach(r)
	})

	return &Server{
		Config: cfg,

		handler: otelhttp.NewHandler(r, telemetry.ServiceName()),
	}, nil
}

// Handler returns the instrumented root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: s.handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		slog.Info("server listening", "address", s.Address)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("server shutting down")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")

		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func limit(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Limiter != nil && !cfg.Limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

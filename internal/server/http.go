package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether a dependency is reachable (satisfied by *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouteRegistrar mounts a group of routes on the mux.
type RouteRegistrar interface {
	Register(mux *http.ServeMux)
}

// NewHTTPServer wires base routes (health, readiness, metrics) and the API
// routes behind the middleware chain.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, db Pinger, registry *prometheus.Registry, routes ...RouteRegistrar) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg, logger, db, registry, routes...),
	}
}

// NewHandler builds the routed, middleware-wrapped handler.
func NewHandler(cfg *config.App, logger zerolog.Logger, db Pinger, registry *prometheus.Registry, routes ...RouteRegistrar) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				logger.Error().Err(err).Msg("dependency ping failed")
				httperrors.RespondServiceUnavailable(w)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	metrics := newHTTPMetrics(registry)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	for _, r := range routes {
		r.Register(mux)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	var handler http.Handler = mux
	handler = metrics.instrument(handler)
	handler = corsMiddleware(cfg.CORS)(handler)
	handler = recoverer(logger)(handler)
	handler = requestLogger(logger)(handler)
	return handler
}

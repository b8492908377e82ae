package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fordeling/internal/platform/metrics"
	"fordeling/internal/platform/tracing"
	"fordeling/pkg/platform/middleware/requestid"
	"fordeling/pkg/platform/middleware/requesttime"
)

// Registrar mounts a group of endpoints.
type Registrar interface {
	Register(r chi.Router)
}

// New builds an HTTP server with sane defaults for this project.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// NewRouter assembles the middleware chain, /metrics and every registrar.
// gatherer may be nil to skip /metrics.
func NewRouter(httpMetrics *metrics.HTTP, gatherer prometheus.Gatherer, registrars ...Registrar) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(tracing.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(httpMetrics.Middleware)

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	for _, reg := range registrars {
		reg.Register(r)
	}
	return r
}

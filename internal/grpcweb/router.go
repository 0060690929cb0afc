package grpcweb

import (
	"context"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Check is a readiness probe for one dependency.
type Check func(ctx context.Context) error

type RouterConfig struct {
	// Service is the gRPC service name browsers may call.
	Service     string
	CORSOrigins []string
	// TrustedProxies may set the client address through forwarding headers.
	// Empty means the TCP peer is always the client.
	TrustedProxies []netip.Prefix
	// RequestsPerMinute caps each client IP. Zero disables the limit.
	RequestsPerMinute int
	Checks            map[string]Check
	// Gatherer backs /metrics. Nil leaves the route out.
	Gatherer prometheus.Gatherer
}

// Router mounts the bridge with the health and metrics endpoints.
func Router(b *Bridge, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(realIP(cfg.TrustedProxies))
	r.Use(chimw.Recoverer)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Grpc-Web", "X-User-Agent", "X-Request-Id"},
		ExposedHeaders: []string{"Grpc-Status", "Grpc-Message", "Grpc-Status-Details-Bin"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", ready(cfg.Checks))
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(g chi.Router) {
		if cfg.RequestsPerMinute > 0 {
			g.Use(httprate.LimitByIP(cfg.RequestsPerMinute, time.Minute))
		}
		g.Post("/"+cfg.Service+"/{method}", b.ServeHTTP)
	})
	return r
}

func ready(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for name, check := range checks {
			if err := check(ctx); err != nil {
				http.Error(w, name+" unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}

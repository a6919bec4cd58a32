package main

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/cubedraft/go/internal/rpcjson"
)

func setupServer(services *Services, port string) *http.Server {
	return &http.Server{
		Addr:    ":" + port,
		Handler: newHandler(services, prometheus.NewRegistry()),
	}
}

// newHandler mounts every service plus /health and /metrics, wrapped in
// CORS and h2c.
func newHandler(services *Services, registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	interceptor := rpcjson.NewMetricsInterceptor(registry)

	registerServices(mux, services, connect.WithInterceptors(interceptor))
	setupHealthCheck(mux)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	return h2c.NewHandler(c.Handler(mux), &http2.Server{})
}

func registerServices(mux *http.ServeMux, services *Services, opts ...connect.HandlerOption) {
	mux.Handle(services.Participants.Handler(opts...))
	mux.Handle(services.Catalog.Handler(opts...))
	mux.Handle(services.Draft.Handler(opts...))
	mux.Handle(services.Pool.Handler(opts...))
	mux.Handle(services.Pick.Handler(opts...))
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}

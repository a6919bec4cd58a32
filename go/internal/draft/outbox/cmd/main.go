package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/cubedraft/go/internal/dbconfig"
	"github.com/mcdev12/cubedraft/go/internal/draft/db"
	"github.com/mcdev12/cubedraft/go/internal/draft/outbox"
	"github.com/mcdev12/cubedraft/go/internal/logging"
)

type relayConfig struct {
	NatsURL          string        `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	FallbackInterval time.Duration `env:"FALLBACK_INTERVAL" envDefault:"30s"`
	MetricsAddr      string        `env:"OUTBOX_METRICS_ADDR" envDefault:":9091"`
	StallThreshold   time.Duration `env:"OUTBOX_STALL_THRESHOLD" envDefault:"2m"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	// load .env
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg relayConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("parse relay env")
	}
	logging.Setup(cfg.LogLevel)

	dbCfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("parse db env")
	}
	dsn := dbCfg.DSN()
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	log.Info().
		Str("host", dbCfg.Host).
		Int("port", dbCfg.Port).
		Str("database", dbCfg.Database).
		Msg("connected to database")

	// signal-aware context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()

	jsCfg := outbox.DefaultJetStreamConfig()
	jsCfg.URL = cfg.NatsURL
	publisher, err := outbox.NewJetStreamPublisher(ctx, jsCfg, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("create JetStream publisher")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("close publisher")
		}
	}()

	ltCfg := outbox.DefaultListenerConfig()
	ltCfg.DatabaseURL = dsn
	ltCfg.FallbackInterval = cfg.FallbackInterval

	notifier, err := outbox.NewPQNotifier(ltCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create outbox notifier")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := outbox.NewPrometheusMetrics(registry)

	store := outbox.NewRepository(db.New(sqlDB))
	listener := outbox.NewListener(notifier, store, publisher, metrics, clock, ltCfg)
	health := outbox.NewHealthChecker(listener, sqlDB, publisher.Conn(), store, clock, cfg.StallThreshold)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/health", health)
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics and health")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msg("starting realtime listener")
		errCh <- listener.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		if err := <-errCh; err != nil {
			log.Error().Err(err).Msg("listener stop")
		}
	case err := <-errCh:
		log.Error().Err(err).Msg("listener exited unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server shutdown")
	}
	log.Info().Msg("graceful shutdown complete")
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/cubedraft/go/internal/catalog"
	catalogdb "github.com/mcdev12/cubedraft/go/internal/catalog/db"
	"github.com/mcdev12/cubedraft/go/internal/dbconfig"
	"github.com/mcdev12/cubedraft/go/internal/draft/draft"
	"github.com/mcdev12/cubedraft/go/internal/draft/gateway"
	"github.com/mcdev12/cubedraft/go/internal/draft/pick"
	"github.com/mcdev12/cubedraft/go/internal/draft/pool"
	"github.com/mcdev12/cubedraft/go/internal/draft/repository"
	"github.com/mcdev12/cubedraft/go/internal/logging"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

type gatewayConfig struct {
	Port           string `env:"GATEWAY_PORT" envDefault:"8081"`
	NatsURL        string `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	ConsumerName   string `env:"GATEWAY_CONSUMER" envDefault:"draft-gateway"`
	AllowedOrigins string `env:"GATEWAY_ALLOWED_ORIGINS" envDefault:"*"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg gatewayConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("parse gateway env")
	}
	logging.Setup(cfg.LogLevel)

	dbCfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("parse db env")
	}
	sqlDB, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	log.Info().
		Str("database", dbCfg.Database).
		Str("nats_url", cfg.NatsURL).
		Str("port", cfg.Port).
		Msg("starting draft gateway")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	provider := setupStateProvider(sqlDB, clock)

	gwCfg := gateway.DefaultConfig()
	gwCfg.JetStreamConfig.URL = cfg.NatsURL
	gwCfg.JetStreamConfig.ConsumerName = cfg.ConsumerName

	svc, err := gateway.NewService(ctx, gwCfg, provider, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gateway service")
	}

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     gateway.WithCORS(mux, splitOrigins(cfg.AllowedOrigins)),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		if err := svc.Start(ctx); err != nil {
			log.Error().Err(err).Msg("gateway service failed")
			stop()
		}
	}()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	log.Info().Msg("draft gateway shutdown complete")
}

// setupStateProvider wires the read side of the draft apps. Rules do not
// affect reads, so the zero value is used.
func setupStateProvider(sqlDB *sql.DB, clock clockwork.Clock) *gateway.AppStateProvider {
	base := repository.NewRepository(sqlDB)
	catalogApp := catalog.NewApp(catalog.NewRepository(catalogdb.New(sqlDB)))

	draftApp := draft.NewApp(draft.NewRepository(base), clock, nil, models.DraftRules{})
	poolApp := pool.NewApp(pool.NewRepository(base), catalogApp, clock)
	pickApp := pick.NewApp(pick.NewRepository(base), clock, models.DraftRules{})

	return gateway.NewAppStateProvider(draftApp, poolApp, pickApp, clock)
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

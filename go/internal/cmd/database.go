package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/cubedraft/go/internal/dbconfig"
	"github.com/mcdev12/cubedraft/go/internal/migrations"
)

func setupDatabase(ctx context.Context, autoMigrate bool) (*sql.DB, error) {
	dbCfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	database, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("user", dbCfg.User).
		Str("host", dbCfg.Host).
		Int("port", dbCfg.Port).
		Str("database", dbCfg.Database).
		Msg("connected to database")

	if autoMigrate {
		if err := migrations.Apply(ctx, database); err != nil {
			database.Close()
			return nil, err
		}
	}
	return database, nil
}

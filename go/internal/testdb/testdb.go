// Package testdb starts throwaway Postgres containers for repository tests.
package testdb

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/mcdev12/cubedraft/go/internal/migrations"
)

const image = "postgres:16-alpine"

// Database is a migrated Postgres instance owned by one test.
type Database struct {
	DB  *sql.DB
	DSN string
}

// New starts Postgres, applies the schema and registers cleanup on t.
// The test is skipped under -short or when no container provider is available.
func New(t *testing.T) *Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase("cubedraft"),
		postgres.WithUsername("cubedraft"),
		postgres.WithPassword("cubedraft"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, migrations.Apply(ctx, db))

	return &Database{DB: db, DSN: dsn}
}

// SeedCards inserts minimal catalog rows for setID and returns their ids.
func SeedCards(t *testing.T, db *sql.DB, setID string, names ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(names))
	for _, name := range names {
		var id string
		err := db.QueryRowContext(context.Background(), `
			INSERT INTO cards (id, name, layout, set_id, set_code, set_name, set_type, scryfall_uri)
			VALUES (gen_random_uuid(), $1, 'normal', $2, $2, $2, 'expansion', 'https://scryfall.com/card/'||$2)
			RETURNING id`, name, setID).Scan(&id)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

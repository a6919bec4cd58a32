package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/catalog"
	catalogdb "github.com/mcdev12/cubedraft/go/internal/catalog/db"
	"github.com/mcdev12/cubedraft/go/internal/testdb"
)

func TestRun_Postgres(t *testing.T) {
	tdb := testdb.New(t)
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, tdb.DSN)
	require.NoError(t, err)
	defer pool.Close()

	cfg := defaultImportConfig()
	cfg.Source = filepath.Join("testdata", "cards.json")
	cfg.BatchSize = 1

	parsed, loaded, err := run(ctx, pool, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.Kept)
	assert.Equal(t, loadStats{Batches: 2, Inserted: 2}, loaded)

	// a second import skips everything already present
	cfg.BatchSize = 100
	_, loaded, err = run(ctx, pool, cfg)
	require.NoError(t, err)
	assert.Equal(t, loadStats{Batches: 1, Skipped: 2}, loaded)

	cat := catalog.NewApp(catalog.NewRepository(catalogdb.New(tdb.DB)))
	delver, err := cat.GetCard(ctx, uuid.MustParse("00e93be2-e06b-4774-8ba5-ccf82a6da1d8"))
	require.NoError(t, err)
	require.NotNil(t, delver.Back)
	require.NotNil(t, delver.Back.Normal)
	assert.Equal(t, "https://cards.scryfall.io/normal/back/delver.jpg", *delver.Back.Normal)

	n, err := cat.CountCardsBySet(ctx, "c1d109bc-ffd8-428f-8d7d-3f8d7e648046")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

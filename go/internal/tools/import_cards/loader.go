package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/cubedraft/go/internal/models"
)

const insertCard = `
INSERT INTO cards (
  id, oracle_id, name, layout, color_identity,
  set_id, set_code, set_name, set_type, scryfall_uri, booster,
  image_uri_small, image_uri_normal, image_uri_large,
  image_uri_png, image_uri_art_crop, image_uri_border_crop,
  back_image_uri_small, back_image_uri_normal, back_image_uri_large,
  back_image_uri_png, back_image_uri_art_crop, back_image_uri_border_crop
) VALUES (
  $1, $2, $3, $4, $5,
  $6, $7, $8, $9, $10, $11,
  $12, $13, $14, $15, $16, $17,
  $18, $19, $20, $21, $22, $23
)
ON CONFLICT (id) DO NOTHING`

// loadStats reports the outcome of a load.
type loadStats struct {
	Batches  int
	Inserted int
	Skipped  int
}

// loader buffers cards and writes them in pgx batches.
type loader struct {
	pool      *pgxpool.Pool
	batchSize int
	pending   []models.Card
	stats     loadStats
}

func newLoader(pool *pgxpool.Pool, batchSize int) *loader {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &loader{pool: pool, batchSize: batchSize}
}

// Add queues c and flushes once a batch is full.
func (l *loader) Add(ctx context.Context, c models.Card) error {
	l.pending = append(l.pending, c)
	if len(l.pending) >= l.batchSize {
		return l.Flush(ctx)
	}
	return nil
}

// Flush writes any queued cards in one batch.
func (l *loader) Flush(ctx context.Context) error {
	if len(l.pending) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range l.pending {
		batch.Queue(insertCard, cardArgs(c)...)
	}

	br := l.pool.SendBatch(ctx, batch)
	for range l.pending {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return fmt.Errorf("insert batch %d: %w", l.stats.Batches+1, err)
		}
		if tag.RowsAffected() == 1 {
			l.stats.Inserted++
		} else {
			l.stats.Skipped++
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch %d: %w", l.stats.Batches+1, err)
	}

	l.stats.Batches++
	log.Info().
		Int("batch", l.stats.Batches).
		Int("cards", len(l.pending)).
		Int("inserted_total", l.stats.Inserted).
		Msg("inserted batch")
	l.pending = l.pending[:0]
	return nil
}

func cardArgs(c models.Card) []any {
	var colorIdentity any
	if len(c.ColorIdentity) > 0 {
		colorIdentity = string(c.ColorIdentity)
	}
	back := models.ImageURIs{}
	if c.Back != nil {
		back = *c.Back
	}
	return []any{
		c.ID, c.OracleID, c.Name, string(c.Layout), colorIdentity,
		c.SetID, c.SetCode, c.SetName, c.SetType, c.ScryfallURI, c.Booster,
		c.Front.Small, c.Front.Normal, c.Front.Large,
		c.Front.PNG, c.Front.ArtCrop, c.Front.BorderCrop,
		back.Small, back.Normal, back.Large,
		back.PNG, back.ArtCrop, back.BorderCrop,
	}
}

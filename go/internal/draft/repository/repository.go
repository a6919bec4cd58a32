// Package repository holds the storage plumbing shared by the draft
// sub-packages: the per-draft transaction and row conversions.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/draft/db"
	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/sqlutil"
)

type Repository struct {
	db      *sql.DB
	queries *db.Queries
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		db:      sqlDB,
		queries: db.New(sqlDB),
	}
}

// Queries returns queries bound to the connection pool, outside any tx.
func (r *Repository) Queries() *db.Queries {
	return r.queries
}

// WithinDraft runs fn in a transaction that holds the draft's row lock.
// Writers to the same draft are serialized; other drafts are unaffected.
// Returns drafterr.ErrDraftNotFound when the draft does not exist.
func (r *Repository) WithinDraft(ctx context.Context, draftID uuid.UUID, fn func(q *db.Queries) error) error {
	return sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		if _, err := q.LockDraft(ctx, draftID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return drafterr.ErrDraftNotFound
			}
			return fmt.Errorf("failed to lock draft: %w", err)
		}
		return fn(q)
	})
}

// GetDraft retrieves a draft by ID
func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	draft, err := r.queries.GetDraft(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, drafterr.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return DraftToModel(draft), nil
}

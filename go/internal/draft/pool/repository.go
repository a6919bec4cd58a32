package pool

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/draft/db"
	"github.com/mcdev12/cubedraft/go/internal/draft/outbox"
	"github.com/mcdev12/cubedraft/go/internal/draft/repository"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// PoolStore is the view of one draft's pool inside its locked transaction.
type PoolStore interface {
	SeedPoolFromSet(ctx context.Context, draftID uuid.UUID, setID string) (int, error)
	CountPoolEntries(ctx context.Context, draftID uuid.UUID) (int, error)
	InsertEvent(ctx context.Context, draftID uuid.UUID, eventType string, payload any) error
}

type Repository struct {
	base *repository.Repository
}

func NewRepository(base *repository.Repository) *Repository {
	return &Repository{base: base}
}

func (r *Repository) WithinDraft(ctx context.Context, draftID uuid.UUID, fn func(store PoolStore) error) error {
	return r.base.WithinDraft(ctx, draftID, func(q *db.Queries) error {
		return fn(&txStore{queries: q, outbox: outbox.NewRepository(q)})
	})
}

func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	return r.base.GetDraft(ctx, id)
}

// ListPool returns the draft's pool entries with card names and images.
func (r *Repository) ListPool(ctx context.Context, draftID uuid.UUID) ([]models.PoolCard, error) {
	rows, err := r.base.Queries().ListPoolEntries(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool entries: %w", err)
	}
	cards := make([]models.PoolCard, len(rows))
	for i, row := range rows {
		cards[i] = repository.PoolCardToModel(row)
	}
	return cards, nil
}

type txStore struct {
	queries *db.Queries
	outbox  *outbox.Repository
}

// SeedPoolFromSet copies the set's cards into the pool, skipping cards
// already present. Returns the number of entries added.
func (s *txStore) SeedPoolFromSet(ctx context.Context, draftID uuid.UUID, setID string) (int, error) {
	n, err := s.queries.SeedPoolFromSet(ctx, db.SeedPoolFromSetParams{
		DraftID: draftID,
		SetID:   setID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed pool: %w", err)
	}
	return int(n), nil
}

func (s *txStore) CountPoolEntries(ctx context.Context, draftID uuid.UUID) (int, error) {
	n, err := s.queries.CountPoolEntries(ctx, draftID)
	if err != nil {
		return 0, fmt.Errorf("failed to count pool entries: %w", err)
	}
	return int(n), nil
}

func (s *txStore) InsertEvent(ctx context.Context, draftID uuid.UUID, eventType string, payload any) error {
	return s.outbox.InsertEvent(ctx, draftID, eventType, payload)
}

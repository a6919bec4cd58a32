package pick

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/draft/db"
	"github.com/mcdev12/cubedraft/go/internal/draft/outbox"
	"github.com/mcdev12/cubedraft/go/internal/draft/repository"
	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// PickStore is the view of one draft's ledger inside its locked transaction.
type PickStore interface {
	GetDraftParticipant(ctx context.Context, draftID, participantID uuid.UUID) (*models.DraftParticipant, error)
	ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error)
	GetPoolEntryForUpdate(ctx context.Context, draftID, poolEntryID uuid.UUID) (*models.PoolEntry, error)
	CountPicks(ctx context.Context, draftID uuid.UUID) (int, error)
	CreatePick(ctx context.Context, p models.Pick) (*models.Pick, error)
	DecrementPoolEntry(ctx context.Context, poolEntryID uuid.UUID) error
	InsertEvent(ctx context.Context, draftID uuid.UUID, eventType string, payload any) error
}

type Repository struct {
	base *repository.Repository
}

func NewRepository(base *repository.Repository) *Repository {
	return &Repository{base: base}
}

func (r *Repository) WithinDraft(ctx context.Context, draftID uuid.UUID, fn func(store PickStore) error) error {
	return r.base.WithinDraft(ctx, draftID, func(q *db.Queries) error {
		return fn(&txStore{queries: q, outbox: outbox.NewRepository(q)})
	})
}

func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	return r.base.GetDraft(ctx, id)
}

// ListPicks returns the draft's picks in pick order.
func (r *Repository) ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error) {
	rows, err := r.base.Queries().ListPicks(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	picks := make([]models.Pick, len(rows))
	for i, row := range rows {
		picks[i] = *repository.PickToModel(row)
	}
	return picks, nil
}

type txStore struct {
	queries *db.Queries
	outbox  *outbox.Repository
}

func (s *txStore) GetDraftParticipant(ctx context.Context, draftID, participantID uuid.UUID) (*models.DraftParticipant, error) {
	dp, err := s.queries.GetDraftParticipant(ctx, db.GetDraftParticipantParams{
		DraftID:       draftID,
		ParticipantID: participantID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, drafterr.ErrNotInDraft
		}
		return nil, fmt.Errorf("failed to get draft participant: %w", err)
	}
	return repository.DraftParticipantToModel(dp), nil
}

func (s *txStore) ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error) {
	rows, err := s.queries.ListDraftParticipants(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft participants: %w", err)
	}
	return repository.DraftParticipantsToModels(rows), nil
}

// GetPoolEntryForUpdate row-locks the entry. A missing entry is unavailable.
func (s *txStore) GetPoolEntryForUpdate(ctx context.Context, draftID, poolEntryID uuid.UUID) (*models.PoolEntry, error) {
	pe, err := s.queries.GetPoolEntryForUpdate(ctx, db.GetPoolEntryForUpdateParams{
		ID:      poolEntryID,
		DraftID: draftID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, drafterr.ErrPoolEntryUnavailable
		}
		return nil, fmt.Errorf("failed to get pool entry: %w", err)
	}
	return repository.PoolEntryToModel(pe), nil
}

func (s *txStore) CountPicks(ctx context.Context, draftID uuid.UUID) (int, error) {
	n, err := s.queries.CountPicks(ctx, draftID)
	if err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return int(n), nil
}

func (s *txStore) CreatePick(ctx context.Context, p models.Pick) (*models.Pick, error) {
	row, err := s.queries.CreatePick(ctx, db.CreatePickParams{
		ID:                 p.ID,
		DraftID:            p.DraftID,
		DraftParticipantID: p.DraftParticipantID,
		PoolEntryID:        p.PoolEntryID,
		PickNumber:         int32(p.PickNumber),
		PickedAt:           p.PickedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pick: %w", err)
	}
	return repository.PickToModel(row), nil
}

// DecrementPoolEntry takes one copy. It never drives remaining_count below zero.
func (s *txStore) DecrementPoolEntry(ctx context.Context, poolEntryID uuid.UUID) error {
	n, err := s.queries.DecrementPoolEntry(ctx, poolEntryID)
	if err != nil {
		return fmt.Errorf("failed to decrement pool entry: %w", err)
	}
	if n == 0 {
		return drafterr.ErrPoolEntryUnavailable
	}
	return nil
}

func (s *txStore) InsertEvent(ctx context.Context, draftID uuid.UUID, eventType string, payload any) error {
	return s.outbox.InsertEvent(ctx, draftID, eventType, payload)
}

package draft

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/draft/db"
	"github.com/mcdev12/cubedraft/go/internal/draft/outbox"
	"github.com/mcdev12/cubedraft/go/internal/draft/repository"
	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/sqlutil"
)

const draftParticipantKey = "draft_participants_draft_id_participant_id_key"

// DraftStore is the view of one draft inside its locked transaction.
type DraftStore interface {
	AddParticipant(ctx context.Context, dp models.DraftParticipant) (*models.DraftParticipant, error)
	ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error)
	AssignTurnOrders(ctx context.Context, draftID uuid.UUID, order []models.DraftParticipant) error
	CountPicks(ctx context.Context, draftID uuid.UUID) (int, error)
	InsertEvent(ctx context.Context, draftID uuid.UUID, eventType string, payload any) error
}

type Repository struct {
	base *repository.Repository
}

func NewRepository(base *repository.Repository) *Repository {
	return &Repository{
		base: base,
	}
}

// WithinDraft runs fn holding draftID's lock. See repository.Repository.WithinDraft.
func (r *Repository) WithinDraft(ctx context.Context, draftID uuid.UUID, fn func(store DraftStore) error) error {
	return r.base.WithinDraft(ctx, draftID, func(q *db.Queries) error {
		return fn(&txStore{queries: q, outbox: outbox.NewRepository(q)})
	})
}

func (r *Repository) CreateDraft(ctx context.Context, id uuid.UUID, req CreateDraftRequest, createdAt time.Time) (*models.Draft, error) {
	d, err := r.base.Queries().CreateDraft(ctx, db.CreateDraftParams{
		ID:        id,
		Name:      req.Name,
		CreatedAt: createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return repository.DraftToModel(d), nil
}

func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	return r.base.GetDraft(ctx, id)
}

func (r *Repository) ListDraftsForParticipant(ctx context.Context, participantID uuid.UUID) ([]models.DraftSummary, error) {
	rows, err := r.base.Queries().ListDraftsForParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts for participant: %w", err)
	}
	drafts := make([]models.DraftSummary, len(rows))
	for i, row := range rows {
		drafts[i] = models.DraftSummary{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
		}
	}
	return drafts, nil
}

func (r *Repository) ListDraftParticipants(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error) {
	rows, err := r.base.Queries().ListDraftParticipants(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft participants: %w", err)
	}
	return repository.DraftParticipantsToModels(rows), nil
}

type txStore struct {
	queries *db.Queries
	outbox  *outbox.Repository
}

// AddParticipant inserts dp. The pair must be new and the participant must exist.
func (s *txStore) AddParticipant(ctx context.Context, dp models.DraftParticipant) (*models.DraftParticipant, error) {
	row, err := s.queries.CreateDraftParticipant(ctx, db.CreateDraftParticipantParams{
		ID:            dp.ID,
		DraftID:       dp.DraftID,
		ParticipantID: dp.ParticipantID,
		JoinedAt:      dp.JoinedAt,
	})
	if err != nil {
		switch {
		case sqlutil.IsUniqueViolation(err, draftParticipantKey):
			return nil, drafterr.ErrAlreadyJoined
		case sqlutil.IsForeignKeyViolation(err):
			return nil, drafterr.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to add draft participant: %w", err)
	}
	return repository.DraftParticipantToModel(row), nil
}

func (s *txStore) ListParticipants(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error) {
	rows, err := s.queries.ListDraftParticipants(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft participants: %w", err)
	}
	return repository.DraftParticipantsToModels(rows), nil
}

// AssignTurnOrders writes every participant's TurnOrder in one statement.
func (s *txStore) AssignTurnOrders(ctx context.Context, draftID uuid.UUID, order []models.DraftParticipant) error {
	ids := make([]uuid.UUID, len(order))
	turns := make([]int32, len(order))
	for i, dp := range order {
		ids[i] = dp.ID
		turns[i] = int32(dp.TurnOrder)
	}

	n, err := s.queries.AssignTurnOrders(ctx, db.AssignTurnOrdersParams{
		Ids:        ids,
		TurnOrders: turns,
		DraftID:    draftID,
	})
	if err != nil {
		return fmt.Errorf("failed to assign turn orders: %w", err)
	}
	if int(n) != len(order) {
		return fmt.Errorf("failed to assign turn orders: updated %d of %d participants", n, len(order))
	}
	return nil
}

func (s *txStore) CountPicks(ctx context.Context, draftID uuid.UUID) (int, error) {
	n, err := s.queries.CountPicks(ctx, draftID)
	if err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return int(n), nil
}

func (s *txStore) InsertEvent(ctx context.Context, draftID uuid.UUID, eventType string, payload any) error {
	return s.outbox.InsertEvent(ctx, draftID, eventType, payload)
}

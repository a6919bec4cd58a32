package participants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/participants/db"
	"github.com/mcdev12/cubedraft/go/internal/sqlutil"
)

const externalIdentityKey = "participants_external_identity_key"

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateParticipant(ctx context.Context, arg db.CreateParticipantParams) (db.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (db.Participant, error)
	GetParticipantByName(ctx context.Context, displayName string) (db.Participant, error)
}

// Repository implements participant data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new participants repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// CreateParticipant inserts a participant. A taken external identity
// yields drafterr.ErrDuplicateParticipant.
func (r *Repository) CreateParticipant(ctx context.Context, id uuid.UUID, req RegisterParticipantRequest, createdAt time.Time) (*models.Participant, error) {
	p, err := r.queries.CreateParticipant(ctx, db.CreateParticipantParams{
		ID:               id,
		DisplayName:      req.DisplayName,
		ExternalIdentity: req.ExternalIdentity,
		CreatedAt:        createdAt,
	})
	if err != nil {
		if sqlutil.IsUniqueViolation(err, externalIdentityKey) {
			return nil, drafterr.ErrDuplicateParticipant
		}
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return dbParticipantToModel(p), nil
}

// GetParticipant retrieves a participant by ID
func (r *Repository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	p, err := r.queries.GetParticipant(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, drafterr.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return dbParticipantToModel(p), nil
}

// GetParticipantByName retrieves the earliest registered participant with displayName
func (r *Repository) GetParticipantByName(ctx context.Context, displayName string) (*models.Participant, error) {
	p, err := r.queries.GetParticipantByName(ctx, displayName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, drafterr.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant by name: %w", err)
	}
	return dbParticipantToModel(p), nil
}

func dbParticipantToModel(p db.Participant) *models.Participant {
	return &models.Participant{
		ID:               p.ID,
		DisplayName:      p.DisplayName,
		ExternalIdentity: p.ExternalIdentity,
		CreatedAt:        p.CreatedAt,
	}
}

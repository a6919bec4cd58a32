package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/cubedraft/go/internal/models"
)

// DraftReader is the subset of the draft app the gateway reads.
type DraftReader interface {
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListDraftParticipants(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error)
}

// PoolReader is the subset of the pool app the gateway reads.
type PoolReader interface {
	ListPool(ctx context.Context, draftID uuid.UUID) ([]models.PoolCard, error)
}

// PickReader is the subset of the pick app the gateway reads.
type PickReader interface {
	ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error)
}

// AppStateProvider builds snapshots straight from the store on every call.
type AppStateProvider struct {
	drafts DraftReader
	pool   PoolReader
	picks  PickReader
	clock  clockwork.Clock
}

// NewAppStateProvider creates a new state provider
func NewAppStateProvider(drafts DraftReader, pool PoolReader, picks PickReader, clock clockwork.Clock) *AppStateProvider {
	return &AppStateProvider{
		drafts: drafts,
		pool:   pool,
		picks:  picks,
		clock:  clock,
	}
}

// GetDraftState retrieves the complete state of a draft
func (p *AppStateProvider) GetDraftState(ctx context.Context, draftID uuid.UUID) (*DraftState, error) {
	d, err := p.drafts.GetDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	participants, err := p.drafts.ListDraftParticipants(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	pool, err := p.pool.ListPool(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool: %w", err)
	}
	picks, err := p.picks.ListPicks(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	return NewDraftState(*d, participants, pool, picks, p.clock.Now().UTC()), nil
}

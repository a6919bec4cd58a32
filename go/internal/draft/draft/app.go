package draft

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/cubedraft/go/internal/draft/events"
	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// DraftRepository defines what the draft app layer needs from the draft repository
type DraftRepository interface {
	WithinDraft(ctx context.Context, draftID uuid.UUID, fn func(store DraftStore) error) error
	CreateDraft(ctx context.Context, id uuid.UUID, req CreateDraftRequest, createdAt time.Time) (*models.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListDraftsForParticipant(ctx context.Context, participantID uuid.UUID) ([]models.DraftSummary, error)
	ListDraftParticipants(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error)
}

// App handles the draft aggregate: creation, enrolment and turn order.
type App struct {
	repo  DraftRepository
	clock clockwork.Clock
	rng   Intner
	rules models.DraftRules
}

// NewApp creates a new draft App. rng drives turn order shuffles.
func NewApp(repo DraftRepository, clock clockwork.Clock, rng Intner, rules models.DraftRules) *App {
	if rng == nil {
		rng = DefaultIntner
	}
	return &App{
		repo:  repo,
		clock: clock,
		rng:   rng,
		rules: rules,
	}
}

// CreateDraft creates an empty draft.
func (a *App) CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("validation failed: %w", drafterr.InvalidArgument("draft name is required"))
	}

	d, err := a.repo.CreateDraft(ctx, uuid.New(), req, a.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	log.Info().
		Str("draft_id", d.ID.String()).
		Str("name", d.Name).
		Msg("created draft")
	return d, nil
}

// GetDraft retrieves a draft by ID
func (a *App) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	d, err := a.repo.GetDraft(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return d, nil
}

// ListDraftsForParticipant returns every draft the participant has joined.
func (a *App) ListDraftsForParticipant(ctx context.Context, participantID uuid.UUID) ([]models.DraftSummary, error) {
	drafts, err := a.repo.ListDraftsForParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts for participant: %w", err)
	}
	return drafts, nil
}

// ListDraftParticipants returns the draft's participants by turn order, then join time.
func (a *App) ListDraftParticipants(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error) {
	if _, err := a.repo.GetDraft(ctx, draftID); err != nil {
		return nil, fmt.Errorf("failed to list draft participants: %w", err)
	}
	dps, err := a.repo.ListDraftParticipants(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft participants: %w", err)
	}
	return dps, nil
}

// JoinDraft enrols a participant with an unassigned turn order.
func (a *App) JoinDraft(ctx context.Context, req JoinDraftRequest) (*models.DraftParticipant, error) {
	var joined *models.DraftParticipant
	err := a.repo.WithinDraft(ctx, req.DraftID, func(store DraftStore) error {
		dp, err := store.AddParticipant(ctx, models.DraftParticipant{
			ID:            uuid.New(),
			DraftID:       req.DraftID,
			ParticipantID: req.ParticipantID,
			TurnOrder:     models.UnassignedTurnOrder,
			JoinedAt:      a.clock.Now().UTC(),
		})
		if err != nil {
			return err
		}

		err = store.InsertEvent(ctx, req.DraftID, events.EventTypeParticipantJoined, events.ParticipantJoinedPayload{
			DraftID:            dp.DraftID.String(),
			DraftParticipantID: dp.ID.String(),
			ParticipantID:      dp.ParticipantID.String(),
			JoinedAt:           dp.JoinedAt,
		})
		if err != nil {
			return err
		}
		joined = dp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join draft: %w", err)
	}

	log.Info().
		Str("draft_id", joined.DraftID.String()).
		Str("participant_id", joined.ParticipantID.String()).
		Msg("participant joined draft")
	return joined, nil
}

// AssignTurnOrder shuffles the draft's participants and numbers them 1..N.
// Once a pick exists the order is locked unless the rules allow re-ordering.
func (a *App) AssignTurnOrder(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error) {
	var order []models.DraftParticipant
	err := a.repo.WithinDraft(ctx, draftID, func(store DraftStore) error {
		dps, err := store.ListParticipants(ctx, draftID)
		if err != nil {
			return err
		}
		if len(dps) == 0 {
			return drafterr.ErrEmptyDraft
		}

		if !a.rules.AllowReorderAfterPicks {
			picks, err := store.CountPicks(ctx, draftID)
			if err != nil {
				return err
			}
			if picks > 0 {
				return drafterr.ErrOrderLocked
			}
		}

		Shuffle(dps, a.rng)
		for i := range dps {
			dps[i].TurnOrder = i + 1
		}
		if err := store.AssignTurnOrders(ctx, draftID, dps); err != nil {
			return err
		}

		if err := store.InsertEvent(ctx, draftID, events.EventTypeTurnOrderAssigned, turnOrderPayload(draftID, dps, a.clock.Now().UTC())); err != nil {
			return err
		}
		order = dps
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign turn order: %w", err)
	}

	log.Info().
		Str("draft_id", draftID.String()).
		Int("participants", len(order)).
		Msg("assigned turn order")
	return order, nil
}

func turnOrderPayload(draftID uuid.UUID, dps []models.DraftParticipant, at time.Time) events.TurnOrderAssignedPayload {
	slots := make([]events.TurnSlot, len(dps))
	for i, dp := range dps {
		slots[i] = events.TurnSlot{
			DraftParticipantID: dp.ID.String(),
			ParticipantID:      dp.ParticipantID.String(),
			TurnOrder:          dp.TurnOrder,
		}
	}
	return events.TurnOrderAssignedPayload{
		DraftID:    draftID.String(),
		Order:      slots,
		AssignedAt: at,
	}
}

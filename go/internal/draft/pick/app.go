package pick

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/cubedraft/go/internal/draft/events"
	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// MakePickRequest claims one copy of a pool entry for a participant
type MakePickRequest struct {
	DraftID       uuid.UUID `json:"draft_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	PoolEntryID   uuid.UUID `json:"pool_entry_id"`
}

// PickRepository defines what the pick app layer needs from the pick repository
type PickRepository interface {
	WithinDraft(ctx context.Context, draftID uuid.UUID, fn func(store PickStore) error) error
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error)
}

// App handles the pick ledger
type App struct {
	repo  PickRepository
	clock clockwork.Clock
	rules models.DraftRules
}

// NewApp creates a new pick App
func NewApp(repo PickRepository, clock clockwork.Clock, rules models.DraftRules) *App {
	return &App{
		repo:  repo,
		clock: clock,
		rules: rules,
	}
}

// MakePick records a pick. Membership is checked before availability, and
// the pick number, insert and decrement happen under the draft lock so
// pick numbers stay gapless under concurrent callers.
func (a *App) MakePick(ctx context.Context, req MakePickRequest) (*models.Pick, error) {
	var made *models.Pick
	var remaining int
	err := a.repo.WithinDraft(ctx, req.DraftID, func(store PickStore) error {
		dp, err := store.GetDraftParticipant(ctx, req.DraftID, req.ParticipantID)
		if err != nil {
			return err
		}

		entry, err := store.GetPoolEntryForUpdate(ctx, req.DraftID, req.PoolEntryID)
		if err != nil {
			return err
		}
		if !entry.Available() {
			return drafterr.ErrPoolEntryUnavailable
		}

		count, err := store.CountPicks(ctx, req.DraftID)
		if err != nil {
			return err
		}

		if a.rules.EnforceTurnOrder {
			dps, err := store.ListParticipants(ctx, req.DraftID)
			if err != nil {
				return err
			}
			if err := checkTurn(dps, *dp, count); err != nil {
				return err
			}
		}

		p, err := store.CreatePick(ctx, models.Pick{
			ID:                 uuid.New(),
			DraftID:            req.DraftID,
			DraftParticipantID: dp.ID,
			PoolEntryID:        entry.ID,
			PickNumber:         count + 1,
			PickedAt:           a.clock.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if err := store.DecrementPoolEntry(ctx, entry.ID); err != nil {
			return err
		}

		remaining = entry.RemainingCount - 1
		if err := store.InsertEvent(ctx, req.DraftID, events.EventTypePickMade, events.PickMadePayload{
			PickID:             p.ID.String(),
			DraftID:            p.DraftID.String(),
			DraftParticipantID: dp.ID.String(),
			ParticipantID:      dp.ParticipantID.String(),
			PoolEntryID:        entry.ID.String(),
			CardID:             entry.CardID.String(),
			PickNumber:         p.PickNumber,
			RemainingCount:     remaining,
			MadeAt:             p.PickedAt,
		}); err != nil {
			return err
		}
		made = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make pick: %w", err)
	}

	log.Info().
		Str("draft_id", made.DraftID.String()).
		Str("participant_id", req.ParticipantID.String()).
		Str("pool_entry_id", made.PoolEntryID.String()).
		Int("pick_number", made.PickNumber).
		Int("remaining", remaining).
		Msg("pick made")
	return made, nil
}

// ListPicks returns the draft's picks ordered by pick number.
func (a *App) ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error) {
	if _, err := a.repo.GetDraft(ctx, draftID); err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	picks, err := a.repo.ListPicks(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	return picks, nil
}

// checkTurn allows dp to pick when its turn order is next in rotation
// after count picks: (count mod N) + 1.
func checkTurn(dps []models.DraftParticipant, dp models.DraftParticipant, count int) error {
	for _, other := range dps {
		if !other.HasTurnOrder() {
			return drafterr.ErrTurnOrderUnassigned
		}
	}
	if len(dps) == 0 || !dp.HasTurnOrder() {
		return drafterr.ErrTurnOrderUnassigned
	}
	if expected := count%len(dps) + 1; dp.TurnOrder != expected {
		return drafterr.ErrNotYourTurn
	}
	return nil
}

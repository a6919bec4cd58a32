package pool

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/cubedraft/go/internal/draft/events"
	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// SeedPoolRequest adds a catalog set to a draft's pool
type SeedPoolRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
	SetID   string    `json:"set_id"`
}

// PoolRepository defines what the pool app needs from storage
type PoolRepository interface {
	WithinDraft(ctx context.Context, draftID uuid.UUID, fn func(store PoolStore) error) error
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListPool(ctx context.Context, draftID uuid.UUID) ([]models.PoolCard, error)
}

// CardCatalog is the catalog lookup the pool depends on.
type CardCatalog interface {
	CountCardsBySet(ctx context.Context, setID string) (int, error)
}

// App manages draft pools.
type App struct {
	repo    PoolRepository
	catalog CardCatalog
	clock   clockwork.Clock
}

func NewApp(repo PoolRepository, catalog CardCatalog, clock clockwork.Clock) *App {
	return &App{
		repo:    repo,
		catalog: catalog,
		clock:   clock,
	}
}

// SeedPool puts one copy of every card in req.SetID into the draft's pool.
// Cards already pooled are skipped, so seeding is safe to repeat and can
// combine several sets. Returns the number of entries added.
func (a *App) SeedPool(ctx context.Context, req SeedPoolRequest) (int, error) {
	setID := strings.TrimSpace(req.SetID)
	if setID == "" {
		return 0, fmt.Errorf("validation failed: %w", drafterr.InvalidArgument("set id is required"))
	}

	available, err := a.catalog.CountCardsBySet(ctx, setID)
	if err != nil {
		return 0, fmt.Errorf("failed to seed pool: %w", err)
	}
	if available == 0 {
		return 0, fmt.Errorf("failed to seed pool from %s: %w", setID, drafterr.ErrSetNotFound)
	}

	var added int
	err = a.repo.WithinDraft(ctx, req.DraftID, func(store PoolStore) error {
		n, err := store.SeedPoolFromSet(ctx, req.DraftID, setID)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		size, err := store.CountPoolEntries(ctx, req.DraftID)
		if err != nil {
			return err
		}
		if err := store.InsertEvent(ctx, req.DraftID, events.EventTypePoolSeeded, events.PoolSeededPayload{
			DraftID:    req.DraftID.String(),
			SetID:      setID,
			AddedCards: n,
			PoolSize:   size,
			SeededAt:   a.clock.Now().UTC(),
		}); err != nil {
			return err
		}
		added = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed pool: %w", err)
	}

	log.Info().
		Str("draft_id", req.DraftID.String()).
		Str("set_id", setID).
		Int("added", added).
		Msg("seeded pool")
	return added, nil
}

// ListPool returns every pool entry of the draft, picked out or not.
func (a *App) ListPool(ctx context.Context, draftID uuid.UUID) ([]models.PoolCard, error) {
	if _, err := a.repo.GetDraft(ctx, draftID); err != nil {
		return nil, fmt.Errorf("failed to list pool: %w", err)
	}
	cards, err := a.repo.ListPool(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool: %w", err)
	}
	return cards, nil
}

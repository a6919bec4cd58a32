package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// CatalogRepository defines what the catalog app needs from storage
type CatalogRepository interface {
	CountCardsBySet(ctx context.Context, setID string) (int, error)
	ListCardIDsBySet(ctx context.Context, setID string) ([]uuid.UUID, error)
	ListCardsBySet(ctx context.Context, setID string) ([]models.Card, error)
	GetCard(ctx context.Context, id uuid.UUID) (*models.Card, error)
	ListSets(ctx context.Context) ([]models.CardSet, error)
}

// App serves read-only catalog lookups.
type App struct {
	repo CatalogRepository
}

func NewApp(repo CatalogRepository) *App {
	return &App{repo: repo}
}

// CountCardsBySet returns how many catalog cards belong to setID.
func (a *App) CountCardsBySet(ctx context.Context, setID string) (int, error) {
	setID, err := normalizeSetID(setID)
	if err != nil {
		return 0, err
	}
	return a.repo.CountCardsBySet(ctx, setID)
}

// LookupCardIDsBySet returns the ids of every card in setID.
func (a *App) LookupCardIDsBySet(ctx context.Context, setID string) ([]uuid.UUID, error) {
	setID, err := normalizeSetID(setID)
	if err != nil {
		return nil, err
	}
	return a.repo.ListCardIDsBySet(ctx, setID)
}

// ListCardsBySet returns the cards of a set with their image URIs.
// An unknown set is drafterr.ErrSetNotFound.
func (a *App) ListCardsBySet(ctx context.Context, setID string) ([]models.Card, error) {
	setID, err := normalizeSetID(setID)
	if err != nil {
		return nil, err
	}
	cards, err := a.repo.ListCardsBySet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("set %s: %w", setID, drafterr.ErrSetNotFound)
	}
	return cards, nil
}

func (a *App) GetCard(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	return a.repo.GetCard(ctx, id)
}

func (a *App) ListSets(ctx context.Context) ([]models.CardSet, error) {
	return a.repo.ListSets(ctx)
}

func normalizeSetID(setID string) (string, error) {
	setID = strings.TrimSpace(setID)
	if setID == "" {
		return "", drafterr.InvalidArgument("set id is required")
	}
	return setID, nil
}

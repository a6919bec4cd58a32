package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/catalog/db"
	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/sqlutil"
)

// ErrCardNotFound is returned when a card id is not in the catalog.
var ErrCardNotFound = &drafterr.Error{Kind: drafterr.KindNotFound, Message: "card not found"}

// Querier defines what the repository needs from the database layer
type Querier interface {
	CountCardsBySet(ctx context.Context, setID string) (int64, error)
	ListCardIDsBySet(ctx context.Context, setID string) ([]uuid.UUID, error)
	ListCardsBySet(ctx context.Context, setID string) ([]db.Card, error)
	GetCard(ctx context.Context, id uuid.UUID) (db.Card, error)
	ListSets(ctx context.Context) ([]db.ListSetsRow, error)
}

// Repository reads the card catalog. The core never writes to it.
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) CountCardsBySet(ctx context.Context, setID string) (int, error) {
	n, err := r.queries.CountCardsBySet(ctx, setID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards by set: %w", err)
	}
	return int(n), nil
}

func (r *Repository) ListCardIDsBySet(ctx context.Context, setID string) ([]uuid.UUID, error) {
	ids, err := r.queries.ListCardIDsBySet(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card ids by set: %w", err)
	}
	return ids, nil
}

func (r *Repository) ListCardsBySet(ctx context.Context, setID string) ([]models.Card, error) {
	rows, err := r.queries.ListCardsBySet(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards by set: %w", err)
	}
	cards := make([]models.Card, len(rows))
	for i, row := range rows {
		cards[i] = *dbCardToModel(row)
	}
	return cards, nil
}

func (r *Repository) GetCard(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	row, err := r.queries.GetCard(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return dbCardToModel(row), nil
}

func (r *Repository) ListSets(ctx context.Context) ([]models.CardSet, error) {
	rows, err := r.queries.ListSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	sets := make([]models.CardSet, len(rows))
	for i, row := range rows {
		sets[i] = models.CardSet{
			SetID:     row.SetID,
			SetCode:   row.SetCode,
			SetName:   row.SetName,
			CardCount: int(row.CardCount),
		}
	}
	return sets, nil
}

func dbCardToModel(c db.Card) *models.Card {
	card := &models.Card{
		ID:          c.ID,
		OracleID:    sqlutil.FromNullUUID(c.OracleID),
		Name:        c.Name,
		Layout:      models.CardLayout(c.Layout),
		SetID:       c.SetID,
		SetCode:     c.SetCode,
		SetName:     c.SetName,
		SetType:     c.SetType,
		ScryfallURI: c.ScryfallUri,
		Booster:     c.Booster,
		Front: models.ImageURIs{
			Small:      sqlutil.FromSqlStringPtr(c.ImageUriSmall),
			Normal:     sqlutil.FromSqlStringPtr(c.ImageUriNormal),
			Large:      sqlutil.FromSqlStringPtr(c.ImageUriLarge),
			PNG:        sqlutil.FromSqlStringPtr(c.ImageUriPng),
			ArtCrop:    sqlutil.FromSqlStringPtr(c.ImageUriArtCrop),
			BorderCrop: sqlutil.FromSqlStringPtr(c.ImageUriBorderCrop),
		},
	}
	if c.ColorIdentity.Valid {
		card.ColorIdentity = c.ColorIdentity.RawMessage
	}
	if card.Layout.IsDualFaced() {
		card.Back = &models.ImageURIs{
			Small:      sqlutil.FromSqlStringPtr(c.BackImageUriSmall),
			Normal:     sqlutil.FromSqlStringPtr(c.BackImageUriNormal),
			Large:      sqlutil.FromSqlStringPtr(c.BackImageUriLarge),
			PNG:        sqlutil.FromSqlStringPtr(c.BackImageUriPng),
			ArtCrop:    sqlutil.FromSqlStringPtr(c.BackImageUriArtCrop),
			BorderCrop: sqlutil.FromSqlStringPtr(c.BackImageUriBorderCrop),
		}
	}
	return card
}

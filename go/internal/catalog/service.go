package catalog

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/rpcjson"
)

const ServiceName = "cubedraft.catalog.v1.CatalogService"

type ListSetsRequest struct{}

type ListSetsResponse struct {
	Sets []models.CardSet `json:"sets"`
}

type ListCardsBySetRequest struct {
	SetID string `json:"set_id"`
}

type ListCardsBySetResponse struct {
	Cards []models.Card `json:"cards"`
}

type GetCardRequest struct {
	ID string `json:"id"`
}

type GetCardResponse struct {
	Card *models.Card `json:"card"`
}

// CatalogApp defines what the service layer needs from the catalog app
type CatalogApp interface {
	ListSets(ctx context.Context) ([]models.CardSet, error)
	ListCardsBySet(ctx context.Context, setID string) ([]models.Card, error)
	GetCard(ctx context.Context, id uuid.UUID) (*models.Card, error)
}

type Service struct {
	app CatalogApp
}

func NewService(app CatalogApp) *Service {
	return &Service{app: app}
}

func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	h := rpcjson.NewServiceHandler(ServiceName, opts...)
	rpcjson.Handle(h, "ListSets", s.ListSets)
	rpcjson.Handle(h, "ListCardsBySet", s.ListCardsBySet)
	rpcjson.Handle(h, "GetCard", s.GetCard)
	return h.Handler()
}

func (s *Service) ListSets(ctx context.Context, _ *connect.Request[ListSetsRequest]) (*connect.Response[ListSetsResponse], error) {
	sets, err := s.app.ListSets(ctx)
	if err != nil {
		return nil, rpcjson.Error("ListSets", err)
	}
	return connect.NewResponse(&ListSetsResponse{Sets: sets}), nil
}

func (s *Service) ListCardsBySet(ctx context.Context, req *connect.Request[ListCardsBySetRequest]) (*connect.Response[ListCardsBySetResponse], error) {
	cards, err := s.app.ListCardsBySet(ctx, req.Msg.SetID)
	if err != nil {
		return nil, rpcjson.Error("ListCardsBySet", err)
	}
	return connect.NewResponse(&ListCardsBySetResponse{Cards: cards}), nil
}

func (s *Service) GetCard(ctx context.Context, req *connect.Request[GetCardRequest]) (*connect.Response[GetCardResponse], error) {
	id, err := rpcjson.ParseUUID("id", req.Msg.ID)
	if err != nil {
		return nil, rpcjson.Error("GetCard", err)
	}
	card, err := s.app.GetCard(ctx, id)
	if err != nil {
		return nil, rpcjson.Error("GetCard", err)
	}
	return connect.NewResponse(&GetCardResponse{Card: card}), nil
}

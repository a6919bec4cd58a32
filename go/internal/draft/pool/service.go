package pool

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/rpcjson"
)

const ServiceName = "cubedraft.pool.v1.PoolService"

type SeedPoolMessage struct {
	DraftID string `json:"draft_id"`
	SetID   string `json:"set_id"`
}

type SeedPoolResponse struct {
	Added int `json:"added"`
}

type ListPoolRequest struct {
	DraftID string `json:"draft_id"`
}

type ListPoolResponse struct {
	Entries []models.PoolCard `json:"entries"`
}

// PoolApp defines what the service layer needs from the pool app
type PoolApp interface {
	SeedPool(ctx context.Context, req SeedPoolRequest) (int, error)
	ListPool(ctx context.Context, draftID uuid.UUID) ([]models.PoolCard, error)
}

type Service struct {
	app PoolApp
}

func NewService(app PoolApp) *Service {
	return &Service{app: app}
}

func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	h := rpcjson.NewServiceHandler(ServiceName, opts...)
	rpcjson.Handle(h, "SeedPool", s.SeedPool)
	rpcjson.Handle(h, "ListPool", s.ListPool)
	return h.Handler()
}

func (s *Service) SeedPool(ctx context.Context, req *connect.Request[SeedPoolMessage]) (*connect.Response[SeedPoolResponse], error) {
	draftID, err := rpcjson.ParseUUID("draft_id", req.Msg.DraftID)
	if err != nil {
		return nil, rpcjson.Error("SeedPool", err)
	}

	added, err := s.app.SeedPool(ctx, SeedPoolRequest{DraftID: draftID, SetID: req.Msg.SetID})
	if err != nil {
		return nil, rpcjson.Error("SeedPool", err)
	}
	return connect.NewResponse(&SeedPoolResponse{Added: added}), nil
}

func (s *Service) ListPool(ctx context.Context, req *connect.Request[ListPoolRequest]) (*connect.Response[ListPoolResponse], error) {
	draftID, err := rpcjson.ParseUUID("draft_id", req.Msg.DraftID)
	if err != nil {
		return nil, rpcjson.Error("ListPool", err)
	}

	entries, err := s.app.ListPool(ctx, draftID)
	if err != nil {
		return nil, rpcjson.Error("ListPool", err)
	}
	if entries == nil {
		entries = []models.PoolCard{}
	}
	return connect.NewResponse(&ListPoolResponse{Entries: entries}), nil
}

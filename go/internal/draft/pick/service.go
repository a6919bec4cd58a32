package pick

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/rpcjson"
)

// ServiceName is the fully qualified name PickService is served under.
const ServiceName = "cubedraft.pick.v1.PickService"

type MakePickMessage struct {
	DraftID       string `json:"draft_id"`
	ParticipantID string `json:"participant_id"`
	PoolEntryID   string `json:"pool_entry_id"`
}

type MakePickResponse struct {
	Pick *models.Pick `json:"pick"`
}

type ListPicksRequest struct {
	DraftID string `json:"draft_id"`
}

type ListPicksResponse struct {
	Picks []models.Pick `json:"picks"`
}

// PickApp defines what the service layer needs from the pick application
type PickApp interface {
	MakePick(ctx context.Context, req MakePickRequest) (*models.Pick, error)
	ListPicks(ctx context.Context, draftID uuid.UUID) ([]models.Pick, error)
}

// Service serves PickService
type Service struct {
	app PickApp
}

// NewService creates a new pick RPC service
func NewService(app PickApp) *Service {
	return &Service{
		app: app,
	}
}

func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	h := rpcjson.NewServiceHandler(ServiceName, opts...)
	rpcjson.Handle(h, "MakePick", s.MakePick)
	rpcjson.Handle(h, "ListPicks", s.ListPicks)
	return h.Handler()
}

// MakePick records a pick
func (s *Service) MakePick(ctx context.Context, req *connect.Request[MakePickMessage]) (*connect.Response[MakePickResponse], error) {
	draftID, err := rpcjson.ParseUUID("draft_id", req.Msg.DraftID)
	if err != nil {
		return nil, rpcjson.Error("MakePick", err)
	}
	participantID, err := rpcjson.ParseUUID("participant_id", req.Msg.ParticipantID)
	if err != nil {
		return nil, rpcjson.Error("MakePick", err)
	}
	poolEntryID, err := rpcjson.ParseUUID("pool_entry_id", req.Msg.PoolEntryID)
	if err != nil {
		return nil, rpcjson.Error("MakePick", err)
	}

	p, err := s.app.MakePick(ctx, MakePickRequest{
		DraftID:       draftID,
		ParticipantID: participantID,
		PoolEntryID:   poolEntryID,
	})
	if err != nil {
		return nil, rpcjson.Error("MakePick", err)
	}
	return connect.NewResponse(&MakePickResponse{Pick: p}), nil
}

// ListPicks returns a draft's picks in order
func (s *Service) ListPicks(ctx context.Context, req *connect.Request[ListPicksRequest]) (*connect.Response[ListPicksResponse], error) {
	draftID, err := rpcjson.ParseUUID("draft_id", req.Msg.DraftID)
	if err != nil {
		return nil, rpcjson.Error("ListPicks", err)
	}

	picks, err := s.app.ListPicks(ctx, draftID)
	if err != nil {
		return nil, rpcjson.Error("ListPicks", err)
	}
	if picks == nil {
		picks = []models.Pick{}
	}
	return connect.NewResponse(&ListPicksResponse{Picks: picks}), nil
}

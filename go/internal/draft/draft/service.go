package draft

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/rpcjson"
)

// ServiceName is the fully qualified name DraftService is served under.
const ServiceName = "cubedraft.draft.v1.DraftService"

type CreateDraftResponse struct {
	Draft *models.Draft `json:"draft"`
}

type GetDraftRequest struct {
	DraftID string `json:"draft_id"`
}

type GetDraftResponse struct {
	Draft *models.Draft `json:"draft"`
}

type ListDraftsForParticipantRequest struct {
	ParticipantID string `json:"participant_id"`
}

type ListDraftsForParticipantResponse struct {
	Drafts []models.DraftSummary `json:"drafts"`
}

type JoinDraftMessage struct {
	DraftID       string `json:"draft_id"`
	ParticipantID string `json:"participant_id"`
}

type JoinDraftResponse struct {
	DraftParticipant *models.DraftParticipant `json:"draft_participant"`
}

type ListDraftParticipantsRequest struct {
	DraftID string `json:"draft_id"`
}

type ListDraftParticipantsResponse struct {
	Participants []models.DraftParticipant `json:"participants"`
}

type AssignTurnOrderRequest struct {
	DraftID string `json:"draft_id"`
}

type AssignTurnOrderResponse struct {
	Order []models.DraftParticipant `json:"order"`
}

// DraftApp defines what the service layer needs from the draft application
type DraftApp interface {
	CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	ListDraftsForParticipant(ctx context.Context, participantID uuid.UUID) ([]models.DraftSummary, error)
	JoinDraft(ctx context.Context, req JoinDraftRequest) (*models.DraftParticipant, error)
	ListDraftParticipants(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error)
	AssignTurnOrder(ctx context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error)
}

// Service serves DraftService
type Service struct {
	app DraftApp
}

// NewService creates a new draft RPC service
func NewService(app DraftApp) *Service {
	return &Service{
		app: app,
	}
}

// Handler returns the mount path and handler for all DraftService procedures.
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	h := rpcjson.NewServiceHandler(ServiceName, opts...)
	rpcjson.Handle(h, "CreateDraft", s.CreateDraft)
	rpcjson.Handle(h, "GetDraft", s.GetDraft)
	rpcjson.Handle(h, "ListDraftsForParticipant", s.ListDraftsForParticipant)
	rpcjson.Handle(h, "JoinDraft", s.JoinDraft)
	rpcjson.Handle(h, "ListDraftParticipants", s.ListDraftParticipants)
	rpcjson.Handle(h, "AssignTurnOrder", s.AssignTurnOrder)
	return h.Handler()
}

// CreateDraft creates a new draft
func (s *Service) CreateDraft(ctx context.Context, req *connect.Request[CreateDraftRequest]) (*connect.Response[CreateDraftResponse], error) {
	d, err := s.app.CreateDraft(ctx, *req.Msg)
	if err != nil {
		return nil, rpcjson.Error("CreateDraft", err)
	}
	return connect.NewResponse(&CreateDraftResponse{Draft: d}), nil
}

// GetDraft retrieves a draft by ID
func (s *Service) GetDraft(ctx context.Context, req *connect.Request[GetDraftRequest]) (*connect.Response[GetDraftResponse], error) {
	id, err := rpcjson.ParseUUID("draft_id", req.Msg.DraftID)
	if err != nil {
		return nil, rpcjson.Error("GetDraft", err)
	}

	d, err := s.app.GetDraft(ctx, id)
	if err != nil {
		return nil, rpcjson.Error("GetDraft", err)
	}
	return connect.NewResponse(&GetDraftResponse{Draft: d}), nil
}

// ListDraftsForParticipant lists the drafts a participant has joined
func (s *Service) ListDraftsForParticipant(ctx context.Context, req *connect.Request[ListDraftsForParticipantRequest]) (*connect.Response[ListDraftsForParticipantResponse], error) {
	id, err := rpcjson.ParseUUID("participant_id", req.Msg.ParticipantID)
	if err != nil {
		return nil, rpcjson.Error("ListDraftsForParticipant", err)
	}

	drafts, err := s.app.ListDraftsForParticipant(ctx, id)
	if err != nil {
		return nil, rpcjson.Error("ListDraftsForParticipant", err)
	}
	if drafts == nil {
		drafts = []models.DraftSummary{}
	}
	return connect.NewResponse(&ListDraftsForParticipantResponse{Drafts: drafts}), nil
}

// JoinDraft enrols a participant in a draft
func (s *Service) JoinDraft(ctx context.Context, req *connect.Request[JoinDraftMessage]) (*connect.Response[JoinDraftResponse], error) {
	draftID, err := rpcjson.ParseUUID("draft_id", req.Msg.DraftID)
	if err != nil {
		return nil, rpcjson.Error("JoinDraft", err)
	}
	participantID, err := rpcjson.ParseUUID("participant_id", req.Msg.ParticipantID)
	if err != nil {
		return nil, rpcjson.Error("JoinDraft", err)
	}

	dp, err := s.app.JoinDraft(ctx, JoinDraftRequest{DraftID: draftID, ParticipantID: participantID})
	if err != nil {
		return nil, rpcjson.Error("JoinDraft", err)
	}
	return connect.NewResponse(&JoinDraftResponse{DraftParticipant: dp}), nil
}

// ListDraftParticipants lists a draft's participants
func (s *Service) ListDraftParticipants(ctx context.Context, req *connect.Request[ListDraftParticipantsRequest]) (*connect.Response[ListDraftParticipantsResponse], error) {
	draftID, err := rpcjson.ParseUUID("draft_id", req.Msg.DraftID)
	if err != nil {
		return nil, rpcjson.Error("ListDraftParticipants", err)
	}

	dps, err := s.app.ListDraftParticipants(ctx, draftID)
	if err != nil {
		return nil, rpcjson.Error("ListDraftParticipants", err)
	}
	if dps == nil {
		dps = []models.DraftParticipant{}
	}
	return connect.NewResponse(&ListDraftParticipantsResponse{Participants: dps}), nil
}

// AssignTurnOrder randomises the draft's turn order
func (s *Service) AssignTurnOrder(ctx context.Context, req *connect.Request[AssignTurnOrderRequest]) (*connect.Response[AssignTurnOrderResponse], error) {
	draftID, err := rpcjson.ParseUUID("draft_id", req.Msg.DraftID)
	if err != nil {
		return nil, rpcjson.Error("AssignTurnOrder", err)
	}

	order, err := s.app.AssignTurnOrder(ctx, draftID)
	if err != nil {
		return nil, rpcjson.Error("AssignTurnOrder", err)
	}
	return connect.NewResponse(&AssignTurnOrderResponse{Order: order}), nil
}

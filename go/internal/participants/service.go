package participants

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/rpcjson"
)

// ParticipantsApp defines what the service layer needs from the participants application
type ParticipantsApp interface {
	RegisterParticipant(ctx context.Context, req RegisterParticipantRequest) (*models.Participant, error)
	LookupParticipant(ctx context.Context, displayName string) (*models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
}

// Service serves ParticipantService
type Service struct {
	app ParticipantsApp
}

// NewService creates a new participants RPC service
func NewService(app ParticipantsApp) *Service {
	return &Service{
		app: app,
	}
}

// Handler returns the mount path and handler for all ParticipantService procedures.
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	h := rpcjson.NewServiceHandler(ServiceName, opts...)
	rpcjson.Handle(h, "RegisterParticipant", s.RegisterParticipant)
	rpcjson.Handle(h, "GetParticipantByName", s.GetParticipantByName)
	rpcjson.Handle(h, "GetParticipant", s.GetParticipant)
	return h.Handler()
}

// RegisterParticipant registers a new participant
func (s *Service) RegisterParticipant(ctx context.Context, req *connect.Request[RegisterParticipantRequest]) (*connect.Response[ParticipantResponse], error) {
	p, err := s.app.RegisterParticipant(ctx, *req.Msg)
	if err != nil {
		return nil, rpcjson.Error("RegisterParticipant", err)
	}
	return connect.NewResponse(&ParticipantResponse{Participant: p}), nil
}

// GetParticipantByName looks a participant up by display name
func (s *Service) GetParticipantByName(ctx context.Context, req *connect.Request[GetParticipantByNameRequest]) (*connect.Response[ParticipantResponse], error) {
	p, err := s.app.LookupParticipant(ctx, req.Msg.DisplayName)
	if err != nil {
		return nil, rpcjson.Error("GetParticipantByName", err)
	}
	return connect.NewResponse(&ParticipantResponse{Participant: p}), nil
}

// GetParticipant retrieves a participant by ID
func (s *Service) GetParticipant(ctx context.Context, req *connect.Request[GetParticipantRequest]) (*connect.Response[ParticipantResponse], error) {
	id, err := rpcjson.ParseUUID("id", req.Msg.ID)
	if err != nil {
		return nil, rpcjson.Error("GetParticipant", err)
	}

	p, err := s.app.GetParticipant(ctx, id)
	if err != nil {
		return nil, rpcjson.Error("GetParticipant", err)
	}
	return connect.NewResponse(&ParticipantResponse{Participant: p}), nil
}

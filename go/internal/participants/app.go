package participants

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// ParticipantsRepository defines what the app layer needs from the repository
type ParticipantsRepository interface {
	CreateParticipant(ctx context.Context, id uuid.UUID, req RegisterParticipantRequest, createdAt time.Time) (*models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	GetParticipantByName(ctx context.Context, displayName string) (*models.Participant, error)
}

// App handles participant registry logic
type App struct {
	repo  ParticipantsRepository
	clock clockwork.Clock
}

// NewApp creates a new participants App
func NewApp(repo ParticipantsRepository, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		clock: clock,
	}
}

// RegisterParticipant creates a participant. The external identity must be unique.
func (a *App) RegisterParticipant(ctx context.Context, req RegisterParticipantRequest) (*models.Participant, error) {
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.ExternalIdentity = strings.TrimSpace(req.ExternalIdentity)
	if err := validateRegisterRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	p, err := a.repo.CreateParticipant(ctx, uuid.New(), req, a.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to register participant: %w", err)
	}

	log.Info().
		Str("participant_id", p.ID.String()).
		Str("display_name", p.DisplayName).
		Msg("registered participant")
	return p, nil
}

// LookupParticipant finds a participant by display name.
func (a *App) LookupParticipant(ctx context.Context, displayName string) (*models.Participant, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, drafterr.InvalidArgument("display name is required")
	}
	p, err := a.repo.GetParticipantByName(ctx, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up participant: %w", err)
	}
	return p, nil
}

// GetParticipant retrieves a participant by ID
func (a *App) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	p, err := a.repo.GetParticipant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

func validateRegisterRequest(req RegisterParticipantRequest) error {
	if req.DisplayName == "" {
		return drafterr.InvalidArgument("display name is required")
	}
	if req.ExternalIdentity == "" {
		return drafterr.InvalidArgument("external identity is required")
	}
	return nil
}

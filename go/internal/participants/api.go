package participants

import "github.com/mcdev12/cubedraft/go/internal/models"

// ServiceName is the fully qualified name ParticipantService is served under.
const ServiceName = "cubedraft.participant.v1.ParticipantService"

type ParticipantResponse struct {
	Participant *models.Participant `json:"participant"`
}

type GetParticipantByNameRequest struct {
	DisplayName string `json:"display_name"`
}

type GetParticipantRequest struct {
	ID string `json:"id"`
}

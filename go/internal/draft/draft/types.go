package draft

import (
	"github.com/google/uuid"
)

// CreateDraftRequest represents a request to create a new draft
type CreateDraftRequest struct {
	Name string `json:"name"`
}

// JoinDraftRequest enrolls a participant in a draft
type JoinDraftRequest struct {
	DraftID       uuid.UUID `json:"draft_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
}

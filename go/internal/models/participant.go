package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant represents a registered person who can join drafts
type Participant struct {
	ID               uuid.UUID `json:"id"`
	DisplayName      string    `json:"display_name"`
	ExternalIdentity string    `json:"external_identity"` // e.g. a Discord id, unique
	CreatedAt        time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// UnassignedTurnOrder is the turn order of a participant before the draft is ordered.
const UnassignedTurnOrder = 0

// Draft represents one draft session.
type Draft struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DraftSummary is the projection returned when listing a participant's drafts.
type DraftSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DraftParticipant enrolls a participant in a draft.
type DraftParticipant struct {
	ID            uuid.UUID `json:"id"`
	DraftID       uuid.UUID `json:"draft_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	TurnOrder     int       `json:"turn_order"` // 0 until assigned, then 1..N
	JoinedAt      time.Time `json:"joined_at"`
}

// HasTurnOrder reports whether the turn order has been assigned.
func (dp DraftParticipant) HasTurnOrder() bool {
	return dp.TurnOrder != UnassignedTurnOrder
}

// DraftRules toggles optional draft behaviour. The zero value allows any
// joined participant to pick at any time and locks the turn order once
// the first pick is made.
type DraftRules struct {
	EnforceTurnOrder       bool `yaml:"enforce_turn_order"`
	AllowReorderAfterPicks bool `yaml:"allow_reorder_after_picks"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick is an immutable claim of one pool entry by one draft participant.
type Pick struct {
	ID                 uuid.UUID `json:"id"`
	DraftID            uuid.UUID `json:"draft_id"`
	DraftParticipantID uuid.UUID `json:"draft_participant_id"`
	PoolEntryID        uuid.UUID `json:"pool_entry_id"`
	PickNumber         int       `json:"pick_number"` // draft-wide, gapless, starting at 1
	PickedAt           time.Time `json:"picked_at"`
}

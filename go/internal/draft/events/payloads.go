package events

import (
	"time"
)

// Event types written to the draft outbox and published as
// draft.events.<type>.
const (
	EventTypeParticipantJoined = "ParticipantJoined"
	EventTypeTurnOrderAssigned = "TurnOrderAssigned"
	EventTypePoolSeeded        = "PoolSeeded"
	EventTypePickMade          = "PickMade"
)

// Event payload types that are shared between draft and gateway packages

// ParticipantJoinedPayload is the payload for a ParticipantJoined event
type ParticipantJoinedPayload struct {
	DraftID            string    `json:"draft_id"`
	DraftParticipantID string    `json:"draft_participant_id"`
	ParticipantID      string    `json:"participant_id"`
	JoinedAt           time.Time `json:"joined_at"`
}

// TurnSlot is one participant's position in the turn order.
type TurnSlot struct {
	DraftParticipantID string `json:"draft_participant_id"`
	ParticipantID      string `json:"participant_id"`
	TurnOrder          int    `json:"turn_order"`
}

// TurnOrderAssignedPayload is the payload for a TurnOrderAssigned event
type TurnOrderAssignedPayload struct {
	DraftID    string     `json:"draft_id"`
	Order      []TurnSlot `json:"order"`
	AssignedAt time.Time  `json:"assigned_at"`
}

// PoolSeededPayload is the payload for a PoolSeeded event
type PoolSeededPayload struct {
	DraftID    string    `json:"draft_id"`
	SetID      string    `json:"set_id"`
	AddedCards int       `json:"added_cards"`
	PoolSize   int       `json:"pool_size"`
	SeededAt   time.Time `json:"seeded_at"`
}

// PickMadePayload is the payload for a PickMade event
type PickMadePayload struct {
	PickID             string    `json:"pick_id"`
	DraftID            string    `json:"draft_id"`
	DraftParticipantID string    `json:"draft_participant_id"`
	ParticipantID      string    `json:"participant_id"`
	PoolEntryID        string    `json:"pool_entry_id"`
	CardID             string    `json:"card_id"`
	PickNumber         int       `json:"pick_number"`
	RemainingCount     int       `json:"remaining_count"`
	MadeAt             time.Time `json:"made_at"`
}

package models

import (
	"github.com/google/uuid"
)

// PoolEntry is how many copies of a catalog card remain claimable in a draft.
type PoolEntry struct {
	ID             uuid.UUID `json:"id"`
	DraftID        uuid.UUID `json:"draft_id"`
	CardID         uuid.UUID `json:"card_id"`
	RemainingCount int       `json:"remaining_count"`
}

// Available reports whether the entry can still be picked.
func (p PoolEntry) Available() bool {
	return p.RemainingCount > 0
}

// PoolCard is a pool entry joined with the catalog fields needed to render it.
type PoolCard struct {
	PoolEntry
	CardName       string  `json:"card_name"`
	SetCode        string  `json:"set_code"`
	ImageURINormal *string `json:"image_uri_normal,omitempty"`
}

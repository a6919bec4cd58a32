package gateway

import (
	"time"

	"github.com/mcdev12/cubedraft/go/internal/models"
)

// DraftState is the snapshot a client receives on connect and from the
// state endpoint. Live events are applied on top of it client side.
type DraftState struct {
	Draft          models.Draft              `json:"draft"`
	Participants   []models.DraftParticipant `json:"participants"`
	Pool           []models.PoolCard         `json:"pool"`
	Picks          []models.Pick             `json:"picks"`
	NextPickNumber int                       `json:"next_pick_number"`
	RemainingCards int                       `json:"remaining_cards"`
	OnTheClock     *models.DraftParticipant  `json:"on_the_clock,omitempty"`
	GeneratedAt    time.Time                 `json:"generated_at"`
}

// NewDraftState derives the summary fields from the stored rows.
func NewDraftState(d models.Draft, participants []models.DraftParticipant, pool []models.PoolCard, picks []models.Pick, at time.Time) *DraftState {
	s := &DraftState{
		Draft:          d,
		Participants:   nonNil(participants),
		Pool:           nonNil(pool),
		Picks:          nonNil(picks),
		NextPickNumber: len(picks) + 1,
		GeneratedAt:    at,
	}
	for _, pc := range pool {
		s.RemainingCards += pc.RemainingCount
	}
	s.OnTheClock = onTheClock(participants, len(picks))
	return s
}

// onTheClock returns whose turn it is in rotation after picks picks, or
// nil while the turn order is unassigned.
func onTheClock(participants []models.DraftParticipant, picks int) *models.DraftParticipant {
	if len(participants) == 0 {
		return nil
	}
	next := picks%len(participants) + 1
	var found *models.DraftParticipant
	for i := range participants {
		if !participants[i].HasTurnOrder() {
			return nil
		}
		if participants[i].TurnOrder == next {
			found = &participants[i]
		}
	}
	return found
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

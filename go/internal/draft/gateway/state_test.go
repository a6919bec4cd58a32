package gateway

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/models"
)

func seats(orders ...int) []models.DraftParticipant {
	out := make([]models.DraftParticipant, len(orders))
	for i, o := range orders {
		out[i] = models.DraftParticipant{ID: uuid.New(), ParticipantID: uuid.New(), TurnOrder: o}
	}
	return out
}

func TestNewDraftState(t *testing.T) {
	d := models.Draft{ID: uuid.New(), Name: "Friday Draft"}
	pool := []models.PoolCard{
		{PoolEntry: models.PoolEntry{ID: uuid.New(), RemainingCount: 1}},
		{PoolEntry: models.PoolEntry{ID: uuid.New(), RemainingCount: 0}},
		{PoolEntry: models.PoolEntry{ID: uuid.New(), RemainingCount: 1}},
	}
	picks := []models.Pick{{ID: uuid.New(), PickNumber: 1}}
	participants := seats(2, 1, 3)

	s := NewDraftState(d, participants, pool, picks, time.Unix(0, 0))
	assert.Equal(t, 2, s.NextPickNumber)
	assert.Equal(t, 2, s.RemainingCards)
	require.NotNil(t, s.OnTheClock)
	assert.Equal(t, participants[0].ID, s.OnTheClock.ID)
}

func TestNewDraftState_Empty(t *testing.T) {
	s := NewDraftState(models.Draft{}, nil, nil, nil, time.Unix(0, 0))
	assert.NotNil(t, s.Participants)
	assert.NotNil(t, s.Pool)
	assert.NotNil(t, s.Picks)
	assert.Equal(t, 1, s.NextPickNumber)
	assert.Nil(t, s.OnTheClock)
}

func TestOnTheClock(t *testing.T) {
	ps := seats(1, 2, 3)
	assert.Equal(t, ps[0].ID, onTheClock(ps, 0).ID)
	assert.Equal(t, ps[2].ID, onTheClock(ps, 2).ID)
	assert.Equal(t, ps[0].ID, onTheClock(ps, 3).ID)

	assert.Nil(t, onTheClock(seats(1, 0), 0))
	assert.Nil(t, onTheClock(nil, 0))
}

package draft

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/draft/drafttest"
	"github.com/mcdev12/cubedraft/go/internal/draft/events"
	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// memoryRepo adapts drafttest.Memory to DraftRepository.
type memoryRepo struct {
	*drafttest.Memory
}

func (r memoryRepo) WithinDraft(ctx context.Context, draftID uuid.UUID, fn func(store DraftStore) error) error {
	return r.Memory.WithinDraft(ctx, draftID, func(tx *drafttest.Tx) error { return fn(tx) })
}

func (r memoryRepo) CreateDraft(_ context.Context, id uuid.UUID, req CreateDraftRequest, createdAt time.Time) (*models.Draft, error) {
	d := models.Draft{ID: id, Name: req.Name, CreatedAt: createdAt}
	r.InsertDraft(d)
	return &d, nil
}

var testNow = time.Date(2025, 6, 6, 19, 0, 0, 0, time.UTC)

func newTestApp(rules models.DraftRules) (*App, *drafttest.Memory, *clockwork.FakeClock) {
	mem := drafttest.NewMemory()
	clock := clockwork.NewFakeClockAt(testNow)
	return NewApp(memoryRepo{mem}, clock, rand.New(rand.NewSource(1)), rules), mem, clock
}

func TestApp_CreateDraft(t *testing.T) {
	app, mem, clock := newTestApp(models.DraftRules{})
	ctx := context.Background()

	d, err := app.CreateDraft(ctx, CreateDraftRequest{Name: "  Friday Draft "})
	require.NoError(t, err)
	assert.Equal(t, "Friday Draft", d.Name)
	assert.Equal(t, clock.Now(), d.CreatedAt)
	assert.NotEqual(t, uuid.Nil, d.ID)

	got, err := mem.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = app.CreateDraft(ctx, CreateDraftRequest{Name: " "})
	assert.Equal(t, drafterr.KindInvalidArgument, drafterr.KindOf(err))
}

func TestApp_JoinDraft(t *testing.T) {
	app, mem, clock := newTestApp(models.DraftRules{})
	ctx := context.Background()
	d := mem.AddDraft("Friday Draft")
	alice := mem.AddParticipant()

	dp, err := app.JoinDraft(ctx, JoinDraftRequest{DraftID: d.ID, ParticipantID: alice})
	require.NoError(t, err)
	assert.Equal(t, models.UnassignedTurnOrder, dp.TurnOrder)
	assert.False(t, dp.HasTurnOrder())
	assert.Equal(t, clock.Now(), dp.JoinedAt)

	evs := mem.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.EventTypeParticipantJoined, evs[0].Type)
	payload := evs[0].Payload.(events.ParticipantJoinedPayload)
	assert.Equal(t, alice.String(), payload.ParticipantID)
	assert.Equal(t, dp.ID.String(), payload.DraftParticipantID)

	drafts, err := app.ListDraftsForParticipant(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []models.DraftSummary{{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt}}, drafts)
}

func TestApp_JoinDraft_Errors(t *testing.T) {
	app, mem, _ := newTestApp(models.DraftRules{})
	ctx := context.Background()
	d := mem.AddDraft("Friday Draft")
	alice := mem.AddParticipant()

	_, err := app.JoinDraft(ctx, JoinDraftRequest{DraftID: d.ID, ParticipantID: alice})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  JoinDraftRequest
		want error
	}{
		{name: "already joined", req: JoinDraftRequest{DraftID: d.ID, ParticipantID: alice}, want: drafterr.ErrAlreadyJoined},
		{name: "unknown draft", req: JoinDraftRequest{DraftID: uuid.New(), ParticipantID: alice}, want: drafterr.ErrDraftNotFound},
		{name: "unknown participant", req: JoinDraftRequest{DraftID: d.ID, ParticipantID: uuid.New()}, want: drafterr.ErrParticipantNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.JoinDraft(ctx, tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}

	// only the first join produced an event
	assert.Len(t, mem.Events(), 1)
}

func TestApp_AssignTurnOrder(t *testing.T) {
	app, mem, _ := newTestApp(models.DraftRules{})
	ctx := context.Background()
	d := mem.AddDraft("Friday Draft")
	for i := 0; i < 5; i++ {
		_, err := app.JoinDraft(ctx, JoinDraftRequest{DraftID: d.ID, ParticipantID: mem.AddParticipant()})
		require.NoError(t, err)
	}

	order, err := app.AssignTurnOrder(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, order, 5)
	for i, dp := range order {
		assert.Equal(t, i+1, dp.TurnOrder)
	}

	stored, err := app.ListDraftParticipants(ctx, d.ID)
	require.NoError(t, err)
	turns := make([]int, len(stored))
	for i, dp := range stored {
		turns[i] = dp.TurnOrder
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, turns)

	evs := mem.Events()
	last := evs[len(evs)-1]
	assert.Equal(t, events.EventTypeTurnOrderAssigned, last.Type)
	assert.Len(t, last.Payload.(events.TurnOrderAssignedPayload).Order, 5)

	// re-running before any pick yields a fresh permutation of the same set
	again, err := app.AssignTurnOrder(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, again, 5)
}

func TestApp_AssignTurnOrder_Seeded(t *testing.T) {
	// run returns join indices in turn order
	run := func() []int {
		mem := drafttest.NewMemory()
		clock := clockwork.NewFakeClockAt(testNow)
		app := NewApp(memoryRepo{mem}, clock, rand.New(rand.NewSource(2025)), models.DraftRules{})
		d := mem.AddDraft("seeded")
		joinIndex := map[uuid.UUID]int{}
		for i := 0; i < 4; i++ {
			p := mem.AddParticipant()
			joinIndex[p] = i
			_, err := app.JoinDraft(context.Background(), JoinDraftRequest{DraftID: d.ID, ParticipantID: p})
			require.NoError(t, err)
			clock.Advance(time.Second)
		}
		order, err := app.AssignTurnOrder(context.Background(), d.ID)
		require.NoError(t, err)
		out := make([]int, len(order))
		for i, dp := range order {
			out[i] = joinIndex[dp.ParticipantID]
		}
		return out
	}
	first := run()
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, first)
	assert.Equal(t, first, run())
}

func TestApp_AssignTurnOrder_EmptyDraft(t *testing.T) {
	app, mem, _ := newTestApp(models.DraftRules{})
	d := mem.AddDraft("empty")

	_, err := app.AssignTurnOrder(context.Background(), d.ID)
	require.ErrorIs(t, err, drafterr.ErrEmptyDraft)
	assert.Equal(t, drafterr.KindInvalidState, drafterr.KindOf(err))
	assert.Empty(t, mem.Events())

	_, err = app.AssignTurnOrder(context.Background(), uuid.New())
	require.ErrorIs(t, err, drafterr.ErrDraftNotFound)
}

func TestApp_AssignTurnOrder_RollsBack(t *testing.T) {
	app, mem, _ := newTestApp(models.DraftRules{})
	ctx := context.Background()
	d := mem.AddDraft("Friday Draft")
	for i := 0; i < 3; i++ {
		_, err := app.JoinDraft(ctx, JoinDraftRequest{DraftID: d.ID, ParticipantID: mem.AddParticipant()})
		require.NoError(t, err)
	}

	mem.FailOn("InsertEvent", errors.New("outbox down"))
	_, err := app.AssignTurnOrder(ctx, d.ID)
	require.Error(t, err)

	dps, err := app.ListDraftParticipants(ctx, d.ID)
	require.NoError(t, err)
	for _, dp := range dps {
		assert.Equal(t, models.UnassignedTurnOrder, dp.TurnOrder)
	}
}

func addPick(t *testing.T, mem *drafttest.Memory, draftID uuid.UUID) {
	t.Helper()
	err := mem.WithinDraft(context.Background(), draftID, func(tx *drafttest.Tx) error {
		dps, err := tx.ListParticipants(context.Background(), draftID)
		if err != nil {
			return err
		}
		_, err = tx.CreatePick(context.Background(), models.Pick{
			ID: uuid.New(), DraftID: draftID, DraftParticipantID: dps[0].ID, PoolEntryID: uuid.New(), PickNumber: 1,
		})
		return err
	})
	require.NoError(t, err)
}

func TestApp_AssignTurnOrder_LockedAfterFirstPick(t *testing.T) {
	ctx := context.Background()

	for _, allow := range []bool{false, true} {
		app, mem, _ := newTestApp(models.DraftRules{AllowReorderAfterPicks: allow})
		d := mem.AddDraft("Friday Draft")
		for i := 0; i < 2; i++ {
			_, err := app.JoinDraft(ctx, JoinDraftRequest{DraftID: d.ID, ParticipantID: mem.AddParticipant()})
			require.NoError(t, err)
		}
		_, err := app.AssignTurnOrder(ctx, d.ID)
		require.NoError(t, err)
		addPick(t, mem, d.ID)

		_, err = app.AssignTurnOrder(ctx, d.ID)
		if allow {
			require.NoError(t, err)
		} else {
			require.ErrorIs(t, err, drafterr.ErrOrderLocked)
		}
	}
}

func TestApp_ListDraftParticipants_UnknownDraft(t *testing.T) {
	app, _, _ := newTestApp(models.DraftRules{})
	_, err := app.ListDraftParticipants(context.Background(), uuid.New())
	require.ErrorIs(t, err, drafterr.ErrDraftNotFound)
}

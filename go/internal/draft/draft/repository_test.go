package draft

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/draft/repository"
	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
	participantsdb "github.com/mcdev12/cubedraft/go/internal/participants/db"
	"github.com/mcdev12/cubedraft/go/internal/testdb"
)

func registerParticipant(t *testing.T, q *participantsdb.Queries, name string) uuid.UUID {
	t.Helper()
	p, err := q.CreateParticipant(context.Background(), participantsdb.CreateParticipantParams{
		ID:               uuid.New(),
		DisplayName:      name,
		ExternalIdentity: "test:" + name,
		CreatedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)
	return p.ID
}

func TestApp_Postgres(t *testing.T) {
	tdb := testdb.New(t)
	ctx := context.Background()
	pq := participantsdb.New(tdb.DB)
	app := NewApp(NewRepository(repository.NewRepository(tdb.DB)), clockwork.NewRealClock(), nil, models.DraftRules{})

	d, err := app.CreateDraft(ctx, CreateDraftRequest{Name: "Friday Draft"})
	require.NoError(t, err)

	_, err = app.AssignTurnOrder(ctx, d.ID)
	require.ErrorIs(t, err, drafterr.ErrEmptyDraft)

	var ids []uuid.UUID
	for _, name := range []string{"A", "B", "C"} {
		id := registerParticipant(t, pq, name)
		ids = append(ids, id)
		dp, err := app.JoinDraft(ctx, JoinDraftRequest{DraftID: d.ID, ParticipantID: id})
		require.NoError(t, err)
		assert.Equal(t, 0, dp.TurnOrder)
	}

	_, err = app.JoinDraft(ctx, JoinDraftRequest{DraftID: d.ID, ParticipantID: ids[0]})
	require.ErrorIs(t, err, drafterr.ErrAlreadyJoined)
	_, err = app.JoinDraft(ctx, JoinDraftRequest{DraftID: d.ID, ParticipantID: uuid.New()})
	require.ErrorIs(t, err, drafterr.ErrParticipantNotFound)
	_, err = app.JoinDraft(ctx, JoinDraftRequest{DraftID: uuid.New(), ParticipantID: ids[0]})
	require.ErrorIs(t, err, drafterr.ErrDraftNotFound)

	// concurrent re-orders serialize on the draft lock
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := app.AssignTurnOrder(ctx, d.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	dps, err := app.ListDraftParticipants(ctx, d.ID)
	require.NoError(t, err)
	turns := make([]int, len(dps))
	for i, dp := range dps {
		turns[i] = dp.TurnOrder
	}
	assert.Equal(t, []int{1, 2, 3}, turns)

	drafts, err := app.ListDraftsForParticipant(ctx, ids[1])
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, d.ID, drafts[0].ID)

	var outboxRows int
	require.NoError(t, tdb.DB.QueryRowContext(ctx, `SELECT count(*) FROM draft_outbox WHERE draft_id = $1`, d.ID).Scan(&outboxRows))
	assert.Equal(t, 3+8, outboxRows)
}

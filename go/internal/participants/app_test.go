package participants

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/drafterr"
)

func newTestApp() (*App, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC))
	return NewApp(NewFakeRepository(), clock), clock
}

func TestApp_RegisterParticipant(t *testing.T) {
	app, clock := newTestApp()
	ctx := context.Background()

	p, err := app.RegisterParticipant(ctx, RegisterParticipantRequest{DisplayName: " alice ", ExternalIdentity: "discord:1001"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "alice", p.DisplayName)
	assert.Equal(t, "discord:1001", p.ExternalIdentity)
	assert.Equal(t, clock.Now(), p.CreatedAt)

	found, err := app.LookupParticipant(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	byID, err := app.GetParticipant(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, byID)
}

func TestApp_RegisterParticipant_Duplicate(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	_, err := app.RegisterParticipant(ctx, RegisterParticipantRequest{DisplayName: "alice", ExternalIdentity: "discord:1001"})
	require.NoError(t, err)

	_, err = app.RegisterParticipant(ctx, RegisterParticipantRequest{DisplayName: "alice again", ExternalIdentity: "discord:1001"})
	require.ErrorIs(t, err, drafterr.ErrDuplicateParticipant)
	assert.Equal(t, drafterr.KindConflict, drafterr.KindOf(err))

	// same display name, different identity is fine
	_, err = app.RegisterParticipant(ctx, RegisterParticipantRequest{DisplayName: "alice", ExternalIdentity: "discord:1002"})
	require.NoError(t, err)
}

func TestApp_RegisterParticipant_Validation(t *testing.T) {
	app, _ := newTestApp()

	tests := []struct {
		name string
		req  RegisterParticipantRequest
		want string
	}{
		{name: "missing name", req: RegisterParticipantRequest{ExternalIdentity: "x"}, want: "display name is required"},
		{name: "blank name", req: RegisterParticipantRequest{DisplayName: "   ", ExternalIdentity: "x"}, want: "display name is required"},
		{name: "missing identity", req: RegisterParticipantRequest{DisplayName: "bob"}, want: "external identity is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.RegisterParticipant(context.Background(), tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, drafterr.KindInvalidArgument, drafterr.KindOf(err))
		})
	}
}

func TestApp_LookupParticipant_NotFound(t *testing.T) {
	app, _ := newTestApp()

	_, err := app.LookupParticipant(context.Background(), "nobody")
	require.ErrorIs(t, err, drafterr.ErrParticipantNotFound)

	_, err = app.LookupParticipant(context.Background(), "")
	assert.Equal(t, drafterr.KindInvalidArgument, drafterr.KindOf(err))

	_, err = app.GetParticipant(context.Background(), uuid.New())
	require.ErrorIs(t, err, drafterr.ErrParticipantNotFound)
}

func TestApp_LookupParticipant_EarliestWins(t *testing.T) {
	app, clock := newTestApp()
	ctx := context.Background()

	first, err := app.RegisterParticipant(ctx, RegisterParticipantRequest{DisplayName: "sam", ExternalIdentity: "a"})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = app.RegisterParticipant(ctx, RegisterParticipantRequest{DisplayName: "sam", ExternalIdentity: "b"})
	require.NoError(t, err)

	found, err := app.LookupParticipant(ctx, "sam")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

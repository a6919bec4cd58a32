package participants

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/rpcjson"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := NewService(NewApp(NewFakeRepository(), clockwork.NewFakeClock()))
	mux := http.NewServeMux()
	mux.Handle(svc.Handler())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func procedure(method string) string {
	return "/" + ServiceName + "/" + method
}

func TestService_RegisterAndLookup(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	register := rpcjson.NewClient[RegisterParticipantRequest, ParticipantResponse](srv.Client(), srv.URL, procedure("RegisterParticipant"))
	byName := rpcjson.NewClient[GetParticipantByNameRequest, ParticipantResponse](srv.Client(), srv.URL, procedure("GetParticipantByName"))
	byID := rpcjson.NewClient[GetParticipantRequest, ParticipantResponse](srv.Client(), srv.URL, procedure("GetParticipant"))

	res, err := register.CallUnary(ctx, connect.NewRequest(&RegisterParticipantRequest{DisplayName: "alice", ExternalIdentity: "discord:1"}))
	require.NoError(t, err)
	alice := res.Msg.Participant
	require.NotNil(t, alice)

	found, err := byName.CallUnary(ctx, connect.NewRequest(&GetParticipantByNameRequest{DisplayName: "alice"}))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.Msg.Participant.ID)

	got, err := byID.CallUnary(ctx, connect.NewRequest(&GetParticipantRequest{ID: alice.ID.String()}))
	require.NoError(t, err)
	assert.Equal(t, "discord:1", got.Msg.Participant.ExternalIdentity)

	_, err = register.CallUnary(ctx, connect.NewRequest(&RegisterParticipantRequest{DisplayName: "alice", ExternalIdentity: "discord:1"}))
	assert.Equal(t, connect.CodeAlreadyExists, connect.CodeOf(err))

	_, err = byName.CallUnary(ctx, connect.NewRequest(&GetParticipantByNameRequest{DisplayName: "bob"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = byID.CallUnary(ctx, connect.NewRequest(&GetParticipantRequest{ID: "not-a-uuid"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = byID.CallUnary(ctx, connect.NewRequest(&GetParticipantRequest{ID: uuid.NewString()}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

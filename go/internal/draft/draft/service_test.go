package draft

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/rpcjson"
)

func TestService_DraftLifecycle(t *testing.T) {
	app, mem, _ := newTestApp(models.DraftRules{})
	mux := http.NewServeMux()
	mux.Handle(NewService(app).Handler())
	srv := httptest.NewServer(mux)
	defer srv.Close()
	ctx := context.Background()
	proc := func(m string) string { return "/" + ServiceName + "/" + m }

	create := rpcjson.NewClient[CreateDraftRequest, CreateDraftResponse](srv.Client(), srv.URL, proc("CreateDraft"))
	join := rpcjson.NewClient[JoinDraftMessage, JoinDraftResponse](srv.Client(), srv.URL, proc("JoinDraft"))
	assign := rpcjson.NewClient[AssignTurnOrderRequest, AssignTurnOrderResponse](srv.Client(), srv.URL, proc("AssignTurnOrder"))
	list := rpcjson.NewClient[ListDraftParticipantsRequest, ListDraftParticipantsResponse](srv.Client(), srv.URL, proc("ListDraftParticipants"))
	mine := rpcjson.NewClient[ListDraftsForParticipantRequest, ListDraftsForParticipantResponse](srv.Client(), srv.URL, proc("ListDraftsForParticipant"))
	get := rpcjson.NewClient[GetDraftRequest, GetDraftResponse](srv.Client(), srv.URL, proc("GetDraft"))

	created, err := create.CallUnary(ctx, connect.NewRequest(&CreateDraftRequest{Name: "Friday Draft"}))
	require.NoError(t, err)
	draftID := created.Msg.Draft.ID.String()

	_, err = assign.CallUnary(ctx, connect.NewRequest(&AssignTurnOrderRequest{DraftID: draftID}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	alice := mem.AddParticipant()
	_, err = join.CallUnary(ctx, connect.NewRequest(&JoinDraftMessage{DraftID: draftID, ParticipantID: alice.String()}))
	require.NoError(t, err)
	_, err = join.CallUnary(ctx, connect.NewRequest(&JoinDraftMessage{DraftID: draftID, ParticipantID: alice.String()}))
	assert.Equal(t, connect.CodeAlreadyExists, connect.CodeOf(err))
	_, err = join.CallUnary(ctx, connect.NewRequest(&JoinDraftMessage{DraftID: draftID, ParticipantID: "bogus"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	bob := mem.AddParticipant()
	_, err = join.CallUnary(ctx, connect.NewRequest(&JoinDraftMessage{DraftID: draftID, ParticipantID: bob.String()}))
	require.NoError(t, err)

	order, err := assign.CallUnary(ctx, connect.NewRequest(&AssignTurnOrderRequest{DraftID: draftID}))
	require.NoError(t, err)
	require.Len(t, order.Msg.Order, 2)
	assert.Equal(t, 1, order.Msg.Order[0].TurnOrder)
	assert.Equal(t, 2, order.Msg.Order[1].TurnOrder)

	members, err := list.CallUnary(ctx, connect.NewRequest(&ListDraftParticipantsRequest{DraftID: draftID}))
	require.NoError(t, err)
	assert.Len(t, members.Msg.Participants, 2)

	drafts, err := mine.CallUnary(ctx, connect.NewRequest(&ListDraftsForParticipantRequest{ParticipantID: bob.String()}))
	require.NoError(t, err)
	require.Len(t, drafts.Msg.Drafts, 1)
	assert.Equal(t, "Friday Draft", drafts.Msg.Drafts[0].Name)

	none, err := mine.CallUnary(ctx, connect.NewRequest(&ListDraftsForParticipantRequest{ParticipantID: uuid.NewString()}))
	require.NoError(t, err)
	assert.NotNil(t, none.Msg.Drafts)
	assert.Empty(t, none.Msg.Drafts)

	got, err := get.CallUnary(ctx, connect.NewRequest(&GetDraftRequest{DraftID: draftID}))
	require.NoError(t, err)
	assert.Equal(t, created.Msg.Draft.ID, got.Msg.Draft.ID)

	_, err = get.CallUnary(ctx, connect.NewRequest(&GetDraftRequest{DraftID: uuid.NewString()}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

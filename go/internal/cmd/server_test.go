package main

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/participants"
	"github.com/mcdev12/cubedraft/go/internal/rpcjson"
)

// newTestServer wires the real services against a database that is never
// reached; only requests rejected before the store are exercised.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := sql.Open("postgres", "postgres://nobody@127.0.0.1:1/none?sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	services := setupServices(database, models.DraftRules{}, clockwork.NewFakeClock())
	srv := httptest.NewServer(newHandler(services, prometheus.NewRegistry()))
	t.Cleanup(srv.Close)
	return srv
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestServer_RoutesAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	client := rpcjson.NewClient[participants.RegisterParticipantRequest, participants.ParticipantResponse](
		srv.Client(), srv.URL, "/"+participants.ServiceName+"/RegisterParticipant")
	_, err := client.CallUnary(context.Background(), connect.NewRequest(&participants.RegisterParticipantRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cubedraft_rpc_handled_total{code="invalid_argument",procedure="/cubedraft.participant.v1.ParticipantService/RegisterParticipant"} 1`)
}

package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/cubedraft/go/internal/draft/events"
)

func TestFromEnvelope(t *testing.T) {
	payload, err := json.Marshal(events.PickMadePayload{PickID: "p1", PickNumber: 4, RemainingCount: 0})
	require.NoError(t, err)
	at := time.Date(2025, 6, 6, 19, 30, 0, 0, time.UTC)

	ev, err := FromEnvelope(events.Envelope{
		EventID:   "e1",
		EventType: events.EventTypePickMade,
		DraftID:   uuid.NewString(),
		Timestamp: at,
		Payload:   payload,
	})
	require.NoError(t, err)
	assert.Equal(t, EventTypePickMade, ev.Type)
	assert.Equal(t, at, ev.Timestamp)

	parsed, err := ParseEventPayload(ev)
	require.NoError(t, err)
	pm := parsed.(events.PickMadePayload)
	assert.Equal(t, "p1", pm.PickID)
	assert.Equal(t, 4, pm.PickNumber)
}

func TestFromEnvelope_Unknown(t *testing.T) {
	_, err := FromEnvelope(events.Envelope{EventType: "DraftPaused"})
	var unknown ErrUnknownEventType
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "DraftPaused", string(unknown))

	// snapshots never come from the relay
	_, err = FromEnvelope(events.Envelope{EventType: string(EventTypeSnapshot)})
	require.ErrorAs(t, err, &unknown)
}

func TestParseEventPayload_Bad(t *testing.T) {
	_, err := ParseEventPayload(&DraftEvent{Type: EventTypePoolSeeded, Data: json.RawMessage(`{"added_cards":"three"}`)})
	require.Error(t, err)

	_, err = ParseEventPayload(&DraftEvent{Type: "Nope", Data: json.RawMessage(`{}`)})
	var unknown ErrUnknownEventType
	require.ErrorAs(t, err, &unknown)
}

package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/cubedraft/go/internal/draft/events"
)

// DraftEvent is the frame pushed to websocket clients.
type DraftEvent struct {
	ID        string          `json:"id"`
	DraftID   string          `json:"draft_id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EventType represents the type of draft event
type EventType string

const (
	EventTypeParticipantJoined EventType = events.EventTypeParticipantJoined
	EventTypeTurnOrderAssigned EventType = events.EventTypeTurnOrderAssigned
	EventTypePoolSeeded        EventType = events.EventTypePoolSeeded
	EventTypePickMade          EventType = events.EventTypePickMade

	// EventTypeSnapshot carries a DraftState and is only sent by the gateway.
	EventTypeSnapshot EventType = "Snapshot"
)

var knownEventTypes = map[EventType]bool{
	EventTypeParticipantJoined: true,
	EventTypeTurnOrderAssigned: true,
	EventTypePoolSeeded:        true,
	EventTypePickMade:          true,
}

// ErrUnknownEventType is returned for envelopes the gateway does not forward.
type ErrUnknownEventType string

func (e ErrUnknownEventType) Error() string {
	return fmt.Sprintf("unknown event type: %s", string(e))
}

// FromEnvelope converts a relayed outbox envelope into a client frame.
func FromEnvelope(env events.Envelope) (*DraftEvent, error) {
	t := EventType(env.EventType)
	if !knownEventTypes[t] {
		return nil, ErrUnknownEventType(env.EventType)
	}
	return &DraftEvent{
		ID:        env.EventID,
		DraftID:   env.DraftID,
		Type:      t,
		Timestamp: env.Timestamp,
		Data:      env.Payload,
	}, nil
}

// ParseEventPayload parses event data into the appropriate payload struct
func ParseEventPayload(event *DraftEvent) (any, error) {
	var (
		payload any
		err     error
	)
	switch event.Type {
	case EventTypeParticipantJoined:
		var p events.ParticipantJoinedPayload
		err = json.Unmarshal(event.Data, &p)
		payload = p
	case EventTypeTurnOrderAssigned:
		var p events.TurnOrderAssignedPayload
		err = json.Unmarshal(event.Data, &p)
		payload = p
	case EventTypePoolSeeded:
		var p events.PoolSeededPayload
		err = json.Unmarshal(event.Data, &p)
		payload = p
	case EventTypePickMade:
		var p events.PickMadePayload
		err = json.Unmarshal(event.Data, &p)
		payload = p
	case EventTypeSnapshot:
		var p DraftState
		err = json.Unmarshal(event.Data, &p)
		payload = p
	default:
		return nil, ErrUnknownEventType(event.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", event.Type, err)
	}
	return payload, nil
}

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests for draft connections
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	stateProvider     StateProvider
	snapshotTimeout   time.Duration
}

// NewWebSocketHandler creates a new WebSocket handler. A nil provider
// skips the snapshot sent on connect.
func NewWebSocketHandler(cm *ConnectionManager, provider StateProvider) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		stateProvider:     provider,
		snapshotTimeout:   5 * time.Second,
	}
}

// HandleDraftConnection serves /ws/draft?draft_id=<uuid>&participant_id=<uuid>.
func (h *WebSocketHandler) HandleDraftConnection(w http.ResponseWriter, r *http.Request) {
	draftIDStr := r.URL.Query().Get("draft_id")
	if draftIDStr == "" {
		http.Error(w, "draft_id is required", http.StatusBadRequest)
		return
	}
	draftID, err := uuid.Parse(draftIDStr)
	if err != nil {
		http.Error(w, "invalid draft_id format", http.StatusBadRequest)
		return
	}

	// spectators connect without a participant id
	participantID := r.URL.Query().Get("participant_id")
	if participantID == "" {
		participantID = "spectator"
	}

	conn, err := h.connectionManager.UpgradeConnection(w, r, participantID, draftID)
	if err != nil {
		// the upgrader has already written the HTTP error
		log.Error().
			Err(err).
			Str("draft_id", draftID.String()).
			Str("participant_id", participantID).
			Msg("failed to upgrade WebSocket connection")
		return
	}

	if h.stateProvider != nil {
		h.sendSnapshot(conn)
	}
}

// sendSnapshot runs after registration, so any event the client sees
// before the snapshot is already reflected in it.
func (h *WebSocketHandler) sendSnapshot(conn *Connection) {
	ctx, cancel := context.WithTimeout(context.Background(), h.snapshotTimeout)
	defer cancel()

	state, err := h.stateProvider.GetDraftState(ctx, conn.DraftID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("draft_id", conn.DraftID.String()).
			Msg("closing connection without snapshot")
		h.connectionManager.unregisterConnection(conn)
		return
	}

	data, err := json.Marshal(state)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal snapshot")
		return
	}
	h.connectionManager.Send(conn, &DraftEvent{
		ID:        uuid.NewString(),
		DraftID:   conn.DraftID.String(),
		Type:      EventTypeSnapshot,
		Timestamp: state.GeneratedAt,
		Data:      data,
	})
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.Stats()); err != nil {
		log.Error().Err(err).Msg("failed to encode connection stats")
	}
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/draft", h.HandleDraftConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}

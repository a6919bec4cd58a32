package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type connState bool

func (c connState) IsConnected() bool { return bool(c) }

func okPinger() Pinger { return pingerFunc(func(context.Context) error { return nil }) }

func TestHealthChecker_ListenerInactive(t *testing.T) {
	h := newHarness(DefaultListenerConfig())
	checker := NewHealthChecker(h.listener, okPinger(), connState(true), h.store, h.clock, time.Minute)

	status := checker.Check(context.Background())
	assert.False(t, status.Healthy)
	assert.True(t, status.DatabaseConnected)
	assert.True(t, status.NATSConnected)
	assert.Contains(t, status.Errors, "listener not active")
}

func TestHealthChecker_Healthy(t *testing.T) {
	h := newHarness(DefaultListenerConfig())
	stop := h.start(t)
	defer stop()

	checker := NewHealthChecker(h.listener, okPinger(), connState(true), h.store, h.clock, time.Minute)
	status := checker.Check(context.Background())
	assert.True(t, status.Healthy, status.Errors)
	assert.Empty(t, status.Errors)

	rec := httptest.NewRecorder()
	checker.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var body HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Healthy)
}

func TestHealthChecker_DependenciesDown(t *testing.T) {
	h := newHarness(DefaultListenerConfig())
	stop := h.start(t)
	defer stop()

	failing := pingerFunc(func(context.Context) error { return errors.New("connection refused") })
	checker := NewHealthChecker(h.listener, failing, connState(false), h.store, h.clock, time.Minute)

	rec := httptest.NewRecorder()
	checker.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.DatabaseConnected)
	assert.False(t, body.NATSConnected)
	assert.Contains(t, body.Errors, "NATS disconnected")
}

func TestHealthChecker_Stalled(t *testing.T) {
	cfg := DefaultListenerConfig()
	cfg.FallbackInterval = time.Hour
	cfg.PingInterval = time.Hour
	h := newHarness(cfg)
	event := newEvent("PickMade")
	h.store.add(event)
	stop := h.start(t)
	defer stop()
	require.Eventually(t, func() bool { return h.store.sent(event.ID) }, 2*time.Second, 5*time.Millisecond)

	// a new event that never gets relayed
	h.store.add(newEvent("PickMade"))
	checker := NewHealthChecker(h.listener, okPinger(), connState(true), h.store, h.clock, time.Minute)

	assert.True(t, checker.Check(context.Background()).Healthy)

	h.clock.Advance(2 * time.Minute)
	status := checker.Check(context.Background())
	assert.False(t, status.Healthy)
	assert.Equal(t, 1, status.PendingEvents)
}

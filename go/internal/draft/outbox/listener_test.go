package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listenerHarness struct {
	notifier  *fakeNotifier
	store     *fakeStore
	publisher *fakePublisher
	metrics   *recordingMetrics
	clock     *clockwork.FakeClock
	listener  *Listener
}

func newHarness(cfg ListenerConfig) *listenerHarness {
	h := &listenerHarness{
		notifier:  newFakeNotifier(),
		store:     &fakeStore{},
		publisher: &fakePublisher{},
		metrics:   newRecordingMetrics(),
		clock:     clockwork.NewFakeClock(),
	}
	h.listener = NewListener(h.notifier, h.store, h.publisher, h.metrics, h.clock, cfg)
	return h
}

// start runs the listener until the returned stop func is called.
func (h *listenerHarness) start(t *testing.T) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.listener.Start(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, h.clock.BlockUntilContext(waitCtx, 2), "tickers not created")
	require.Eventually(t, func() bool {
		unsent, _ := h.store.calls()
		return unsent >= 1
	}, 2*time.Second, 5*time.Millisecond)

	return func() {
		cancel()
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("listener did not stop")
		}
	}
}

func TestListener_FlushesUnsentOnStart(t *testing.T) {
	h := newHarness(DefaultListenerConfig())
	first := newEvent("ParticipantJoined")
	second := newEvent("PickMade")
	h.store.add(first)
	h.store.add(second)

	stop := h.start(t)
	require.Eventually(t, func() bool { return h.publisher.count() == 2 }, 2*time.Second, 5*time.Millisecond)
	stop()

	assert.True(t, h.store.sent(first.ID))
	assert.True(t, h.store.sent(second.ID))
	processed, last := h.listener.Stats()
	assert.Equal(t, uint64(2), processed)
	assert.Equal(t, h.clock.Now(), last)
	assert.True(t, h.notifier.closed)
	assert.False(t, h.listener.Running())
}

func TestListener_RelaysNotifiedEvent(t *testing.T) {
	h := newHarness(DefaultListenerConfig())
	stop := h.start(t)
	defer stop()

	event := newEvent("PoolSeeded")
	h.store.add(event)
	h.notifier.ch <- &pq.Notification{Channel: "draft_outbox_events", Extra: event.ID.String()}

	require.Eventually(t, func() bool { return h.store.sent(event.ID) }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, h.publisher.count())
}

func TestListener_SkipsAlreadySentNotification(t *testing.T) {
	h := newHarness(DefaultListenerConfig())
	event := newEvent("PickMade")
	h.store.add(event)
	require.NoError(t, h.store.MarkSent(context.Background(), event.ID))

	stop := h.start(t)
	h.notifier.ch <- &pq.Notification{Extra: event.ID.String()}
	require.Eventually(t, func() bool {
		_, byID := h.store.calls()
		return byID == 1
	}, 2*time.Second, 5*time.Millisecond)
	stop()

	assert.Equal(t, 0, h.publisher.attemptCount())
}

func TestListener_IgnoresMalformedNotification(t *testing.T) {
	h := newHarness(DefaultListenerConfig())
	stop := h.start(t)

	h.notifier.ch <- &pq.Notification{Extra: "not-a-uuid"}
	event := newEvent("PickMade")
	h.store.add(event)
	h.notifier.ch <- &pq.Notification{Extra: event.ID.String()}

	require.Eventually(t, func() bool { return h.store.sent(event.ID) }, 2*time.Second, 5*time.Millisecond)
	stop()
	assert.Equal(t, 1, h.publisher.count())
}

func TestListener_ReconnectTriggersPoll(t *testing.T) {
	h := newHarness(DefaultListenerConfig())
	stop := h.start(t)
	defer stop()

	event := newEvent("TurnOrderAssigned")
	h.store.add(event)
	// pq sends nil after re-establishing the connection
	h.notifier.ch <- nil

	require.Eventually(t, func() bool { return h.store.sent(event.ID) }, 2*time.Second, 5*time.Millisecond)
}

func TestListener_FallbackPoll(t *testing.T) {
	cfg := DefaultListenerConfig()
	h := newHarness(cfg)
	stop := h.start(t)
	defer stop()

	event := newEvent("PickMade")
	h.store.add(event)
	assert.False(t, h.store.sent(event.ID))

	h.clock.Advance(cfg.FallbackInterval)

	require.Eventually(t, func() bool { return h.store.sent(event.ID) }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		h.metrics.mu.Lock()
		defer h.metrics.mu.Unlock()
		return h.metrics.batches >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestListener_PingTicker(t *testing.T) {
	cfg := DefaultListenerConfig()
	cfg.FallbackInterval = time.Hour
	h := newHarness(cfg)
	stop := h.start(t)
	defer stop()

	h.clock.Advance(cfg.PingInterval)
	require.Eventually(t, func() bool {
		h.notifier.mu.Lock()
		defer h.notifier.mu.Unlock()
		return h.notifier.pings == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestListener_RetriesWithLinearBackoff(t *testing.T) {
	cfg := DefaultListenerConfig()
	h := newHarness(cfg)
	h.publisher.failN = 2
	event := newEvent("PickMade")
	h.store.add(event)

	done := make(chan error, 1)
	go func() { done <- h.listener.relay(context.Background(), event) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, h.clock.BlockUntilContext(ctx, 1))
	h.clock.Advance(cfg.RetryDelay)
	require.NoError(t, h.clock.BlockUntilContext(ctx, 1))
	// second wait is twice as long
	h.clock.Advance(cfg.RetryDelay)
	select {
	case <-done:
		t.Fatal("relay finished before the second backoff elapsed")
	case <-time.After(20 * time.Millisecond):
	}
	h.clock.Advance(cfg.RetryDelay)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not finish")
	}

	assert.Equal(t, 3, h.publisher.attemptCount())
	assert.True(t, h.store.sent(event.ID))
	assert.Equal(t, []bool{false, false, true}, h.metrics.attempts)
	assert.Equal(t, 1, h.metrics.processed["PickMade/success"])
}

func TestListener_GivesUpAfterMaxRetries(t *testing.T) {
	cfg := DefaultListenerConfig()
	cfg.MaxRetries = 0
	h := newHarness(cfg)
	h.publisher.failN = 1
	event := newEvent("PoolSeeded")
	h.store.add(event)

	err := h.listener.relay(context.Background(), event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish failed after 1 attempts")
	assert.False(t, h.store.sent(event.ID))
	assert.Equal(t, 1, h.metrics.processed["PoolSeeded/failure"])
}

func TestListener_RetryStopsOnCancel(t *testing.T) {
	cfg := DefaultListenerConfig()
	h := newHarness(cfg)
	h.publisher.failN = 10
	event := newEvent("PickMade")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.listener.publishWithRetry(ctx, event) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, h.clock.BlockUntilContext(waitCtx, 1))
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("publishWithRetry ignored cancellation")
	}
}

package outbox

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type fakeNotifier struct {
	ch     chan *pq.Notification
	mu     sync.Mutex
	pings  int
	closed bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan *pq.Notification, 8)}
}

func (n *fakeNotifier) NotificationChannel() <-chan *pq.Notification { return n.ch }

func (n *fakeNotifier) Ping() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pings++
	return nil
}

func (n *fakeNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	return nil
}

// fakeStore keeps outbox rows in memory.
type fakeStore struct {
	mu          sync.Mutex
	events      []OutboxEvent
	unsentCalls int
	byIDCalls   int
	countErr    error
}

func (s *fakeStore) add(e OutboxEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *fakeStore) FetchByID(_ context.Context, id uuid.UUID) (*OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byIDCalls++
	for _, e := range s.events {
		if e.ID == id && e.SentAt == nil {
			ev := e
			return &ev, nil
		}
	}
	return nil, ErrEventNotPending
}

func (s *fakeStore) FetchUnsent(_ context.Context, limit int32) ([]OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsentCalls++
	var out []OutboxEvent
	for _, e := range s.events {
		if e.SentAt == nil && int32(len(out)) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id {
			now := time.Now()
			s.events[i].SentAt = &now
			return nil
		}
	}
	return errors.New("no such event")
}

func (s *fakeStore) CountUnsent(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countErr != nil {
		return 0, s.countErr
	}
	n := 0
	for _, e := range s.events {
		if e.SentAt == nil {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) sent(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			return e.SentAt != nil
		}
	}
	return false
}

func (s *fakeStore) calls() (unsent, byID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsentCalls, s.byIDCalls
}

// fakePublisher fails the first failN publishes.
type fakePublisher struct {
	mu        sync.Mutex
	failN     int
	attempts  int
	published []OutboxEvent
}

func (p *fakePublisher) Publish(_ context.Context, event OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts++
	if p.attempts <= p.failN {
		return errors.New("nats unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func (p *fakePublisher) attemptCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}

type recordingMetrics struct {
	mu        sync.Mutex
	processed map[string]int
	attempts  []bool
	lag       int
	batches   int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{processed: map[string]int{}}
}

func (m *recordingMetrics) RecordEventProcessed(eventType string, success bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed[eventType+"/"+status(success)]++
}

func (m *recordingMetrics) RecordBatchProcessed(int, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches++
}

func (m *recordingMetrics) RecordOutboxLag(lag int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lag = lag
}

func (m *recordingMetrics) RecordPublishAttempt(_ string, _ int, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, success)
}

func newEvent(eventType string) OutboxEvent {
	return OutboxEvent{
		ID:        uuid.New(),
		DraftID:   uuid.New(),
		EventType: eventType,
		Payload:   []byte(`{"ok":true}`),
		CreatedAt: time.Date(2025, 6, 6, 19, 0, 0, 0, time.UTC),
	}
}

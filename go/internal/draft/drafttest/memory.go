// Package drafttest provides an in-memory draft store for app-layer tests.
//
// Memory mirrors the Postgres schema's constraints (unique pairs, gapless
// pick numbers, remaining_count >= 0) and runs WithinDraft callbacks against
// a copy of its state that is only kept when the callback succeeds.
package drafttest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// Event is an outbox row captured by Memory.
type Event struct {
	DraftID uuid.UUID
	Type    string
	Payload any
}

type state struct {
	drafts       map[uuid.UUID]models.Draft
	participants map[uuid.UUID]bool
	members      []models.DraftParticipant
	pool         []models.PoolEntry
	picks        []models.Pick
	events       []Event
}

func (s *state) clone() *state {
	c := &state{
		drafts:       make(map[uuid.UUID]models.Draft, len(s.drafts)),
		participants: make(map[uuid.UUID]bool, len(s.participants)),
		members:      append([]models.DraftParticipant(nil), s.members...),
		pool:         append([]models.PoolEntry(nil), s.pool...),
		picks:        append([]models.Pick(nil), s.picks...),
		events:       append([]Event(nil), s.events...),
	}
	for k, v := range s.drafts {
		c.drafts[k] = v
	}
	for k, v := range s.participants {
		c.participants[k] = v
	}
	return c
}

// Memory is a concurrency-safe in-memory draft store.
type Memory struct {
	mu    sync.Mutex
	st    *state
	cards map[string][]uuid.UUID
	fail  map[string]error
}

func NewMemory() *Memory {
	return &Memory{
		st: &state{
			drafts:       map[uuid.UUID]models.Draft{},
			participants: map[uuid.UUID]bool{},
		},
		cards: map[string][]uuid.UUID{},
		fail:  map[string]error{},
	}
}

// FailOn makes the named Tx method return err until cleared with a nil err.
func (m *Memory) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.fail, method)
		return
	}
	m.fail[method] = err
}

// AddDraft stores a draft and returns it.
func (m *Memory) AddDraft(name string) models.Draft {
	d := models.Draft{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	m.InsertDraft(d)
	return d
}

func (m *Memory) InsertDraft(d models.Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.drafts[d.ID] = d
}

// AddParticipant registers a participant id so joins can reference it.
func (m *Memory) AddParticipant() uuid.UUID {
	id := uuid.New()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.participants[id] = true
	return id
}

// AddCards puts n catalog cards in setID and returns their ids.
func (m *Memory) AddCards(setID string, n int) []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	m.cards[setID] = append(m.cards[setID], ids...)
	return ids
}

// CountCardsBySet satisfies the pool app's catalog dependency.
func (m *Memory) CountCardsBySet(_ context.Context, setID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cards[setID]), nil
}

func (m *Memory) GetDraft(_ context.Context, id uuid.UUID) (*models.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.st.drafts[id]
	if !ok {
		return nil, drafterr.ErrDraftNotFound
	}
	return &d, nil
}

func (m *Memory) ListDraftsForParticipant(_ context.Context, participantID uuid.UUID) ([]models.DraftSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DraftSummary
	for _, dp := range m.st.members {
		if dp.ParticipantID == participantID {
			d := m.st.drafts[dp.DraftID]
			out = append(out, models.DraftSummary{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ListDraftParticipants(_ context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&Tx{st: m.st}).members(draftID), nil
}

func (m *Memory) ListPool(_ context.Context, draftID uuid.UUID) ([]models.PoolEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.PoolEntry
	for _, pe := range m.st.pool {
		if pe.DraftID == draftID {
			out = append(out, pe)
		}
	}
	return out, nil
}

func (m *Memory) ListPicks(_ context.Context, draftID uuid.UUID) ([]models.Pick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Pick
	for _, p := range m.st.picks {
		if p.DraftID == draftID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PickNumber < out[j].PickNumber })
	return out, nil
}

// Events returns captured outbox rows in insertion order.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.st.events...)
}

// WithinDraft serializes fn with every other WithinDraft call. State
// changes made through tx are discarded if fn fails.
func (m *Memory) WithinDraft(_ context.Context, draftID uuid.UUID, fn func(tx *Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.st.drafts[draftID]; !ok {
		return drafterr.ErrDraftNotFound
	}
	tx := &Tx{st: m.st.clone(), cards: m.cards, fail: m.fail}
	if err := fn(tx); err != nil {
		return err
	}
	m.st = tx.st
	return nil
}

// Tx is the store handed to WithinDraft callbacks.
type Tx struct {
	st    *state
	cards map[string][]uuid.UUID
	fail  map[string]error
}

func (tx *Tx) failure(method string) error {
	return tx.fail[method]
}

func (tx *Tx) members(draftID uuid.UUID) []models.DraftParticipant {
	var out []models.DraftParticipant
	for _, dp := range tx.st.members {
		if dp.DraftID == draftID {
			out = append(out, dp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TurnOrder != b.TurnOrder {
			return a.TurnOrder < b.TurnOrder
		}
		if !a.JoinedAt.Equal(b.JoinedAt) {
			return a.JoinedAt.Before(b.JoinedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return out
}

func (tx *Tx) AddParticipant(_ context.Context, dp models.DraftParticipant) (*models.DraftParticipant, error) {
	if err := tx.failure("AddParticipant"); err != nil {
		return nil, err
	}
	if !tx.st.participants[dp.ParticipantID] {
		return nil, drafterr.ErrParticipantNotFound
	}
	for _, existing := range tx.st.members {
		if existing.DraftID == dp.DraftID && existing.ParticipantID == dp.ParticipantID {
			return nil, drafterr.ErrAlreadyJoined
		}
	}
	tx.st.members = append(tx.st.members, dp)
	return &dp, nil
}

func (tx *Tx) ListParticipants(_ context.Context, draftID uuid.UUID) ([]models.DraftParticipant, error) {
	return tx.members(draftID), nil
}

func (tx *Tx) GetDraftParticipant(_ context.Context, draftID, participantID uuid.UUID) (*models.DraftParticipant, error) {
	for _, dp := range tx.st.members {
		if dp.DraftID == draftID && dp.ParticipantID == participantID {
			return &dp, nil
		}
	}
	return nil, drafterr.ErrNotInDraft
}

func (tx *Tx) AssignTurnOrders(_ context.Context, draftID uuid.UUID, order []models.DraftParticipant) error {
	if err := tx.failure("AssignTurnOrders"); err != nil {
		return err
	}
	for _, dp := range order {
		found := false
		for i := range tx.st.members {
			if tx.st.members[i].ID == dp.ID && tx.st.members[i].DraftID == draftID {
				tx.st.members[i].TurnOrder = dp.TurnOrder
				found = true
			}
		}
		if !found {
			return fmt.Errorf("draft participant %s not in draft %s", dp.ID, draftID)
		}
	}
	return nil
}

func (tx *Tx) CountPicks(_ context.Context, draftID uuid.UUID) (int, error) {
	n := 0
	for _, p := range tx.st.picks {
		if p.DraftID == draftID {
			n++
		}
	}
	return n, nil
}

func (tx *Tx) CreatePick(_ context.Context, p models.Pick) (*models.Pick, error) {
	if err := tx.failure("CreatePick"); err != nil {
		return nil, err
	}
	for _, existing := range tx.st.picks {
		if existing.DraftID == p.DraftID && existing.PickNumber == p.PickNumber {
			return nil, fmt.Errorf("duplicate pick number %d", p.PickNumber)
		}
	}
	tx.st.picks = append(tx.st.picks, p)
	return &p, nil
}

func (tx *Tx) GetPoolEntryForUpdate(_ context.Context, draftID, poolEntryID uuid.UUID) (*models.PoolEntry, error) {
	for _, pe := range tx.st.pool {
		if pe.ID == poolEntryID && pe.DraftID == draftID {
			return &pe, nil
		}
	}
	return nil, drafterr.ErrPoolEntryUnavailable
}

func (tx *Tx) DecrementPoolEntry(_ context.Context, poolEntryID uuid.UUID) error {
	if err := tx.failure("DecrementPoolEntry"); err != nil {
		return err
	}
	for i := range tx.st.pool {
		if tx.st.pool[i].ID == poolEntryID {
			if tx.st.pool[i].RemainingCount <= 0 {
				return drafterr.ErrPoolEntryUnavailable
			}
			tx.st.pool[i].RemainingCount--
			return nil
		}
	}
	return drafterr.ErrPoolEntryUnavailable
}

func (tx *Tx) SeedPoolFromSet(_ context.Context, draftID uuid.UUID, setID string) (int, error) {
	if err := tx.failure("SeedPoolFromSet"); err != nil {
		return 0, err
	}
	added := 0
	for _, cardID := range tx.cards[setID] {
		dup := false
		for _, pe := range tx.st.pool {
			if pe.DraftID == draftID && pe.CardID == cardID {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		tx.st.pool = append(tx.st.pool, models.PoolEntry{
			ID:             uuid.New(),
			DraftID:        draftID,
			CardID:         cardID,
			RemainingCount: 1,
		})
		added++
	}
	return added, nil
}

func (tx *Tx) CountPoolEntries(_ context.Context, draftID uuid.UUID) (int, error) {
	n := 0
	for _, pe := range tx.st.pool {
		if pe.DraftID == draftID {
			n++
		}
	}
	return n, nil
}

func (tx *Tx) InsertEvent(_ context.Context, draftID uuid.UUID, eventType string, payload any) error {
	if err := tx.failure("InsertEvent"); err != nil {
		return err
	}
	tx.st.events = append(tx.st.events, Event{DraftID: draftID, Type: eventType, Payload: payload})
	return nil
}

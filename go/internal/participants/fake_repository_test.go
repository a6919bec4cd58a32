package participants

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/drafterr"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// FakeRepository is an in-memory ParticipantsRepository.
type FakeRepository struct {
	mu           sync.Mutex
	participants []models.Participant
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (f *FakeRepository) CreateParticipant(_ context.Context, id uuid.UUID, req RegisterParticipantRequest, createdAt time.Time) (*models.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.participants {
		if p.ExternalIdentity == req.ExternalIdentity {
			return nil, drafterr.ErrDuplicateParticipant
		}
	}
	p := models.Participant{
		ID:               id,
		DisplayName:      req.DisplayName,
		ExternalIdentity: req.ExternalIdentity,
		CreatedAt:        createdAt,
	}
	f.participants = append(f.participants, p)
	return &p, nil
}

func (f *FakeRepository) GetParticipant(_ context.Context, id uuid.UUID) (*models.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.participants {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, drafterr.ErrParticipantNotFound
}

func (f *FakeRepository) GetParticipantByName(_ context.Context, displayName string) (*models.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matches []models.Participant
	for _, p := range f.participants {
		if p.DisplayName == displayName {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return nil, drafterr.ErrParticipantNotFound
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].CreatedAt.Before(matches[j].CreatedAt) })
	return &matches[0], nil
}

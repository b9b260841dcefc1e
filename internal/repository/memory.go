package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Shivanand-hulikatti/hackhub/internal/model"
)

// MemoryHackathonStore keeps hackathons in process memory. Documents are
// cloned on the way in and out so callers never share state with the store.
type MemoryHackathonStore struct {
	mu   sync.RWMutex
	docs map[string]*model.Hackathon
}

// NewMemoryHackathonStore constructs an empty MemoryHackathonStore.
func NewMemoryHackathonStore() *MemoryHackathonStore {
	return &MemoryHackathonStore{docs: make(map[string]*model.Hackathon)}
}

func (s *MemoryHackathonStore) Create(_ context.Context, h *model.Hackathon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[h.ID]; ok {
		return fmt.Errorf("insert hackathon %s: duplicate id", h.ID)
	}
	h.Version = 1
	s.docs[h.ID] = h.Clone()
	return nil
}

func (s *MemoryHackathonStore) Get(_ context.Context, id string) (*model.Hackathon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return h.Clone(), nil
}

func (s *MemoryHackathonStore) List(_ context.Context, filter model.HackathonFilter) ([]model.Hackathon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Hackathon
	for _, h := range s.docs {
		if matchesHackathon(h, filter) {
			out = append(out, *h.Clone())
		}
	}
	slices.SortFunc(out, func(a, b model.Hackathon) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *MemoryHackathonStore) CompareAndSwap(_ context.Context, id string, expectedVersion int64, updated *model.Hackathon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	if current.Version != expectedVersion {
		return ErrVersionConflict
	}
	updated.Version = expectedVersion + 1
	s.docs[id] = updated.Clone()
	return nil
}

func (s *MemoryHackathonStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// MemoryFeedbackStore keeps feedback in process memory.
type MemoryFeedbackStore struct {
	mu    sync.RWMutex
	items map[string]model.Feedback
}

// NewMemoryFeedbackStore constructs an empty MemoryFeedbackStore.
func NewMemoryFeedbackStore() *MemoryFeedbackStore {
	return &MemoryFeedbackStore{items: make(map[string]model.Feedback)}
}

func (s *MemoryFeedbackStore) Create(_ context.Context, f *model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[f.ID]; ok {
		return fmt.Errorf("insert feedback %s: duplicate id", f.ID)
	}
	s.items[f.ID] = *f
	return nil
}

func (s *MemoryFeedbackStore) Get(_ context.Context, id string) (*model.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (s *MemoryFeedbackStore) List(_ context.Context, filter model.FeedbackFilter) ([]model.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Feedback
	for _, f := range s.items {
		if matchesFeedback(&f, filter) {
			out = append(out, f)
		}
	}
	slices.SortFunc(out, func(a, b model.Feedback) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *MemoryFeedbackStore) Update(_ context.Context, f *model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[f.ID]; !ok {
		return ErrNotFound
	}
	s.items[f.ID] = *f
	return nil
}

func (s *MemoryFeedbackStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

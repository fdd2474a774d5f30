package store

import (
	"context"
	"sort"
	"sync"

	"github.com/slidegen/slidegen/pkg/deck"
	"github.com/slidegen/slidegen/pkg/errors"
)

// MemoryStore keeps decks in process memory. Decks are stored and returned as
// serialized copies, so callers can never mutate stored state through shared
// slices.
type MemoryStore struct {
	mu    sync.RWMutex
	decks map[string][]byte
	infos map[string]Summary
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		decks: make(map[string][]byte),
		infos: make(map[string]Summary),
	}
}

// Save stores a deck, replacing any existing deck with the same ID.
func (s *MemoryStore) Save(ctx context.Context, d *deck.Deck) error {
	if d == nil || d.ID == "" {
		return errors.New(errors.ErrCodeInvalidContent, "deck must have an ID to be stored")
	}
	data, err := deck.Marshal(d)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[d.ID] = data
	s.infos[d.ID] = Summary{
		ID:         d.ID,
		Title:      d.Title,
		SlideCount: d.SlideCount(),
		CreatedAt:  d.CreatedAt,
	}
	return nil
}

// Get retrieves a deck by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*deck.Deck, error) {
	s.mu.RLock()
	data, ok := s.decks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeDeckNotFound, "deck %q not found", id)
	}
	return deck.Unmarshal(data)
}

// List returns deck summaries, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.infos))
	for _, info := range s.infos {
		out = append(out, info)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a deck.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[id]; !ok {
		return errors.New(errors.ErrCodeDeckNotFound, "deck %q not found", id)
	}
	delete(s.decks, id)
	delete(s.infos, id)
	return nil
}

// Close does nothing for the memory backend.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)

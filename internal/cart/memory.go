package cart

import (
	"context"
	"sync"
)

// memoryStore is the in-process fallback used when no Redis address is
// configured, and by tests. Carts are copied on the way in and out so two
// requests never share the same map.
type memoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

// NewMemoryStore returns an in-memory session cart store.
func NewMemoryStore() Store {
	return &memoryStore{carts: make(map[string]Cart)}
}

func (s *memoryStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[sessionID]
	if !ok {
		return New(), nil
	}
	c := New()
	for id, qty := range stored {
		c[id] = qty
	}
	return c, nil
}

func (s *memoryStore) Put(ctx context.Context, sessionID string, c Cart) error {
	copied := New()
	for id, qty := range c {
		copied[id] = qty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = copied
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

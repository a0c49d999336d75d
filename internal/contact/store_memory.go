package contact

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Debbarh/qr-card-connect-hub/pkg/platform/sentinel"
)

// Store is the persistence contract for the contact directory.
type Store interface {
	Create(ctx context.Context, c *Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	Search(ctx context.Context, query string) ([]*Contact, error)
}

// InMemoryStore keeps contacts in insertion order behind a RWMutex.
type InMemoryStore struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]*Contact
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[uuid.UUID]*Contact)}
}

func (s *InMemoryStore) Create(_ context.Context, c *Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[c.ID]; exists {
		return sentinel.ErrConflict
	}
	stored := *c
	s.byID[c.ID] = &stored
	s.order = append(s.order, c.ID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *c
	return &found, nil
}

// Search returns contacts whose name or email contains the query
// case-insensitively, or whose phone contains it verbatim. An empty query
// returns the whole directory.
func (s *InMemoryStore) Search(_ context.Context, query string) ([]*Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	matches := make([]*Contact, 0, len(s.order))
	for _, id := range s.order {
		c := s.byID[id]
		if query != "" && !matchesContact(c, query, needle) {
			continue
		}
		found := *c
		matches = append(matches, &found)
	}
	return matches, nil
}

func matchesContact(c *Contact, query, lowered string) bool {
	return strings.Contains(strings.ToLower(c.Name), lowered) ||
		(c.Phone != "" && strings.Contains(c.Phone, query)) ||
		(c.Email != "" && strings.Contains(strings.ToLower(c.Email), lowered))
}

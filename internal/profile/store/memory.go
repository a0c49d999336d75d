// Package store persists profiles. Implementations are interface-compatible
// with the service layer's ProfileStore so in-memory and postgres backends can
// be swapped without rewiring business code.
//
// The single-active invariant is enforced here: activation demotes currently
// active profiles and promotes the target in one critical section (mutex for
// the in-memory store, transaction for postgres), so no reader ever observes
// two active profiles or a partially applied transition.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Debbarh/qr-card-connect-hub/internal/profile/models"
	"github.com/Debbarh/qr-card-connect-hub/pkg/platform/sentinel"
	"github.com/Debbarh/qr-card-connect-hub/pkg/requestcontext"
)

// InMemory keeps profiles in insertion order behind a single RWMutex. It
// intentionally favors clarity over performance.
type InMemory struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]*models.Profile
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[uuid.UUID]*models.Profile)}
}

// Create appends a profile. Duplicate ids are a conflict.
func (s *InMemory) Create(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[p.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *p
	s.byID[p.ID] = &cp
	s.order = append(s.order, p.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// SetStatus transitions the identified profile. Activation additionally
// demotes every profile currently active in the same critical section;
// archived profiles are left untouched by that compensation. Transitioning to
// the current status is a no-op beyond the timestamp.
func (s *InMemory) SetStatus(ctx context.Context, id uuid.UUID, status models.ProfileStatus) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	now := requestcontext.Now(ctx)
	if status == models.StatusActive {
		for _, other := range s.byID {
			if other.ID != id && other.Status == models.StatusActive {
				other.ApplyStatus(models.StatusInactive, now)
			}
		}
	}
	target.ApplyStatus(status, now)

	cp := *target
	return &cp, nil
}

// Delete removes the profile permanently.
func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all profiles in insertion order.
func (s *InMemory) List(_ context.Context) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Profile, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

// ListByStatus returns profiles with the given status in insertion order.
func (s *InMemory) ListByStatus(_ context.Context, status models.ProfileStatus) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Profile
	for _, id := range s.order {
		if p := s.byID[id]; p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// FindActive returns the single active profile, or ErrNotFound when none.
func (s *InMemory) FindActive(_ context.Context) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if p := s.byID[id]; p.Status == models.StatusActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

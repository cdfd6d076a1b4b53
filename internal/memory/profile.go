package memory

import (
	"context"
	"fmt"

	"github.com/nikolayk812/snexa/internal/domain"
)

type profileRepository struct {
	s *Store
}

func (r *profileRepository) Get(_ context.Context, uid string) (domain.Profile, error) {
	if uid == "" {
		return domain.Profile{}, fmt.Errorf("uid is empty")
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[uid]
	if !ok {
		return domain.Profile{}, fmt.Errorf("profile[%s]: %w", uid, domain.ErrNotFound)
	}

	return p, nil
}

func (r *profileRepository) Save(_ context.Context, p domain.Profile) error {
	if p.UID == "" {
		return fmt.Errorf("uid is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = r.s.now()
	}
	r.s.profiles[p.UID] = p

	return nil
}

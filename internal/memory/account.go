package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/snexa/internal/domain"
)

type customerRepository struct {
	s *Store
}

func (r *customerRepository) Upsert(_ context.Context, c domain.Customer) error {
	if c.UID == "" {
		return fmt.Errorf("uid is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := c.LastSeenAt
	if seen.IsZero() {
		seen = r.s.now()
	}

	existing, ok := r.s.customers[c.UID]
	if !ok {
		existing = domain.Customer{UID: c.UID, CreatedAt: seen}
	}
	existing.Email = c.Email
	existing.Name = c.Name
	existing.LastSeenAt = seen
	r.s.customers[c.UID] = existing

	return nil
}

func (r *customerRepository) List(_ context.Context) ([]domain.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	customers := slices.Collect(maps.Values(r.s.customers))
	slices.SortFunc(customers, func(a, b domain.Customer) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.UID, b.UID)
	})

	return customers, nil
}

func (r *customerRepository) GetAdmin(_ context.Context, uid string) (domain.AdminProfile, error) {
	if uid == "" {
		return domain.AdminProfile{}, fmt.Errorf("uid is empty")
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	admin, ok := r.s.admins[uid]
	if !ok {
		return domain.AdminProfile{}, fmt.Errorf("admin[%s]: %w", uid, domain.ErrNotFound)
	}

	return admin, nil
}

func (r *customerRepository) AddAdmin(_ context.Context, a domain.AdminProfile) error {
	if a.UID == "" {
		return fmt.Errorf("uid is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.admins[a.UID]; ok {
		a.CreatedAt = existing.CreatedAt
	} else if a.CreatedAt.IsZero() {
		a.CreatedAt = r.s.now()
	}
	r.s.admins[a.UID] = a

	return nil
}

type subscriberRepository struct {
	s *Store
}

func (r *subscriberRepository) Add(_ context.Context, sub domain.Subscriber) error {
	if sub.Email == "" {
		return fmt.Errorf("email is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.subscribers[sub.Email]; ok {
		return fmt.Errorf("subscriber[%s]: %w", sub.Email, domain.ErrAlreadySubscribed)
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = r.s.now()
	}
	r.s.subscribers[sub.Email] = sub

	return nil
}

func (r *subscriberRepository) List(_ context.Context) ([]domain.Subscriber, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	subscribers := slices.Collect(maps.Values(r.s.subscribers))
	slices.SortFunc(subscribers, func(a, b domain.Subscriber) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Email, b.Email)
	})

	return subscribers, nil
}

type auditRepository struct {
	s *Store
}

func (r *auditRepository) Append(_ context.Context, e domain.AuditEntry) error {
	if e.Action == "" {
		return fmt.Errorf("action is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = r.s.now()
	}
	r.s.audit = append(r.s.audit, e)

	return nil
}

func (r *auditRepository) List(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := slices.Clone(r.s.audit)
	slices.Reverse(entries)
	slices.SortStableFunc(entries, func(a, b domain.AuditEntry) int { return b.At.Compare(a.At) })

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

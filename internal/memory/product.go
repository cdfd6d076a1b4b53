package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

type productRepository struct {
	s *Store
}

func (r *productRepository) List(_ context.Context, query port.ProductQuery) ([]domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Product
	for _, p := range r.s.products {
		if query.Collection != "" && p.Collection != query.Collection {
			continue
		}
		if query.Status != "" && p.Status != query.Status {
			continue
		}
		out = append(out, cloneProduct(p))
	}

	slices.SortFunc(out, func(a, b domain.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return out, nil
}

func (r *productRepository) Get(_ context.Context, productID string) (domain.Product, error) {
	if productID == "" {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	return cloneProduct(p), nil
}

func (r *productRepository) GetSnapshots(_ context.Context, productIDs []string) (map[string]domain.ProductSnapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	snapshots := make(map[string]domain.ProductSnapshot, len(productIDs))
	for _, id := range productIDs {
		if p, ok := r.s.products[id]; ok {
			snapshots[id] = cloneProduct(p).Snapshot()
		}
	}

	return snapshots, nil
}

func (r *productRepository) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[p.ID]; ok {
		return domain.Product{}, fmt.Errorf("product[%s] exists: %w", p.ID, domain.ErrConflict)
	}

	now := r.s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.s.products[p.ID] = cloneProduct(p)

	return cloneProduct(p), nil
}

func (r *productRepository) Update(_ context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.products[p.ID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", p.ID, domain.ErrNotFound)
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.products[p.ID] = cloneProduct(p)

	return cloneProduct(p), nil
}

func (r *productRepository) Delete(_ context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, fmt.Errorf("productID is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[productID]; !ok {
		return false, nil
	}
	delete(r.s.products, productID)

	return true, nil
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = slices.Clone(p.Images)
	p.Sizes = slices.Clone(p.Sizes)
	p.Colors = slices.Clone(p.Colors)
	return p
}

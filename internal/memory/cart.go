package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/snexa/internal/domain"
)

type cartRepository struct {
	s *Store
}

func (r *cartRepository) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return domain.Cart{
		OwnerID: ownerID,
		Lines:   slices.Clone(r.s.cartLines[ownerID]),
	}, nil
}

func (r *cartRepository) AddItem(_ context.Context, ownerID string, item domain.CartLine) (domain.CartLine, error) {
	if ownerID == "" {
		return domain.CartLine{}, fmt.Errorf("ownerID is empty")
	}
	if item.ProductID == "" {
		return domain.CartLine{}, fmt.Errorf("productID is empty")
	}
	if err := domain.ValidateQuantity(item.Quantity); err != nil {
		return domain.CartLine{}, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	lines := r.s.cartLines[ownerID]

	for i, line := range lines {
		if line.SameSelection(item.ProductID, item.Size, item.Color) {
			quantity, err := domain.MergeQuantity(line.Quantity, item.Quantity)
			if err != nil {
				return domain.CartLine{}, err
			}
			lines[i].Quantity = quantity
			lines[i].UpdatedAt = now
			return lines[i], nil
		}
	}

	if len(lines) >= domain.MaxCartLines {
		return domain.CartLine{}, fmt.Errorf("cart has %d lines, max %d: %w", len(lines), domain.MaxCartLines, domain.ErrInvalidInput)
	}

	line := domain.CartLine{
		ID:        uuid.NewString(),
		ProductID: item.ProductID,
		Size:      item.Size,
		Color:     item.Color,
		Quantity:  item.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.cartLines[ownerID] = append(lines, line)

	return line, nil
}

func (r *cartRepository) UpdateQuantity(_ context.Context, ownerID, lineID string, quantity int) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return false, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	lines := r.s.cartLines[ownerID]
	i := slices.IndexFunc(lines, func(l domain.CartLine) bool { return l.ID == lineID })
	if i < 0 {
		return false, nil
	}

	lines[i].Quantity = quantity
	lines[i].UpdatedAt = r.s.now()

	return true, nil
}

func (r *cartRepository) DeleteItem(_ context.Context, ownerID, lineID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.deleteLines(ownerID, []string{lineID}) > 0, nil
}

func (r *cartRepository) Clear(_ context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := len(r.s.cartLines[ownerID])
	delete(r.s.cartLines, ownerID)

	return int64(n), nil
}

// deleteLines must be called with mu held.
func (s *Store) deleteLines(ownerID string, lineIDs []string) int {
	lines := s.cartLines[ownerID]
	kept := lines[:0:0]
	for _, line := range lines {
		if !slices.Contains(lineIDs, line.ID) {
			kept = append(kept, line)
		}
	}
	s.cartLines[ownerID] = kept

	return len(lines) - len(kept)
}

package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/nikolayk812/snexa/internal/domain"
)

type orderRepository struct {
	s *Store
}

func (r *orderRepository) PlaceOrder(_ context.Context, order domain.Order, cartLineIDs []string) error {
	if order.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order has no items: %w", domain.ErrEmptyCart)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[order.ID]; ok {
		return fmt.Errorf("order[%s] exists: %w", order.ID, domain.ErrConflict)
	}
	if _, ok := r.s.orderNumber[order.Number]; ok {
		return fmt.Errorf("order number[%s] is taken: %w", order.Number, domain.ErrConflict)
	}

	present := 0
	for _, line := range r.s.cartLines[order.OwnerID] {
		if slices.Contains(cartLineIDs, line.ID) {
			present++
		}
	}
	if present != len(cartLineIDs) {
		return fmt.Errorf("cart changed during checkout: %w", domain.ErrConflict)
	}

	r.s.deleteLines(order.OwnerID, cartLineIDs)

	order.Items = slices.Clone(order.Items)
	r.s.orders[order.ID] = order
	r.s.orderIDs = append(r.s.orderIDs, order.ID)
	r.s.orderNumber[order.Number] = order.ID

	return nil
}

func (r *orderRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listOrders(func(o domain.Order) bool { return o.OwnerID == ownerID }), nil
}

func (r *orderRepository) ListAll(_ context.Context) ([]domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listOrders(func(domain.Order) bool { return true }), nil
}

func (r *orderRepository) Get(_ context.Context, orderID string) (domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	order, ok := r.s.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}
	order.Items = slices.Clone(order.Items)

	return order, nil
}

func (r *orderRepository) UpdateStatus(_ context.Context, orderID string, from, to domain.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	order, ok := r.s.orders[orderID]
	if !ok {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}
	if order.Status != from {
		return fmt.Errorf("order[%s] status is %s, not %s: %w", orderID, order.Status, from, domain.ErrConflict)
	}

	order.Status = to
	order.UpdatedAt = r.s.now()
	r.s.orders[orderID] = order

	return nil
}

// listOrders returns matching orders newest first. mu must be held.
func (s *Store) listOrders(match func(domain.Order) bool) []domain.Order {
	var out []domain.Order
	for i := len(s.orderIDs) - 1; i >= 0; i-- {
		o := s.orders[s.orderIDs[i]]
		if !match(o) {
			continue
		}
		o.Items = slices.Clone(o.Items)
		out = append(out, o)
	}

	slices.SortStableFunc(out, func(a, b domain.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out
}

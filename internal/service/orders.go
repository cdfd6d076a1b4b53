package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"go.opentelemetry.io/otel/attribute"
)

type OrderService struct {
	orders port.OrderRepository
	obs    *Observer
}

func NewOrderService(orders port.OrderRepository, obs *Observer) (*OrderService, error) {
	if orders == nil {
		return nil, fmt.Errorf("order repository is nil")
	}
	if obs == nil {
		obs = nopObserver()
	}
	return &OrderService{orders: orders, obs: obs}, nil
}

// List returns the identity's orders newest first, items included.
func (s *OrderService) List(ctx context.Context, identity domain.Identity) (_ []domain.Order, err error) {
	ctx, done := s.obs.start(ctx, "orders.list", attribute.String("uid", identity.UID))
	defer done(&err)

	if identity.IsAnonymous() {
		return nil, domain.ErrNoIdentity
	}

	orders, err := s.orders.ListByOwner(ctx, identity.UID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListByOwner: %w", err)
	}

	return orders, nil
}

// Get hides orders of other customers behind domain.ErrNotFound.
func (s *OrderService) Get(ctx context.Context, identity domain.Identity, orderID string) (_ domain.Order, err error) {
	ctx, done := s.obs.start(ctx, "orders.get",
		attribute.String("uid", identity.UID),
		attribute.String("order_id", orderID),
	)
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Order{}, domain.ErrNoIdentity
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("orders.Get: %w", err)
	}
	if order.OwnerID != identity.UID {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	return order, nil
}

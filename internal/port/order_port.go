package port

import (
	"context"

	"github.com/nikolayk812/snexa/internal/domain"
)

type OrderRepository interface {
	// PlaceOrder stores the order with its items and deletes exactly the given
	// cart lines of the order owner, all or nothing.
	PlaceOrder(ctx context.Context, order domain.Order, cartLineIDs []string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Order, error)
	Get(ctx context.Context, orderID string) (domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UpdateStatus sets the status only while it still equals from.
	UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error
}

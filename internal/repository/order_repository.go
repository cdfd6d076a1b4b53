package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/db"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func (r *orderRepository) PlaceOrder(ctx context.Context, order domain.Order, cartLineIDs []string) error {
	if order.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order has no items: %w", domain.ErrEmptyCart)
	}

	orderID, err := uuid.Parse(order.ID)
	if err != nil {
		return fmt.Errorf("order id[%s] is not valid: %w", order.ID, err)
	}

	lineIDs := make([]uuid.UUID, 0, len(cartLineIDs))
	for _, s := range cartLineIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("cart line id[%s] is not valid: %w", s, err)
		}
		lineIDs = append(lineIDs, id)
	}

	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	_, err = withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		err := q.CreateOrder(ctx, db.CreateOrderParams{
			ID:              orderID,
			OrderNumber:     order.Number,
			OwnerID:         order.OwnerID,
			SubtotalAmount:  order.Subtotal.Amount,
			ShippingAmount:  order.Shipping.Amount,
			TotalAmount:     order.Total.Amount,
			Currency:        order.Total.Currency.String(),
			PaymentMethod:   string(order.PaymentMethod),
			PaymentRef:      order.PaymentRef,
			ShippingAddress: address,
			Status:          string(order.Status),
			CreatedAt:       order.CreatedAt,
			UpdatedAt:       order.UpdatedAt,
		})
		if err != nil {
			if isUniqueViolation(err) {
				return struct{}{}, fmt.Errorf("order number[%s] is taken: %w", order.Number, domain.ErrConflict)
			}
			return struct{}{}, fmt.Errorf("q.CreateOrder: %w", err)
		}

		for i, item := range order.Items {
			itemID, err := uuid.Parse(item.ID)
			if err != nil {
				return struct{}{}, fmt.Errorf("order item id[%s] is not valid: %w", item.ID, err)
			}

			err = q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				ID:                itemID,
				OrderID:           orderID,
				Position:          int32(i),
				ProductID:         item.ProductID,
				Name:              item.Name,
				Size:              item.Size,
				Color:             item.Color,
				Quantity:          int32(item.Quantity),
				UnitPriceAmount:   item.UnitPrice.Amount,
				UnitPriceCurrency: item.UnitPrice.Currency.String(),
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.CreateOrderItem: %w", err)
			}
		}

		deleted, err := q.DeleteCartItems(ctx, db.DeleteCartItemsParams{
			OwnerID: order.OwnerID,
			Ids:     lineIDs,
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteCartItems: %w", err)
		}
		if deleted != int64(len(lineIDs)) {
			return struct{}{}, fmt.Errorf("cart changed during checkout: %w", domain.ErrConflict)
		}

		return struct{}{}, nil
	})

	return err
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.ListOrdersByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrdersByOwner: %w", err)
	}

	return r.withItems(ctx, rows)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.q.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrders: %w", err)
	}

	return r.withItems(ctx, rows)
}

func (r *orderRepository) Get(ctx context.Context, orderID string) (domain.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	row, err := r.q.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	orders, err := r.withItems(ctx, []db.Order{row})
	if err != nil {
		return domain.Order{}, err
	}

	return orders[0], nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	_, err = withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		rowsAffected, err := q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			ToStatus:   string(to),
			ID:         id,
			FromStatus: string(from),
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.UpdateOrderStatus: %w", err)
		}
		if rowsAffected > 0 {
			return struct{}{}, nil
		}

		current, err := q.GetOrder(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return struct{}{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
			}
			return struct{}{}, fmt.Errorf("q.GetOrder: %w", err)
		}

		return struct{}{}, fmt.Errorf("order[%s] status is %s, not %s: %w", orderID, current.Status, from, domain.ErrConflict)
	})

	return err
}

func (r *orderRepository) withItems(ctx context.Context, rows []db.Order) ([]domain.Order, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	itemRows, err := r.q.ListOrderItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrderItems: %w", err)
	}

	items := make(map[uuid.UUID][]domain.OrderItem, len(rows))
	for _, row := range itemRows {
		item, err := mapOrderItemToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapOrderItemToDomain: %w", err)
		}
		items[row.OrderID] = append(items[row.OrderID], item)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := mapOrderToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}
		order.Items = items[row.ID]
		orders = append(orders, order)
	}

	return orders, nil
}

func mapOrderToDomain(row db.Order) (domain.Order, error) {
	unit, err := parseCurrency(row.Currency)
	if err != nil {
		return domain.Order{}, err
	}

	var address domain.ShippingAddress
	if err := json.Unmarshal(row.ShippingAddress, &address); err != nil {
		return domain.Order{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return domain.Order{
		ID:              row.ID.String(),
		Number:          row.OrderNumber,
		OwnerID:         row.OwnerID,
		Subtotal:        domain.NewMoney(row.SubtotalAmount, unit),
		Shipping:        domain.NewMoney(row.ShippingAmount, unit),
		Total:           domain.NewMoney(row.TotalAmount, unit),
		PaymentMethod:   domain.PaymentMethod(row.PaymentMethod),
		PaymentRef:      row.PaymentRef,
		ShippingAddress: address,
		Status:          domain.OrderStatus(row.Status),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

func mapOrderItemToDomain(row db.OrderItem) (domain.OrderItem, error) {
	unit, err := parseCurrency(row.UnitPriceCurrency)
	if err != nil {
		return domain.OrderItem{}, err
	}

	return domain.OrderItem{
		ID:        row.ID.String(),
		OrderID:   row.OrderID.String(),
		ProductID: row.ProductID,
		Name:      row.Name,
		Size:      row.Size,
		Color:     row.Color,
		Quantity:  int(row.Quantity),
		UnitPrice: domain.NewMoney(row.UnitPriceAmount, unit),
	}, nil
}

func parseCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	return unit, nil
}

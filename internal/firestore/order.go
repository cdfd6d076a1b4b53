package firestore

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"golang.org/x/text/currency"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type OrderRepository struct {
	Client *firestore.Client
}

var _ port.OrderRepository = (*OrderRepository)(nil)

func NewOrder(client *firestore.Client) (*OrderRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	return &OrderRepository{Client: client}, nil
}

func (r *OrderRepository) col() *firestore.CollectionRef {
	return r.Client.Collection(colOrders)
}

type orderDoc struct {
	UserID          string             `firestore:"user_id"`
	OrderNumber     string             `firestore:"order_number"`
	Status          string             `firestore:"status"`
	SubtotalAmount  float64            `firestore:"subtotal_amount"`
	ShippingAmount  float64            `firestore:"shipping_amount"`
	TotalAmount     float64            `firestore:"total_amount"`
	Currency        string             `firestore:"currency"`
	PaymentMethod   string             `firestore:"payment_method"`
	PaymentID       string             `firestore:"payment_id"`
	ShippingAddress shippingAddressDoc `firestore:"shipping_address"`
	CreatedAt       time.Time          `firestore:"created_at"`
	UpdatedAt       time.Time          `firestore:"updated_at"`
}

type shippingAddressDoc struct {
	FullName string `firestore:"fullName"`
	Phone    string `firestore:"phone"`
	Email    string `firestore:"email"`
	Address  string `firestore:"address"`
	City     string `firestore:"city"`
	State    string `firestore:"state"`
	Pincode  string `firestore:"pincode"`
}

type orderItemDoc struct {
	OrderID       string  `firestore:"order_id"`
	Position      int     `firestore:"position"`
	ProductID     string  `firestore:"product_id"`
	Name          string  `firestore:"name"`
	SelectedSize  string  `firestore:"selected_size"`
	SelectedColor string  `firestore:"selected_color"`
	Quantity      int     `firestore:"quantity"`
	Price         float64 `firestore:"price"`
	Currency      string  `firestore:"currency"`
}

type orderNumberDoc struct {
	OrderID string `firestore:"order_id"`
}

// PlaceOrder writes the order, its items and a reservation of the order number
// and deletes the consumed cart lines in a single transaction.
func (r *OrderRepository) PlaceOrder(ctx context.Context, order domain.Order, cartLineIDs []string) error {
	if order.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order has no items: %w", domain.ErrEmptyCart)
	}

	// order, number reservation, items and line deletes
	if writes := 2 + len(order.Items) + len(cartLineIDs); writes > maxTxWrites {
		return fmt.Errorf("order needs %d writes, max %d: %w", writes, maxTxWrites, domain.ErrInvalidInput)
	}

	orderRef := r.col().Doc(order.ID)
	numberRef := r.Client.Collection(colOrderNumbers).Doc(order.Number)
	carts := r.Client.Collection(colCartItems)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		lineRefs := make([]*firestore.DocumentRef, 0, len(cartLineIDs))
		for _, id := range cartLineIDs {
			ref := carts.Doc(id)
			snap, err := tx.Get(ref)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return fmt.Errorf("cart line[%s] is gone: %w", id, domain.ErrConflict)
				}
				return fmt.Errorf("tx.Get: %w", err)
			}

			var line cartItemDoc
			if err := snap.DataTo(&line); err != nil {
				return fmt.Errorf("DataTo: %w", err)
			}
			if line.UserID != order.OwnerID {
				return fmt.Errorf("cart line[%s] belongs to another owner: %w", id, domain.ErrConflict)
			}
			lineRefs = append(lineRefs, ref)
		}

		if err := tx.Create(orderRef, orderToDoc(order)); err != nil {
			return fmt.Errorf("tx.Create order: %w", err)
		}
		if err := tx.Create(numberRef, orderNumberDoc{OrderID: order.ID}); err != nil {
			return fmt.Errorf("tx.Create order number: %w", err)
		}
		for i, item := range order.Items {
			itemRef := orderRef.Collection(colOrderItems).Doc(item.ID)
			if err := tx.Create(itemRef, orderItemToDoc(order.ID, i, item)); err != nil {
				return fmt.Errorf("tx.Create order item: %w", err)
			}
		}
		for _, ref := range lineRefs {
			if err := tx.Delete(ref); err != nil {
				return fmt.Errorf("tx.Delete: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("order[%s] number[%s] exists: %w", order.ID, order.Number, domain.ErrConflict)
		}
		return fmt.Errorf("RunTransaction: %w", err)
	}

	return nil
}

func (r *OrderRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	snaps, err := r.col().Where("user_id", "==", ownerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("orders.GetAll: %w", err)
	}

	return r.ordersFromSnapshots(ctx, snaps)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("orders.GetAll: %w", err)
	}

	return r.ordersFromSnapshots(ctx, snaps)
}

func (r *OrderRepository) Get(ctx context.Context, orderID string) (domain.Order, error) {
	if orderID == "" || strings.Contains(orderID, "/") {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	snap, err := r.col().Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("orders.Get: %w", err)
	}

	orders, err := r.ordersFromSnapshots(ctx, []*firestore.DocumentSnapshot{snap})
	if err != nil {
		return domain.Order{}, err
	}

	return orders[0], nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	if orderID == "" || strings.Contains(orderID, "/") {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	ref := r.col().Doc(orderID)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
			}
			return fmt.Errorf("tx.Get: %w", err)
		}

		var doc orderDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("DataTo: %w", err)
		}
		if domain.OrderStatus(doc.Status) != from {
			return fmt.Errorf("order[%s] status is %s, not %s: %w", orderID, doc.Status, from, domain.ErrConflict)
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(to)},
			{Path: "updated_at", Value: time.Now().UTC()},
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("RunTransaction: %w", err)
	}

	return nil
}

func (r *OrderRepository) ordersFromSnapshots(ctx context.Context, snaps []*firestore.DocumentSnapshot) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(snaps))

	for _, snap := range snaps {
		var doc orderDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("orders[%s].DataTo: %w", snap.Ref.ID, err)
		}

		order, err := doc.toDomain(snap.Ref.ID)
		if err != nil {
			return nil, err
		}

		itemSnaps, err := snap.Ref.Collection(colOrderItems).Documents(ctx).GetAll()
		if err != nil {
			return nil, fmt.Errorf("order_items.GetAll: %w", err)
		}

		type positioned struct {
			position int
			item     domain.OrderItem
		}
		items := make([]positioned, 0, len(itemSnaps))
		for _, itemSnap := range itemSnaps {
			var item orderItemDoc
			if err := itemSnap.DataTo(&item); err != nil {
				return nil, fmt.Errorf("order_items[%s].DataTo: %w", itemSnap.Ref.ID, err)
			}
			mapped, err := item.toDomain(itemSnap.Ref.ID, snap.Ref.ID, order.Total.Currency)
			if err != nil {
				return nil, err
			}
			items = append(items, positioned{position: item.Position, item: mapped})
		}
		slices.SortStableFunc(items, func(a, b positioned) int { return a.position - b.position })
		for _, p := range items {
			order.Items = append(order.Items, p.item)
		}

		orders = append(orders, order)
	}

	slices.SortFunc(orders, func(a, b domain.Order) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(b.ID, a.ID))
	})

	return orders, nil
}

func orderToDoc(o domain.Order) orderDoc {
	return orderDoc{
		UserID:         o.OwnerID,
		OrderNumber:    o.Number,
		Status:         string(o.Status),
		SubtotalAmount: toFloat(o.Subtotal.Amount),
		ShippingAmount: toFloat(o.Shipping.Amount),
		TotalAmount:    toFloat(o.Total.Amount),
		Currency:       o.Total.Currency.String(),
		PaymentMethod:  string(o.PaymentMethod),
		PaymentID:      o.PaymentRef,
		ShippingAddress: shippingAddressDoc{
			FullName: o.ShippingAddress.FullName,
			Phone:    o.ShippingAddress.Phone,
			Email:    o.ShippingAddress.Email,
			Address:  o.ShippingAddress.Address,
			City:     o.ShippingAddress.City,
			State:    o.ShippingAddress.State,
			Pincode:  o.ShippingAddress.Pincode,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func orderItemToDoc(orderID string, position int, it domain.OrderItem) orderItemDoc {
	return orderItemDoc{
		OrderID:       orderID,
		Position:      position,
		ProductID:     it.ProductID,
		Name:          it.Name,
		SelectedSize:  it.Size,
		SelectedColor: it.Color,
		Quantity:      it.Quantity,
		Price:         toFloat(it.UnitPrice.Amount),
		Currency:      it.UnitPrice.Currency.String(),
	}
}

func (d orderDoc) toDomain(id string) (domain.Order, error) {
	unit, err := parseCurrency(d.Currency)
	if err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		ID:            id,
		Number:        d.OrderNumber,
		OwnerID:       d.UserID,
		Subtotal:      domain.NewMoney(fromFloat(d.SubtotalAmount), unit),
		Shipping:      domain.NewMoney(fromFloat(d.ShippingAmount), unit),
		Total:         domain.NewMoney(fromFloat(d.TotalAmount), unit),
		PaymentMethod: domain.PaymentMethod(d.PaymentMethod),
		PaymentRef:    d.PaymentID,
		ShippingAddress: domain.ShippingAddress{
			FullName: d.ShippingAddress.FullName,
			Phone:    d.ShippingAddress.Phone,
			Email:    d.ShippingAddress.Email,
			Address:  d.ShippingAddress.Address,
			City:     d.ShippingAddress.City,
			State:    d.ShippingAddress.State,
			Pincode:  d.ShippingAddress.Pincode,
		},
		Status:    domain.OrderStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func (d orderItemDoc) toDomain(id, orderID string, fallback currency.Unit) (domain.OrderItem, error) {
	unit := fallback
	if d.Currency != "" {
		parsed, err := parseCurrency(d.Currency)
		if err != nil {
			return domain.OrderItem{}, err
		}
		unit = parsed
	}

	return domain.OrderItem{
		ID:        id,
		OrderID:   orderID,
		ProductID: d.ProductID,
		Name:      d.Name,
		Size:      d.SelectedSize,
		Color:     d.SelectedColor,
		Quantity:  d.Quantity,
		UnitPrice: domain.NewMoney(fromFloat(d.Price), unit),
	}, nil
}

// parseCurrency treats a missing code as the storefront's rupee pricing.
func parseCurrency(code string) (currency.Unit, error) {
	if code == "" {
		return currency.INR, nil
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	return unit, nil
}

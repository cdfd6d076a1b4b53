package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodUPI PaymentMethod = "upi"
	PaymentMethodCOD PaymentMethod = "cod"
)

type Order struct {
	ID      string
	Number  string
	OwnerID string
	Items   []OrderItem

	Subtotal Money
	Shipping Money
	Total    Money

	PaymentMethod   PaymentMethod
	PaymentRef      string
	ShippingAddress ShippingAddress
	Status          OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Size      string
	Color     string
	Quantity  int
	UnitPrice Money
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("order status[%s] is not valid: %w", s, ErrInvalidInput)
	}
}

// CanTransitionTo follows the fulfilment order pending -> processing ->
// shipped -> delivered. Any order that is not delivered can be cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return false
	}
	if next == OrderStatusCancelled {
		return s != OrderStatusDelivered && s != OrderStatusCancelled
	}

	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing
	case OrderStatusProcessing:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

// Open reports whether the order still awaits delivery.
func (s OrderStatus) Open() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing || s == OrderStatusShipped
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch pm := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); pm {
	case PaymentMethodUPI, PaymentMethodCOD:
		return pm, nil
	default:
		return "", fmt.Errorf("payment method[%s] is not valid: %w", s, ErrInvalidInput)
	}
}

func (a ShippingAddress) Validate() error {
	required := []struct{ name, value string }{
		{"fullName", a.FullName},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("shipping address %s is empty: %w", f.name, ErrInvalidInput)
		}
	}
	return nil
}

// NewOrderID returns a time-ordered UUIDv7 string.
func NewOrderID() (uuid.UUID, error) {
	return uuid.NewV7()
}

// NewOrderNumber derives a human readable number from the order's UUIDv7:
// the calendar day plus the 48 random trailing bits, e.g. ORD-20261019-9F1C04A2B7E3.
func NewOrderNumber(id uuid.UUID, at time.Time) string {
	return "ORD-" + at.UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(id[10:]))
}

func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

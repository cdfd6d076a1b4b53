package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrCheckoutFailed is returned for store failures while placing an order.
// Nothing is persisted when it is returned.
var ErrCheckoutFailed = errors.New("checkout failed")

type CheckoutService struct {
	carts    *CartService
	orders   port.OrderRepository
	profiles port.ProfileRepository
	policy   domain.ShippingPolicy
	now      func() time.Time
	obs      *Observer
}

// NewCheckoutService accepts a nil profiles repository, which disables the
// saved address fallback.
func NewCheckoutService(carts *CartService, orders port.OrderRepository, profiles port.ProfileRepository, policy domain.ShippingPolicy, obs *Observer) (*CheckoutService, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service is nil")
	}
	if orders == nil {
		return nil, fmt.Errorf("order repository is nil")
	}
	if obs == nil {
		obs = nopObserver()
	}

	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		profiles: profiles,
		policy:   policy,
		now:      func() time.Time { return time.Now().UTC() },
		obs:      obs,
	}, nil
}

type CheckoutInput struct {
	PaymentMethod string
	// PaymentRef is the UPI id for upi payments.
	PaymentRef string
	// ShippingAddress falls back to the saved profile address when empty.
	ShippingAddress domain.ShippingAddress
}

// Quote is a pure function of the cart and the shipping policy.
func (s *CheckoutService) Quote(cart domain.Cart) domain.Totals {
	return s.policy.Quote(cart)
}

// PlaceOrder turns the current cart into a pending order. The order header,
// its items and the removal of exactly the quoted cart lines are stored as one
// unit. Each call with a non-empty cart creates a new order.
func (s *CheckoutService) PlaceOrder(ctx context.Context, identity domain.Identity, in CheckoutInput) (_ domain.Order, err error) {
	ctx, done := s.obs.start(ctx, "checkout.place_order", attribute.String("uid", identity.UID))
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Order{}, domain.ErrNoIdentity
	}

	method, err := domain.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return domain.Order{}, err
	}
	paymentRef := strings.TrimSpace(in.PaymentRef)
	if method == domain.PaymentMethodUPI && paymentRef == "" {
		return domain.Order{}, fmt.Errorf("upi id is empty: %w", domain.ErrInvalidInput)
	}
	if method == domain.PaymentMethodCOD {
		paymentRef = ""
	}

	address := in.ShippingAddress
	if address.IsZero() && s.profiles != nil {
		profile, err := s.profiles.Get(ctx, identity.UID)
		switch {
		case err == nil:
			address = profile.ShippingAddress(address.Email)
		case errors.Is(err, domain.ErrNotFound):
			// nothing saved, validation rejects the empty address
		default:
			return domain.Order{}, fmt.Errorf("%w: profiles.Get: %w", ErrCheckoutFailed, err)
		}
	}
	if strings.TrimSpace(address.Email) == "" {
		address.Email = identity.Email
	}
	if err := address.Validate(); err != nil {
		return domain.Order{}, err
	}

	cart, err := s.carts.load(ctx, identity)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}
	if cart.IsEmpty() {
		return domain.Order{}, domain.ErrEmptyCart
	}

	id, err := domain.NewOrderID()
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: domain.NewOrderID: %w", ErrCheckoutFailed, err)
	}

	now := s.now()
	totals := s.policy.Quote(cart)

	order := domain.Order{
		ID:              id.String(),
		Number:          domain.NewOrderNumber(id, now),
		OwnerID:         identity.UID,
		Items:           domain.OrderItemsFromCart(id.String(), cart, uuid.NewString),
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		PaymentMethod:   method,
		PaymentRef:      paymentRef,
		ShippingAddress: address,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("order.number", order.Number),
		attribute.Int("order.items", len(order.Items)),
	)

	if err := s.orders.PlaceOrder(ctx, order, cart.LineIDs()); err != nil {
		if isRejection(err) {
			return domain.Order{}, fmt.Errorf("orders.PlaceOrder: %w", err)
		}
		return domain.Order{}, fmt.Errorf("%w: orders.PlaceOrder: %w", ErrCheckoutFailed, err)
	}

	return order, nil
}

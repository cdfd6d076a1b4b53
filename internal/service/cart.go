package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/currency"
)

type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
	currency currency.Unit
	obs      *Observer
}

func NewCartService(carts port.CartRepository, products port.ProductRepository, unit currency.Unit, obs *Observer) (*CartService, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart repository is nil")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository is nil")
	}
	if obs == nil {
		obs = nopObserver()
	}

	return &CartService{
		carts:    carts,
		products: products,
		currency: unit,
		obs:      obs,
	}, nil
}

type AddLineInput struct {
	ProductID string
	Size      string
	Color     string
	// Quantity defaults to 1 when zero.
	Quantity int
}

// Reload reads every line of the identity and joins the current product
// snapshots. The anonymous identity always has an empty cart.
func (s *CartService) Reload(ctx context.Context, identity domain.Identity) (_ domain.Cart, err error) {
	ctx, done := s.obs.start(ctx, "cart.reload", attribute.String("uid", identity.UID))
	defer done(&err)

	return s.load(ctx, identity)
}

func (s *CartService) AddLine(ctx context.Context, identity domain.Identity, in AddLineInput) (_ domain.Cart, err error) {
	ctx, done := s.obs.start(ctx, "cart.add_line",
		attribute.String("uid", identity.UID),
		attribute.String("product_id", in.ProductID),
	)
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Cart{}, domain.ErrNoIdentity
	}

	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if err := domain.ValidateQuantity(in.Quantity); err != nil {
		return domain.Cart{}, err
	}

	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return domain.Cart{}, fmt.Errorf("productID is empty: %w", domain.ErrInvalidInput)
	}

	size, color := strings.TrimSpace(in.Size), strings.TrimSpace(in.Color)

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("products.Get: %w", err)
	}
	if product.Status != domain.ProductStatusActive {
		return domain.Cart{}, fmt.Errorf("product[%s] is not for sale: %w", productID, domain.ErrNotFound)
	}

	cart, err := s.carts.GetCart(ctx, identity.UID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.GetCart: %w", err)
	}
	if !cart.HasSelection(productID, size, color) && len(cart.Lines) >= domain.MaxCartLines {
		return domain.Cart{}, fmt.Errorf("cart has %d lines, max %d: %w", len(cart.Lines), domain.MaxCartLines, domain.ErrInvalidInput)
	}

	_, err = s.carts.AddItem(ctx, identity.UID, domain.CartLine{
		ProductID: productID,
		Size:      size,
		Color:     color,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.AddItem: %w", err)
	}

	return s.load(ctx, identity)
}

// UpdateLine sets the quantity of a line. A quantity of zero or below removes
// the line.
func (s *CartService) UpdateLine(ctx context.Context, identity domain.Identity, lineID string, quantity int) (_ domain.Cart, err error) {
	ctx, done := s.obs.start(ctx, "cart.update_line",
		attribute.String("uid", identity.UID),
		attribute.String("line_id", lineID),
		attribute.Int("quantity", quantity),
	)
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Cart{}, domain.ErrNoIdentity
	}

	if quantity <= 0 {
		if _, err := s.carts.DeleteItem(ctx, identity.UID, lineID); err != nil {
			return domain.Cart{}, fmt.Errorf("carts.DeleteItem: %w", err)
		}
		return s.load(ctx, identity)
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return domain.Cart{}, err
	}

	updated, err := s.carts.UpdateQuantity(ctx, identity.UID, lineID, quantity)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.UpdateQuantity: %w", err)
	}
	if !updated {
		return domain.Cart{}, fmt.Errorf("cart line[%s]: %w", lineID, domain.ErrNotFound)
	}

	return s.load(ctx, identity)
}

// RemoveLine deletes the line if it exists.
func (s *CartService) RemoveLine(ctx context.Context, identity domain.Identity, lineID string) (_ domain.Cart, err error) {
	ctx, done := s.obs.start(ctx, "cart.remove_line",
		attribute.String("uid", identity.UID),
		attribute.String("line_id", lineID),
	)
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Cart{}, domain.ErrNoIdentity
	}

	if _, err := s.carts.DeleteItem(ctx, identity.UID, lineID); err != nil {
		return domain.Cart{}, fmt.Errorf("carts.DeleteItem: %w", err)
	}

	return s.load(ctx, identity)
}

func (s *CartService) Clear(ctx context.Context, identity domain.Identity) (_ domain.Cart, err error) {
	ctx, done := s.obs.start(ctx, "cart.clear", attribute.String("uid", identity.UID))
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Cart{}, domain.ErrNoIdentity
	}

	if _, err := s.carts.Clear(ctx, identity.UID); err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Clear: %w", err)
	}

	return s.load(ctx, identity)
}

func (s *CartService) load(ctx context.Context, identity domain.Identity) (domain.Cart, error) {
	if identity.IsAnonymous() {
		return domain.Cart{Currency: s.currency}, nil
	}

	cart, err := s.carts.GetCart(ctx, identity.UID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.GetCart: %w", err)
	}
	cart.OwnerID = identity.UID
	cart.Currency = s.currency

	if cart.IsEmpty() {
		return cart, nil
	}

	ids := make([]string, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ProductID)
	}

	snapshots, err := s.products.GetSnapshots(ctx, ids)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("products.GetSnapshots: %w", err)
	}

	for i, line := range cart.Lines {
		snapshot, ok := snapshots[line.ProductID]
		if !ok {
			cart.Lines[i].Product = nil
			continue
		}
		cart.Lines[i].Product = &snapshot
	}

	return cart, nil
}

// isRejection reports whether err is a caller error rather than a store failure.
func isRejection(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && outcomeOf(err) == "rejected"
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"go.opentelemetry.io/otel/attribute"
)

type WishlistService struct {
	wishlists port.WishlistRepository
	products  port.ProductRepository
	obs       *Observer
}

func NewWishlistService(wishlists port.WishlistRepository, products port.ProductRepository, obs *Observer) (*WishlistService, error) {
	if wishlists == nil {
		return nil, fmt.Errorf("wishlist repository is nil")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository is nil")
	}
	if obs == nil {
		obs = nopObserver()
	}

	return &WishlistService{wishlists: wishlists, products: products, obs: obs}, nil
}

func (s *WishlistService) Reload(ctx context.Context, identity domain.Identity) (_ domain.Wishlist, err error) {
	ctx, done := s.obs.start(ctx, "wishlist.reload", attribute.String("uid", identity.UID))
	defer done(&err)

	return s.load(ctx, identity)
}

// Add lists the product once; adding a listed product changes nothing.
func (s *WishlistService) Add(ctx context.Context, identity domain.Identity, productID string) (_ domain.Wishlist, err error) {
	ctx, done := s.obs.start(ctx, "wishlist.add",
		attribute.String("uid", identity.UID),
		attribute.String("product_id", productID),
	)
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Wishlist{}, domain.ErrNoIdentity
	}

	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.Wishlist{}, fmt.Errorf("productID is empty: %w", domain.ErrInvalidInput)
	}

	if _, err := s.products.Get(ctx, productID); err != nil {
		return domain.Wishlist{}, fmt.Errorf("products.Get: %w", err)
	}

	if _, _, err := s.wishlists.Add(ctx, identity.UID, productID); err != nil {
		return domain.Wishlist{}, fmt.Errorf("wishlists.Add: %w", err)
	}

	return s.load(ctx, identity)
}

// Remove deletes every entry of the product, including legacy duplicates.
func (s *WishlistService) Remove(ctx context.Context, identity domain.Identity, productID string) (_ domain.Wishlist, err error) {
	ctx, done := s.obs.start(ctx, "wishlist.remove",
		attribute.String("uid", identity.UID),
		attribute.String("product_id", productID),
	)
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Wishlist{}, domain.ErrNoIdentity
	}

	if _, err := s.wishlists.Remove(ctx, identity.UID, strings.TrimSpace(productID)); err != nil {
		return domain.Wishlist{}, fmt.Errorf("wishlists.Remove: %w", err)
	}

	return s.load(ctx, identity)
}

func (s *WishlistService) load(ctx context.Context, identity domain.Identity) (domain.Wishlist, error) {
	if identity.IsAnonymous() {
		return domain.NewWishlist("", nil), nil
	}

	wishlist, err := s.wishlists.GetWishlist(ctx, identity.UID)
	if err != nil {
		return domain.Wishlist{}, fmt.Errorf("wishlists.GetWishlist: %w", err)
	}

	return wishlist, nil
}

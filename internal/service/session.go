package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

var ErrSessionClosed = fmt.Errorf("session closed: %w", domain.ErrNoIdentity)

// SessionProvider resolves bearer tokens into identities and opens sessions
// bound to them.
type SessionProvider struct {
	verifier  port.IdentityVerifier
	customers port.CustomerRepository
	carts     *CartService
	wishlists *WishlistService
	checkout  *CheckoutService
	now       func() time.Time
	obs       *Observer
}

func NewSessionProvider(
	verifier port.IdentityVerifier,
	customers port.CustomerRepository,
	carts *CartService,
	wishlists *WishlistService,
	checkout *CheckoutService,
	obs *Observer,
) (*SessionProvider, error) {
	if verifier == nil {
		return nil, fmt.Errorf("identity verifier is nil")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer repository is nil")
	}
	if carts == nil || wishlists == nil || checkout == nil {
		return nil, fmt.Errorf("services are nil")
	}
	if obs == nil {
		obs = nopObserver()
	}

	return &SessionProvider{
		verifier:  verifier,
		customers: customers,
		carts:     carts,
		wishlists: wishlists,
		checkout:  checkout,
		now:       func() time.Time { return time.Now().UTC() },
		obs:       obs,
	}, nil
}

// Resolve verifies the token and attaches the admin profile when the uid is
// listed as an admin. An empty token is the anonymous identity.
func (p *SessionProvider) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Anonymous(), nil
	}

	identity, err := p.verifier.Verify(ctx, token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("verifier.Verify: %w", err)
	}

	return p.Admit(ctx, identity)
}

// Admit attaches the admin profile to an identity whose token was already
// verified, e.g. by the JWT middleware.
func (p *SessionProvider) Admit(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	if identity.IsAnonymous() {
		return domain.Identity{}, fmt.Errorf("token has no uid: %w", domain.ErrNoIdentity)
	}

	admin, err := p.customers.GetAdmin(ctx, identity.UID)
	switch {
	case err == nil:
		identity.Admin = &admin
	case errors.Is(err, domain.ErrNotFound):
		identity.Admin = nil
	default:
		return domain.Identity{}, fmt.Errorf("customers.GetAdmin: %w", err)
	}

	return identity, nil
}

// SignIn resolves the token, records the customer and opens a loaded session.
func (p *SessionProvider) SignIn(ctx context.Context, token string) (_ *Session, err error) {
	ctx, done := p.obs.start(ctx, "session.sign_in")
	defer done(&err)

	if token == "" {
		return nil, domain.ErrNoIdentity
	}

	identity, err := p.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	return p.enter(ctx, identity)
}

// Enter records an identity resolved by middleware as a customer and opens a
// loaded session for it.
func (p *SessionProvider) Enter(ctx context.Context, identity domain.Identity) (_ *Session, err error) {
	ctx, done := p.obs.start(ctx, "session.enter")
	defer done(&err)

	if identity.IsAnonymous() {
		return nil, domain.ErrNoIdentity
	}

	return p.enter(ctx, identity)
}

func (p *SessionProvider) enter(ctx context.Context, identity domain.Identity) (*Session, error) {
	now := p.now()
	err := p.customers.Upsert(ctx, domain.Customer{
		UID:        identity.UID,
		Email:      identity.Email,
		Name:       identity.Name,
		CreatedAt:  now,
		LastSeenAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("customers.Upsert: %w", err)
	}

	return p.Open(ctx, identity)
}

// Open starts a session for an already resolved identity.
func (p *SessionProvider) Open(ctx context.Context, identity domain.Identity) (*Session, error) {
	s := &Session{
		identity:  identity,
		carts:     p.carts,
		wishlists: p.wishlists,
		checkout:  p.checkout,
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Session holds one identity with its current cart and wishlist views. Every
// mutation goes to the store and then replaces the held views with a fresh
// reload. Methods are safe for concurrent use and run one at a time.
type Session struct {
	mu sync.Mutex

	identity domain.Identity
	cart     domain.Cart
	wishlist domain.Wishlist
	cartOpen bool
	closed   bool

	carts     *CartService
	wishlists *WishlistService
	checkout  *CheckoutService
}

func (s *Session) Identity() domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *Session) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *Session) Wishlist() domain.Wishlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist
}

func (s *Session) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}

// ToggleCart flips the cart panel flag and returns the new value.
func (s *Session) ToggleCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = !s.cartOpen
	return s.cartOpen
}

func (s *Session) SetCartOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = open
}

func (s *Session) Quote() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Quote(s.cart)
}

func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	cart, err := s.carts.Reload(ctx, s.identity)
	if err != nil {
		return err
	}
	wishlist, err := s.wishlists.Reload(ctx, s.identity)
	if err != nil {
		return err
	}

	s.cart = cart
	s.wishlist = wishlist

	return nil
}

func (s *Session) AddToCart(ctx context.Context, in AddLineInput) error {
	return s.mutateCart(func(id domain.Identity) (domain.Cart, error) {
		return s.carts.AddLine(ctx, id, in)
	})
}

func (s *Session) UpdateCartLine(ctx context.Context, lineID string, quantity int) error {
	return s.mutateCart(func(id domain.Identity) (domain.Cart, error) {
		return s.carts.UpdateLine(ctx, id, lineID, quantity)
	})
}

func (s *Session) RemoveCartLine(ctx context.Context, lineID string) error {
	return s.mutateCart(func(id domain.Identity) (domain.Cart, error) {
		return s.carts.RemoveLine(ctx, id, lineID)
	})
}

func (s *Session) ClearCart(ctx context.Context) error {
	return s.mutateCart(func(id domain.Identity) (domain.Cart, error) {
		return s.carts.Clear(ctx, id)
	})
}

func (s *Session) AddToWishlist(ctx context.Context, productID string) error {
	return s.mutateWishlist(func(id domain.Identity) (domain.Wishlist, error) {
		return s.wishlists.Add(ctx, id, productID)
	})
}

func (s *Session) RemoveFromWishlist(ctx context.Context, productID string) error {
	return s.mutateWishlist(func(id domain.Identity) (domain.Wishlist, error) {
		return s.wishlists.Remove(ctx, id, productID)
	})
}

// PlaceOrder checks out the held identity's cart and reloads the cart view,
// which is empty afterwards unless lines were added concurrently.
func (s *Session) PlaceOrder(ctx context.Context, in CheckoutInput) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.Order{}, ErrSessionClosed
	}

	order, err := s.checkout.PlaceOrder(ctx, s.identity, in)
	if err != nil {
		return domain.Order{}, err
	}

	cart, err := s.carts.Reload(ctx, s.identity)
	if err != nil {
		return order, err
	}
	s.cart = cart
	s.cartOpen = false

	return order, nil
}

// Close drops the held views. Any later call fails with ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.identity = domain.Anonymous()
	s.cart = domain.Cart{}
	s.wishlist = domain.NewWishlist("", nil)
	s.cartOpen = false
}

func (s *Session) mutateCart(fn func(domain.Identity) (domain.Cart, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	cart, err := fn(s.identity)
	if err != nil {
		return err
	}
	s.cart = cart

	return nil
}

func (s *Session) mutateWishlist(fn func(domain.Identity) (domain.Wishlist, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	wishlist, err := fn(s.identity)
	if err != nil {
		return err
	}
	s.wishlist = wishlist

	return nil
}

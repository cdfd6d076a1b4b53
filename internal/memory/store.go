// Package memory keeps every repository in process memory behind one lock, so
// multi-collection writes such as checkout are atomic. It backs tests and
// STORE_BACKEND=memory runs.
package memory

import (
	"sync"
	"time"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	cartLines   map[string][]domain.CartLine
	wishlists   map[string][]domain.WishlistEntry
	orders      map[string]domain.Order
	orderIDs    []string
	orderNumber map[string]string
	products    map[string]domain.Product
	customers   map[string]domain.Customer
	admins      map[string]domain.AdminProfile
	profiles    map[string]domain.Profile
	subscribers map[string]domain.Subscriber
	audit       []domain.AuditEntry
	objects     map[string]object
}

type object struct {
	contentType string
	data        []byte
}

func NewStore() *Store {
	return &Store{
		now:         func() time.Time { return time.Now().UTC() },
		cartLines:   make(map[string][]domain.CartLine),
		wishlists:   make(map[string][]domain.WishlistEntry),
		orders:      make(map[string]domain.Order),
		orderNumber: make(map[string]string),
		products:    make(map[string]domain.Product),
		customers:   make(map[string]domain.Customer),
		admins:      make(map[string]domain.AdminProfile),
		profiles:    make(map[string]domain.Profile),
		subscribers: make(map[string]domain.Subscriber),
		objects:     make(map[string]object),
	}
}

func (s *Store) Carts() port.CartRepository {
	return &cartRepository{s: s}
}

func (s *Store) Wishlists() port.WishlistRepository {
	return &wishlistRepository{s: s}
}

func (s *Store) Orders() port.OrderRepository {
	return &orderRepository{s: s}
}

func (s *Store) Products() port.ProductRepository {
	return &productRepository{s: s}
}

func (s *Store) Customers() port.CustomerRepository {
	return &customerRepository{s: s}
}

func (s *Store) Profiles() port.ProfileRepository {
	return &profileRepository{s: s}
}

func (s *Store) Subscribers() port.SubscriberRepository {
	return &subscriberRepository{s: s}
}

func (s *Store) Audit() port.AuditRepository {
	return &auditRepository{s: s}
}

func (s *Store) Images() port.ImageStore {
	return &imageStore{s: s}
}

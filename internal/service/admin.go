package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/logging"
	"github.com/nikolayk812/snexa/internal/port"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const (
	MaxImageBytes = 5 << 20
	topProducts   = 5
)

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type AdminService struct {
	products    port.ProductRepository
	orders      port.OrderRepository
	customers   port.CustomerRepository
	subscribers port.SubscriberRepository
	audit       port.AuditRepository
	images      port.ImageStore
	currency    currency.Unit
	now         func() time.Time
	obs         *Observer
}

type AdminDeps struct {
	Products    port.ProductRepository
	Orders      port.OrderRepository
	Customers   port.CustomerRepository
	Subscribers port.SubscriberRepository
	Audit       port.AuditRepository
	Images      port.ImageStore
}

func NewAdminService(deps AdminDeps, unit currency.Unit, obs *Observer) (*AdminService, error) {
	var errs []error
	if deps.Products == nil {
		errs = append(errs, fmt.Errorf("product repository is nil"))
	}
	if deps.Orders == nil {
		errs = append(errs, fmt.Errorf("order repository is nil"))
	}
	if deps.Customers == nil {
		errs = append(errs, fmt.Errorf("customer repository is nil"))
	}
	if deps.Subscribers == nil {
		errs = append(errs, fmt.Errorf("subscriber repository is nil"))
	}
	if deps.Audit == nil {
		errs = append(errs, fmt.Errorf("audit repository is nil"))
	}
	if deps.Images == nil {
		errs = append(errs, fmt.Errorf("image store is nil"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = nopObserver()
	}

	return &AdminService{
		products:    deps.Products,
		orders:      deps.Orders,
		customers:   deps.Customers,
		subscribers: deps.Subscribers,
		audit:       deps.Audit,
		images:      deps.Images,
		currency:    unit,
		now:         func() time.Time { return time.Now().UTC() },
		obs:         obs,
	}, nil
}

type ProductInput struct {
	Name          string
	Description   string
	Collection    string
	SubCollection string
	Price         decimal.Decimal
	MRP           decimal.Decimal
	// Images keeps already uploaded image URLs.
	Images     []string
	Sizes      []string
	Colors     []string
	Stock      int
	Trending   bool
	NewArrival bool
	Status     string
}

type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type AdminInput struct {
	UID   string
	Name  string
	Email string
}

func (s *AdminService) ListProducts(ctx context.Context, identity domain.Identity) (_ []domain.Product, err error) {
	ctx, done := s.obs.start(ctx, "admin.list_products")
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx, port.ProductQuery{})
	if err != nil {
		return nil, fmt.Errorf("products.List: %w", err)
	}

	return products, nil
}

func (s *AdminService) CreateProduct(ctx context.Context, identity domain.Identity, in ProductInput) (_ domain.Product, err error) {
	ctx, done := s.obs.start(ctx, "admin.create_product")
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return domain.Product{}, err
	}

	product := s.productFromInput(in)
	if err := product.Validate(s.currency); err != nil {
		return domain.Product{}, err
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Create: %w", err)
	}

	s.record(ctx, identity, "product.create", map[string]any{"productId": created.ID, "name": created.Name})

	return created, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, identity domain.Identity, productID string, in ProductInput) (_ domain.Product, err error) {
	ctx, done := s.obs.start(ctx, "admin.update_product", attribute.String("product_id", productID))
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return domain.Product{}, err
	}

	existing, err := s.products.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Get: %w", err)
	}

	product := s.productFromInput(in)
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	if in.Images == nil {
		product.Images = existing.Images
	}
	if err := product.Validate(s.currency); err != nil {
		return domain.Product{}, err
	}

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Update: %w", err)
	}

	for _, url := range existing.Images {
		if !slices.Contains(updated.Images, url) {
			s.deleteImage(ctx, productID, url)
		}
	}

	s.record(ctx, identity, "product.update", map[string]any{"productId": updated.ID, "name": updated.Name})

	return updated, nil
}

// DeleteProduct removes the product and then its images, best effort.
func (s *AdminService) DeleteProduct(ctx context.Context, identity domain.Identity, productID string) (err error) {
	ctx, done := s.obs.start(ctx, "admin.delete_product", attribute.String("product_id", productID))
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return err
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return fmt.Errorf("products.Get: %w", err)
	}

	deleted, err := s.products.Delete(ctx, productID)
	if err != nil {
		return fmt.Errorf("products.Delete: %w", err)
	}
	if !deleted {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	for _, url := range product.Images {
		s.deleteImage(ctx, productID, url)
	}

	s.record(ctx, identity, "product.delete", map[string]any{"productId": productID, "name": product.Name})

	return nil
}

// UploadImage stores the image under products/{id}/ and appends its URL to the
// product. A product holds at most domain.MaxProductImages images.
func (s *AdminService) UploadImage(ctx context.Context, identity domain.Identity, productID string, upload ImageUpload) (_ domain.Product, err error) {
	ctx, done := s.obs.start(ctx, "admin.upload_image", attribute.String("product_id", productID))
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return domain.Product{}, err
	}

	ext, ok := imageTypes[upload.ContentType]
	if !ok {
		return domain.Product{}, fmt.Errorf("content type[%s] is not an image: %w", upload.ContentType, domain.ErrInvalidInput)
	}
	if len(upload.Data) == 0 || len(upload.Data) > MaxImageBytes {
		return domain.Product{}, fmt.Errorf("image size %d out of range: %w", len(upload.Data), domain.ErrInvalidInput)
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Get: %w", err)
	}
	if len(product.Images) >= domain.MaxProductImages {
		return domain.Product{}, fmt.Errorf("product[%s] has %d images: %w", productID, len(product.Images), domain.ErrInvalidInput)
	}

	objectPath := imageObjectPath(productID, uuid.NewString()+ext)

	url, err := s.images.Put(ctx, objectPath, upload.ContentType, upload.Data)
	if err != nil {
		return domain.Product{}, fmt.Errorf("images.Put: %w", err)
	}

	product.Images = append(product.Images, url)

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		if delErr := s.images.Delete(ctx, objectPath); delErr != nil {
			err = errors.Join(err, fmt.Errorf("images.Delete: %w", delErr))
		}
		return domain.Product{}, fmt.Errorf("products.Update: %w", err)
	}

	s.record(ctx, identity, "product.image_upload", map[string]any{"productId": productID, "file": path.Base(upload.FileName), "url": url})

	return updated, nil
}

func (s *AdminService) ListOrders(ctx context.Context, identity domain.Identity) (_ []domain.Order, err error) {
	ctx, done := s.obs.start(ctx, "admin.list_orders")
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders.ListAll: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus moves the order one step along its lifecycle. The store
// rejects the write with domain.ErrConflict when the status changed since it
// was read.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, identity domain.Identity, orderID string, to domain.OrderStatus) (_ domain.Order, err error) {
	ctx, done := s.obs.start(ctx, "admin.update_order_status",
		attribute.String("order_id", orderID),
		attribute.String("to", string(to)),
	)
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.Get: %w", err)
	}

	from := order.Status
	if !from.CanTransitionTo(to) {
		return domain.Order{}, fmt.Errorf("order status %s -> %s: %w", from, to, domain.ErrInvalidInput)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, from, to); err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateStatus: %w", err)
	}

	order.Status = to
	order.UpdatedAt = s.now()

	s.record(ctx, identity, "order.status", map[string]any{"orderId": orderID, "from": string(from), "to": string(to)})

	return order, nil
}

func (s *AdminService) ListCustomers(ctx context.Context, identity domain.Identity) (_ []domain.Customer, err error) {
	ctx, done := s.obs.start(ctx, "admin.list_customers")
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("customers.List: %w", err)
	}

	return customers, nil
}

// ListSubscribers returns newsletter subscribers newest first.
func (s *AdminService) ListSubscribers(ctx context.Context, identity domain.Identity) (_ []domain.Subscriber, err error) {
	ctx, done := s.obs.start(ctx, "admin.list_subscribers")
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	subscribers, err := s.subscribers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribers.List: %w", err)
	}

	return subscribers, nil
}

func (s *AdminService) AddAdmin(ctx context.Context, identity domain.Identity, in AdminInput) (_ domain.AdminProfile, err error) {
	ctx, done := s.obs.start(ctx, "admin.add_admin")
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return domain.AdminProfile{}, err
	}

	uid := strings.TrimSpace(in.UID)
	if uid == "" {
		return domain.AdminProfile{}, fmt.Errorf("uid is empty: %w", domain.ErrInvalidInput)
	}

	email := strings.TrimSpace(in.Email)
	if email != "" {
		normalized, err := domain.NormalizeEmail(email)
		if err != nil {
			return domain.AdminProfile{}, err
		}
		email = normalized
	}

	profile := domain.AdminProfile{
		UID:       uid,
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		CreatedAt: s.now(),
	}

	if err := s.customers.AddAdmin(ctx, profile); err != nil {
		return domain.AdminProfile{}, fmt.Errorf("customers.AddAdmin: %w", err)
	}

	s.record(ctx, identity, "admin.add", map[string]any{"uid": uid, "email": email})

	return profile, nil
}

func (s *AdminService) Analytics(ctx context.Context, identity domain.Identity) (_ domain.Summary, err error) {
	ctx, done := s.obs.start(ctx, "admin.analytics")
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return domain.Summary{}, err
	}

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("orders.ListAll: %w", err)
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("customers.List: %w", err)
	}

	return domain.Summarize(orders, len(customers), s.currency, topProducts), nil
}

func (s *AdminService) AuditLog(ctx context.Context, identity domain.Identity, limit int) (_ []domain.AuditEntry, err error) {
	ctx, done := s.obs.start(ctx, "admin.audit_log")
	defer done(&err)

	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	entries, err := s.audit.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("audit.List: %w", err)
	}

	return entries, nil
}

func (s *AdminService) productFromInput(in ProductInput) domain.Product {
	status := domain.ProductStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if status == "" {
		status = domain.ProductStatusActive
	}

	name := strings.TrimSpace(in.Name)

	return domain.Product{
		Name:          name,
		Slug:          domain.Slugify(name),
		Description:   strings.TrimSpace(in.Description),
		Collection:    strings.TrimSpace(in.Collection),
		SubCollection: strings.TrimSpace(in.SubCollection),
		Price:         domain.NewMoney(in.Price, s.currency),
		MRP:           domain.NewMoney(in.MRP, s.currency),
		Images:        slices.Clone(in.Images),
		Sizes:         trimAll(in.Sizes),
		Colors:        trimAll(in.Colors),
		Stock:         in.Stock,
		Trending:      in.Trending,
		NewArrival:    in.NewArrival,
		Status:        status,
	}
}

// record appends an audit entry. The mutation already happened, so failures
// are only logged.
func (s *AdminService) record(ctx context.Context, identity domain.Identity, action string, payload map[string]any) {
	err := s.audit.Append(ctx, domain.AuditEntry{
		ID:      uuid.NewString(),
		Action:  action,
		Actor:   identity.UID,
		Payload: payload,
		At:      s.now(),
	})
	if err != nil {
		logging.FromContextOr(ctx, s.obs.log).Warn("audit_append_failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (s *AdminService) deleteImage(ctx context.Context, productID, url string) {
	objectPath, ok := imagePathFromURL(productID, url)
	if !ok {
		return
	}
	if err := s.images.Delete(ctx, objectPath); err != nil {
		logging.FromContextOr(ctx, s.obs.log).Warn("image_delete_failed",
			zap.String("path", objectPath),
			zap.Error(err),
		)
	}
}

func requireAdmin(identity domain.Identity) error {
	if identity.IsAnonymous() {
		return domain.ErrNoIdentity
	}
	if !identity.IsAdmin() {
		return fmt.Errorf("uid[%s] is not an admin: %w", identity.UID, domain.ErrForbidden)
	}
	return nil
}

func imageObjectPath(productID, file string) string {
	return "products/" + productID + "/" + file
}

// imagePathFromURL recovers the object path from a URL produced by the image
// store. URLs of other origins are left alone.
func imagePathFromURL(productID, url string) (string, bool) {
	prefix := imageObjectPath(productID, "")
	i := strings.Index(url, prefix)
	if i < 0 {
		return "", false
	}
	return url[i:], true
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

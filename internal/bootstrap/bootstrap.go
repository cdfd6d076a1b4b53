// Package bootstrap opens the configured backends shared by the api and
// newsletter processes.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/auth"
	"github.com/nikolayk812/snexa/internal/config"
	fs "github.com/nikolayk812/snexa/internal/firestore"
	"github.com/nikolayk812/snexa/internal/gcs"
	"github.com/nikolayk812/snexa/internal/mail"
	"github.com/nikolayk812/snexa/internal/memory"
	"github.com/nikolayk812/snexa/internal/port"
	"github.com/nikolayk812/snexa/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

const mailFromName = "SNEXA"

type Stores struct {
	Carts       port.CartRepository
	Wishlists   port.WishlistRepository
	Orders      port.OrderRepository
	Products    port.ProductRepository
	Customers   port.CustomerRepository
	Subscribers port.SubscriberRepository
	Profiles    port.ProfileRepository
	Audit       port.AuditRepository
	Images      port.ImageStore

	closers []func() error
}

// Close releases every client opened for the stores.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// OpenStores connects the repositories of cfg.StoreBackend and the image store.
func OpenStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*Stores, error) {
	var (
		stores *Stores
		err    error
	)

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		stores, err = openPostgres(ctx, cfg.DatabaseURL)
	case config.BackendFirestore:
		stores, err = openFirestore(ctx, cfg.FirestoreProjectID, cfg.CredentialsFile)
	case config.BackendMemory:
		stores = openMemory()
	default:
		err = fmt.Errorf("store backend[%s] is not supported", cfg.StoreBackend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.ImageBucket != "" {
		client, err := gcs.NewClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, errors.Join(err, stores.Close())
		}
		stores.closers = append(stores.closers, client.Close)

		images, err := gcs.NewImageStore(client, cfg.ImageBucket)
		if err != nil {
			return nil, errors.Join(err, stores.Close())
		}
		stores.Images = images
	}
	if stores.Images == nil {
		log.Warn("image_store_in_memory", zap.String("reason", "IMAGE_BUCKET is empty"))
		stores.Images = memory.NewStore().Images()
	}

	log.Info("stores_opened", zap.String("backend", cfg.StoreBackend))

	return stores, nil
}

func openPostgres(ctx context.Context, url string) (*Stores, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	s := &Stores{closers: []func() error{func() error { pool.Close(); return nil }}}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	s.Carts, err = repository.NewCart(pool)
	collect(err)
	s.Wishlists, err = repository.NewWishlist(pool)
	collect(err)
	s.Orders, err = repository.NewOrder(pool)
	collect(err)
	s.Products, err = repository.NewProduct(pool)
	collect(err)
	s.Customers, err = repository.NewCustomer(pool)
	collect(err)
	s.Subscribers, err = repository.NewSubscriber(pool)
	collect(err)
	s.Profiles, err = repository.NewProfile(pool)
	collect(err)
	s.Audit, err = repository.NewAudit(pool)
	collect(err)

	if err := errors.Join(errs...); err != nil {
		return nil, errors.Join(err, s.Close())
	}

	return s, nil
}

func openFirestore(ctx context.Context, projectID, credentialsFile string) (*Stores, error) {
	client, err := fs.NewClient(ctx, projectID, credentialsFile)
	if err != nil {
		return nil, err
	}

	s := &Stores{closers: []func() error{client.Close}}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	carts, err := fs.NewCart(client)
	collect(err)
	wishlists, err := fs.NewWishlist(client)
	collect(err)
	orders, err := fs.NewOrder(client)
	collect(err)
	products, err := fs.NewProduct(client)
	collect(err)
	customers, err := fs.NewCustomer(client)
	collect(err)
	subscribers, err := fs.NewSubscriber(client)
	collect(err)
	profiles, err := fs.NewProfile(client)
	collect(err)
	audit, err := fs.NewAudit(client)
	collect(err)

	if err := errors.Join(errs...); err != nil {
		return nil, errors.Join(err, s.Close())
	}

	s.Carts, s.Wishlists, s.Orders, s.Products = carts, wishlists, orders, products
	s.Customers, s.Subscribers, s.Profiles, s.Audit = customers, subscribers, profiles, audit

	return s, nil
}

func openMemory() *Stores {
	store := memory.NewStore()

	return &Stores{
		Carts:       store.Carts(),
		Wishlists:   store.Wishlists(),
		Orders:      store.Orders(),
		Products:    store.Products(),
		Customers:   store.Customers(),
		Subscribers: store.Subscribers(),
		Profiles:    store.Profiles(),
		Audit:       store.Audit(),
		Images:      store.Images(),
	}
}

// Verifier returns the identity verifier of cfg.AuthMode.
func Verifier(ctx context.Context, cfg config.Config) (port.IdentityVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthFirebase:
		v, err := auth.NewFirebaseVerifier(ctx, cfg.GCPProjectID, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return v, nil
	case config.AuthJWT:
		v, err := auth.NewHMACVerifier(cfg.JWTSecret)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("auth mode[%s] is not supported", cfg.AuthMode)
	}
}

// Mailer returns the SendGrid mailer, or a discarding one when no API key is
// configured.
func Mailer(cfg config.Config, log *zap.Logger) (port.Mailer, error) {
	if cfg.SendGridAPIKey == "" {
		log.Warn("mailer_disabled", zap.String("reason", "SENDGRID_API_KEY is empty"))
		return mail.Discard{}, nil
	}

	sg, err := mail.NewSendGrid(cfg.SendGridAPIKey, mailFromName, cfg.NewsletterFrom)
	if err != nil {
		return nil, err
	}
	return sg, nil
}

// InitPropagation installs the W3C trace context and baggage propagators.
func InitPropagation() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

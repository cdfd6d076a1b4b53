package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/nikolayk812/snexa/internal/bootstrap"
	"github.com/nikolayk812/snexa/internal/config"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/httpapi"
	"github.com/nikolayk812/snexa/internal/logging"
	"github.com/nikolayk812/snexa/internal/metrics"
	"github.com/nikolayk812/snexa/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snexa-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logging.NewLogger(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging.NewLogger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	systemLog := logging.WithTrace(log, "system", "system")

	bootstrap.InitPropagation()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg, systemLog)
	if err != nil {
		return fmt.Errorf("bootstrap.OpenStores: %w", err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			systemLog.Error("stores_close_error", zap.Error(err))
		}
	}()

	verifier, err := bootstrap.Verifier(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap.Verifier: %w", err)
	}

	m := metrics.New("snexa")
	obs := service.NewObserver(log, m)

	carts, err := service.NewCartService(stores.Carts, stores.Products, cfg.StoreCurrency, obs)
	if err != nil {
		return err
	}
	wishlists, err := service.NewWishlistService(stores.Wishlists, stores.Products, obs)
	if err != nil {
		return err
	}
	policy := domain.ShippingPolicy{
		FreeThreshold: cfg.FreeShippingThreshold,
		FlatFee:       cfg.FlatShippingFee,
	}
	checkout, err := service.NewCheckoutService(carts, stores.Orders, stores.Profiles, policy, obs)
	if err != nil {
		return err
	}
	orders, err := service.NewOrderService(stores.Orders, obs)
	if err != nil {
		return err
	}
	profiles, err := service.NewProfileService(stores.Profiles, obs)
	if err != nil {
		return err
	}
	catalog, err := service.NewCatalogService(stores.Products, obs)
	if err != nil {
		return err
	}
	admin, err := service.NewAdminService(service.AdminDeps{
		Products:    stores.Products,
		Orders:      stores.Orders,
		Customers:   stores.Customers,
		Subscribers: stores.Subscribers,
		Audit:       stores.Audit,
		Images:      stores.Images,
	}, cfg.StoreCurrency, obs)
	if err != nil {
		return err
	}
	sessions, err := service.NewSessionProvider(verifier, stores.Customers, carts, wishlists, checkout, obs)
	if err != nil {
		return err
	}

	var authenticate fiber.Handler
	if cfg.AuthMode == config.AuthJWT {
		authenticate = httpapi.JWT(cfg.JWTSecret)
	}

	app, err := httpapi.New(httpapi.Config{
		Log:              log,
		Metrics:          m,
		RequestTimeout:   cfg.RequestTimeout,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Authenticate:     authenticate,
	}, httpapi.Services{
		Sessions:  sessions,
		Catalog:   catalog,
		Carts:     carts,
		Wishlists: wishlists,
		Checkout:  checkout,
		Orders:    orders,
		Profiles:  profiles,
		Admin:     admin,
	})
	if err != nil {
		return fmt.Errorf("httpapi.New: %w", err)
	}

	systemLog.Info("auth_mode", zap.String("mode", cfg.AuthMode))

	return bootstrap.Serve(ctx, app, ":"+cfg.Port, cfg.ShutdownTimeout, systemLog)
}

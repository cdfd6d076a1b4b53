package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/snexa/internal/bootstrap"
	"github.com/nikolayk812/snexa/internal/config"
	"github.com/nikolayk812/snexa/internal/httpapi"
	"github.com/nikolayk812/snexa/internal/logging"
	"github.com/nikolayk812/snexa/internal/metrics"
	"github.com/nikolayk812/snexa/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snexa-newsletter: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logging.NewLogger(cfg.ServiceName+"-newsletter", cfg.Env, cfg.LogLevel)
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

	mailer, err := bootstrap.Mailer(cfg, systemLog)
	if err != nil {
		return fmt.Errorf("bootstrap.Mailer: %w", err)
	}

	m := metrics.New("snexa")
	newsletter, err := service.NewNewsletterService(stores.Subscribers, mailer, cfg.NewsletterAdminEmail, service.NewObserver(log, m))
	if err != nil {
		return err
	}

	app, err := httpapi.NewNewsletter(httpapi.Config{
		Log:              log,
		Metrics:          m,
		RequestTimeout:   cfg.RequestTimeout,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	}, newsletter)
	if err != nil {
		return fmt.Errorf("httpapi.NewNewsletter: %w", err)
	}

	return bootstrap.Serve(ctx, app, ":"+cfg.NewsletterPort, cfg.ShutdownTimeout, systemLog)
}

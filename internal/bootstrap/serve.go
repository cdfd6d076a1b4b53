package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Serve listens on addr until ctx is done, then shuts the app down within
// shutdownTimeout.
func Serve(ctx context.Context, app *fiber.App, addr string, shutdownTimeout time.Duration, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http_server_start", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("http_server_error", zap.Error(err))
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("http_server_shutdown_error", zap.Error(err))
		return err
	}

	if err := <-errCh; err != nil {
		log.Error("http_server_error", zap.Error(err))
		return err
	}

	log.Info("http_server_stopped")
	return nil
}

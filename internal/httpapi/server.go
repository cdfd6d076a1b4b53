// Package httpapi exposes the storefront and admin use cases over JSON HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/logging"
	"github.com/nikolayk812/snexa/internal/metrics"
	"github.com/nikolayk812/snexa/internal/service"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const bodyLimit = service.MaxImageBytes + 1<<20

type Config struct {
	Log              *zap.Logger
	Metrics          *metrics.Metrics
	RequestTimeout   time.Duration
	CORSAllowOrigins string

	// Authenticate runs before identity resolution on protected routes, e.g.
	// the JWT middleware. When nil the bearer token goes to the session
	// provider as is.
	Authenticate fiber.Handler
}

type Services struct {
	Sessions  *service.SessionProvider
	Catalog   *service.CatalogService
	Carts     *service.CartService
	Wishlists *service.WishlistService
	Checkout  *service.CheckoutService
	Orders    *service.OrderService
	Profiles  *service.ProfileService
	Admin     *service.AdminService
}

type handler struct {
	svc Services
	log *zap.Logger
}

// New builds the storefront API app.
func New(cfg Config, svc Services) (*fiber.App, error) {
	var errs []error
	if svc.Sessions == nil {
		errs = append(errs, fmt.Errorf("session provider is nil"))
	}
	if svc.Catalog == nil || svc.Carts == nil || svc.Wishlists == nil {
		errs = append(errs, fmt.Errorf("storefront services are nil"))
	}
	if svc.Checkout == nil || svc.Orders == nil {
		errs = append(errs, fmt.Errorf("order services are nil"))
	}
	if svc.Profiles == nil {
		errs = append(errs, fmt.Errorf("profile service is nil"))
	}
	if svc.Admin == nil {
		errs = append(errs, fmt.Errorf("admin service is nil"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	app := newApp(cfg, log)

	h := &handler{svc: svc, log: log}

	api := app.Group("/api/v1")
	api.Get("/products", h.browseProducts)
	api.Get("/products/:id", h.getProduct)

	auth := []fiber.Handler{}
	if cfg.Authenticate != nil {
		auth = append(auth, cfg.Authenticate)
	}
	auth = append(auth, resolveIdentity(svc.Sessions))

	protected := api.Group("", auth...)
	protected.Post("/session", h.signIn)

	protected.Get("/cart", h.getCart)
	protected.Delete("/cart", h.clearCart)
	protected.Post("/cart/lines", h.addCartLine)
	protected.Patch("/cart/lines/:id", h.updateCartLine)
	protected.Delete("/cart/lines/:id", h.removeCartLine)

	protected.Get("/wishlist", h.getWishlist)
	protected.Post("/wishlist", h.addToWishlist)
	protected.Delete("/wishlist/:productId", h.removeFromWishlist)

	protected.Get("/checkout/quote", h.quote)
	protected.Post("/checkout", h.placeOrder)

	protected.Get("/orders", h.listOrders)
	protected.Get("/orders/:id", h.getOrder)

	protected.Get("/profile", h.getProfile)
	protected.Put("/profile", h.saveProfile)

	admin := protected.Group("/admin")
	admin.Get("/products", h.adminListProducts)
	admin.Post("/products", h.adminCreateProduct)
	admin.Put("/products/:id", h.adminUpdateProduct)
	admin.Delete("/products/:id", h.adminDeleteProduct)
	admin.Post("/products/:id/images", h.adminUploadImage)
	admin.Get("/orders", h.adminListOrders)
	admin.Patch("/orders/:id/status", h.adminUpdateOrderStatus)
	admin.Get("/customers", h.adminListCustomers)
	admin.Get("/subscribers", h.adminListSubscribers)
	admin.Post("/admins", h.adminAddAdmin)
	admin.Get("/analytics", h.adminAnalytics)
	admin.Get("/audit", h.adminAuditLog)

	return app, nil
}

// newApp applies the middleware shared by every process: panic recovery,
// CORS, request ids, observability and the request deadline, plus the
// health and metrics endpoints.
func newApp(cfg Config, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	origins := cfg.CORSAllowOrigins
	if origins == "" {
		origins = "*"
	}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, traceparent, tracestate",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(requestid.New())
	app.Use(observe(log, cfg.Metrics))
	app.Use(withTimeout(cfg.RequestTimeout))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	return app
}

// observe extracts the W3C trace context, puts a request scoped logger into
// the user context and records HTTP metrics by route template.
func observe(base *zap.Logger, m *metrics.Metrics) fiber.Handler {
	prop := otel.GetTextMapPropagator()

	return func(c *fiber.Ctx) error {
		start := time.Now()

		ctx := prop.Extract(c.UserContext(), propagation.HeaderCarrier(http.Header(c.GetReqHeaders())))

		log := base.With(zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)))
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			log = logging.WithTrace(log, sc.TraceID().String(), sc.SpanID().String())
		}
		c.SetUserContext(logging.ContextWithLogger(ctx, log))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}
		m.ObserveHTTP(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start).Seconds())

		return err
	}
}

func withTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func errorHandler(base *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusOf(err)

		message := err.Error()
		if status >= fiber.StatusInternalServerError {
			logging.FromContextOr(c.UserContext(), base).Error("http_request_failed",
				zap.String("method", c.Method()),
				zap.String("route", c.Route().Path),
				zap.Int("status", status),
				zap.Error(err),
			)
			message = publicMessage(err)
		}

		return c.Status(status).JSON(fiber.Map{"message": message})
	}
}

func statusOf(err error) int {
	var fe *fiber.Error

	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNoIdentity):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrAlreadySubscribed):
		return fiber.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrCheckoutFailed):
		return "checkout failed"
	case errors.Is(err, domain.ErrDelivery):
		return "email sending failed"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return "internal error"
	}
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, domain.ErrInvalidInput)...)
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

package httpapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/service"
	"go.uber.org/zap"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

// NewNewsletter builds the standalone newsletter signup app.
func NewNewsletter(cfg Config, newsletter *service.NewsletterService) (*fiber.App, error) {
	if newsletter == nil {
		return nil, errors.New("newsletter service is nil")
	}

	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	app := newApp(cfg, log)

	app.Post("/api/newsletter", func(c *fiber.Ctx) error {
		var req subscribeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest("body: %s", err.Error())
		}
		if strings.TrimSpace(req.Email) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email required"})
		}

		err := newsletter.Subscribe(c.UserContext(), req.Email)
		switch {
		case err == nil:
			return c.JSON(fiber.Map{"success": true})
		case errors.Is(err, domain.ErrAlreadySubscribed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Already subscribed"})
		default:
			return err
		}
	})

	return app, nil
}

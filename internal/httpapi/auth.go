package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nikolayk812/snexa/internal/auth"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/logging"
	"github.com/nikolayk812/snexa/internal/service"
	"go.uber.org/zap"
)

const (
	tokenKey    = "user"
	identityKey = "identity"
)

// JWT validates HS256 bearer tokens and leaves the parsed token in
// Locals("user") for resolveIdentity.
func JWT(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		ContextKey:    tokenKey,
		ErrorHandler: func(_ *fiber.Ctx, err error) error {
			return fmt.Errorf("%s: %w", err.Error(), domain.ErrNoIdentity)
		},
	})
}

// resolveIdentity turns the request credentials into an identity with its
// admin profile. A token parsed by earlier middleware wins over the raw
// bearer header.
func resolveIdentity(sessions *service.SessionProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		var (
			identity domain.Identity
			err      error
		)

		if token, ok := c.Locals(tokenKey).(*jwt.Token); ok {
			identity, err = auth.TokenIdentity(token)
			if err != nil {
				return err
			}
			identity, err = sessions.Admit(ctx, identity)
		} else {
			raw := bearerToken(c)
			if raw == "" {
				return fmt.Errorf("missing bearer token: %w", domain.ErrNoIdentity)
			}
			identity, err = sessions.Resolve(ctx, raw)
		}
		if err != nil {
			return err
		}

		c.Locals(identityKey, identity)
		c.SetUserContext(logging.ContextWithLogger(ctx, logging.FromContext(ctx).With(zap.String("uid", identity.UID))))

		return c.Next()
	}
}

func identityFrom(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	if !ok || identity.IsAnonymous() {
		return domain.Identity{}, domain.ErrNoIdentity
	}
	return identity, nil
}

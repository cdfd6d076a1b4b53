package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

// Claim names read from HS256 tokens. user_id carries the customer uid.
const (
	ClaimUserID = "user_id"
	ClaimEmail  = "email"
	ClaimName   = "name"
)

type HMACVerifier struct {
	secret []byte
}

var _ port.IdentityVerifier = (*HMACVerifier)(nil)

func NewHMACVerifier(secret string) (*HMACVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	return &HMACVerifier{secret: []byte(secret)}, nil
}

func (v *HMACVerifier) Verify(_ context.Context, raw string) (domain.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Identity{}, fmt.Errorf("token is empty: %w", domain.ErrNoIdentity)
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: jwt.Parse: %w", domain.ErrNoIdentity, err)
	}

	return TokenIdentity(token)
}

// TokenIdentity maps a parsed, valid token to an identity.
func TokenIdentity(token *jwt.Token) (domain.Identity, error) {
	if token == nil {
		return domain.Identity{}, fmt.Errorf("token is nil: %w", domain.ErrNoIdentity)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, fmt.Errorf("unexpected claims %T: %w", token.Claims, domain.ErrNoIdentity)
	}

	uid := stringClaim(claims, ClaimUserID)
	if uid == "" {
		uid = stringClaim(claims, "sub")
	}
	if uid == "" {
		return domain.Identity{}, fmt.Errorf("token has no uid: %w", domain.ErrNoIdentity)
	}

	return domain.Identity{
		UID:   uid,
		Email: stringClaim(claims, ClaimEmail),
		Name:  stringClaim(claims, ClaimName),
	}, nil
}

// IssueToken signs an HS256 token for local and test identities.
func IssueToken(secret string, identity domain.Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret is empty")
	}
	if identity.IsAnonymous() {
		return "", fmt.Errorf("uid is empty")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		ClaimUserID: identity.UID,
		ClaimEmail:  identity.Email,
		ClaimName:   identity.Name,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("SignedString: %w", err)
	}

	return signed, nil
}

// Package auth turns bearer tokens into domain identities, either Firebase ID
// tokens or HS256 JWTs issued by this service.
package auth

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"google.golang.org/api/option"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type FirebaseVerifier struct {
	client idTokenVerifier
}

var _ port.IdentityVerifier = (*FirebaseVerifier)(nil)

// NewFirebaseVerifier uses application default credentials when
// credentialsFile is empty.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (domain.Identity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return domain.Identity{}, fmt.Errorf("token is empty: %w", domain.ErrNoIdentity)
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: VerifyIDToken: %w", domain.ErrNoIdentity, err)
	}

	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return domain.Identity{}, fmt.Errorf("token has no uid: %w", domain.ErrNoIdentity)
	}

	return domain.Identity{
		UID:   uid,
		Email: stringClaim(token.Claims, "email"),
		Name:  stringClaim(token.Claims, "name"),
	}, nil
}

func stringClaim(claims map[string]any, key string) string {
	if raw, ok := claims[key]; ok {
		if s, ok := raw.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACVerifier(t *testing.T) {
	const secret = "test-secret"

	v, err := NewHMACVerifier(secret)
	require.NoError(t, err)

	want := domain.Identity{UID: "u-42", Email: "asha@example.com", Name: "Asha"}

	signed, err := IssueToken(secret, want, time.Hour)
	require.NoError(t, err)

	got, err := v.Verify(t.Context(), signed)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "empty",
			token: func(*testing.T) string { return "" },
		},
		{
			name: "other secret",
			token: func(t *testing.T) string {
				s, err := IssueToken("other", want, time.Hour)
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				s, err := IssueToken(secret, want, -time.Minute)
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "no uid",
			token: func(t *testing.T) string {
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@y.z"}).SignedString([]byte(secret))
				require.NoError(t, err)
				return s
			},
		},
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not.a.jwt" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(t.Context(), tt.token(t))
			require.ErrorIs(t, err, domain.ErrNoIdentity)
		})
	}

	_, err = NewHMACVerifier("")
	require.Error(t, err)

	_, err = IssueToken(secret, domain.Anonymous(), time.Hour)
	require.Error(t, err)
}

func TestTokenIdentity_Subject(t *testing.T) {
	got, err := TokenIdentity(&jwt.Token{Claims: jwt.MapClaims{"sub": "u-7"}})
	require.NoError(t, err)
	assert.Equal(t, "u-7", got.UID)

	_, err = TokenIdentity(&jwt.Token{Claims: &jwt.RegisteredClaims{Subject: "u-7"}})
	require.ErrorIs(t, err, domain.ErrNoIdentity)
}

type stubIDTokens struct {
	token *fbauth.Token
	err   error
}

func (s stubIDTokens) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return s.token, s.err
}

func TestFirebaseVerifier(t *testing.T) {
	v := &FirebaseVerifier{client: stubIDTokens{token: &fbauth.Token{
		UID:    "fb-uid",
		Claims: map[string]any{"email": "ravi@example.com", "name": " Ravi "},
	}}}

	got, err := v.Verify(t.Context(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UID: "fb-uid", Email: "ravi@example.com", Name: "Ravi"}, got)

	_, err = v.Verify(t.Context(), " ")
	require.ErrorIs(t, err, domain.ErrNoIdentity)

	rejected := &FirebaseVerifier{client: stubIDTokens{err: errors.New("token expired")}}
	_, err = rejected.Verify(t.Context(), "id-token")
	require.ErrorIs(t, err, domain.ErrNoIdentity)

	noUID := &FirebaseVerifier{client: stubIDTokens{token: &fbauth.Token{}}}
	_, err = noUID.Verify(t.Context(), "id-token")
	require.ErrorIs(t, err, domain.ErrNoIdentity)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(kv map[string]string) func(string) string {
	return func(key string) string { return kv[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"JWT_SECRET": "s"}))
	require.NoError(t, err)

	assert.Equal(t, "snexa-api", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, AuthJWT, cfg.AuthMode)
	assert.Equal(t, "INR", cfg.StoreCurrency.String())
	assert.Equal(t, "999", cfg.FreeShippingThreshold.String())
	assert.Equal(t, "99", cfg.FlatShippingFee.String())
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "admin@snexa.com", cfg.NewsletterAdminEmail)
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantError []string
	}{
		{
			name: "postgres with firebase",
			env: map[string]string{
				"STORE_BACKEND":  "Postgres",
				"DATABASE_URL":   "postgres://localhost/snexa",
				"AUTH_MODE":      "firebase",
				"GCP_PROJECT_ID": "snexa-prod",
			},
		},
		{
			name: "firestore inherits project",
			env: map[string]string{
				"STORE_BACKEND":  "firestore",
				"GCP_PROJECT_ID": "snexa-prod",
				"AUTH_MODE":      "firebase",
			},
		},
		{
			name: "all errors reported together",
			env: map[string]string{
				"STORE_BACKEND":     "postgres",
				"AUTH_MODE":         "jwt",
				"STORE_CURRENCY":    "RUPEE",
				"FLAT_SHIPPING_FEE": "-1",
				"REQUEST_TIMEOUT":   "soon",
			},
			wantError: []string{
				"STORE_CURRENCY",
				"FLAT_SHIPPING_FEE",
				"REQUEST_TIMEOUT",
				"DATABASE_URL is required",
				"JWT_SECRET is required",
			},
		},
		{
			name:      "unknown backend",
			env:       map[string]string{"STORE_BACKEND": "mongo", "JWT_SECRET": "s"},
			wantError: []string{"STORE_BACKEND[mongo]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(env(tt.env))
			if len(tt.wantError) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantError {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "snexa-prod", cfg.FirestoreProjectID)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}

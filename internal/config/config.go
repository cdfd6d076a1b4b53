package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"

	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

type Config struct {
	ServiceName string
	Env         string
	Port        string
	LogLevel    string

	StoreBackend       string
	DatabaseURL        string
	GCPProjectID       string
	FirestoreProjectID string
	CredentialsFile    string

	AuthMode  string
	JWTSecret string

	ImageBucket string

	StoreCurrency         currency.Unit
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal

	RequestTimeout   time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins string

	SendGridAPIKey       string
	NewsletterFrom       string
	NewsletterAdminEmail string
	NewsletterPort       string
}

// Load reads an optional .env file and then the environment. Every invalid
// value is reported in the returned error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	var errs []error

	project := get("GCP_PROJECT_ID", "")

	cfg := Config{
		ServiceName: get("SERVICE_NAME", "snexa-api"),
		Env:         get("ENV", "dev"),
		Port:        get("PORT", "8080"),
		LogLevel:    get("LOG_LEVEL", "info"),

		StoreBackend:       strings.ToLower(get("STORE_BACKEND", BackendMemory)),
		DatabaseURL:        get("DATABASE_URL", ""),
		GCPProjectID:       project,
		FirestoreProjectID: get("FIRESTORE_PROJECT_ID", project),
		CredentialsFile:    get("GOOGLE_APPLICATION_CREDENTIALS", ""),

		AuthMode:  strings.ToLower(get("AUTH_MODE", AuthJWT)),
		JWTSecret: get("JWT_SECRET", ""),

		ImageBucket: get("IMAGE_BUCKET", ""),

		CORSAllowOrigins: get("CORS_ALLOW_ORIGINS", "*"),

		SendGridAPIKey:       get("SENDGRID_API_KEY", ""),
		NewsletterFrom:       get("NEWSLETTER_FROM", "hello@snexa.com"),
		NewsletterAdminEmail: get("NEWSLETTER_ADMIN_EMAIL", "admin@snexa.com"),
		NewsletterPort:       get("NEWSLETTER_PORT", "5000"),
	}

	unit, err := currency.ParseISO(get("STORE_CURRENCY", "INR"))
	if err != nil {
		errs = append(errs, fmt.Errorf("STORE_CURRENCY: %w", err))
	}
	cfg.StoreCurrency = unit

	cfg.FreeShippingThreshold, err = parseAmount(get("FREE_SHIPPING_THRESHOLD", "999"))
	if err != nil {
		errs = append(errs, fmt.Errorf("FREE_SHIPPING_THRESHOLD: %w", err))
	}
	cfg.FlatShippingFee, err = parseAmount(get("FLAT_SHIPPING_FEE", "99"))
	if err != nil {
		errs = append(errs, fmt.Errorf("FLAT_SHIPPING_FEE: %w", err))
	}

	cfg.RequestTimeout, err = time.ParseDuration(get("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT: %w", err))
	}
	cfg.ShutdownTimeout, err = time.ParseDuration(get("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for the postgres backend"))
		}
	case BackendFirestore:
		if cfg.FirestoreProjectID == "" {
			errs = append(errs, fmt.Errorf("FIRESTORE_PROJECT_ID or GCP_PROJECT_ID is required for the firestore backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND[%s] is not one of postgres, firestore, memory", cfg.StoreBackend))
	}

	switch cfg.AuthMode {
	case AuthJWT:
		if cfg.JWTSecret == "" {
			errs = append(errs, fmt.Errorf("JWT_SECRET is required for jwt auth"))
		}
	case AuthFirebase:
		if cfg.GCPProjectID == "" {
			errs = append(errs, fmt.Errorf("GCP_PROJECT_ID is required for firebase auth"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE[%s] is not one of firebase, jwt", cfg.AuthMode))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %s is negative", s)
	}
	return d, nil
}

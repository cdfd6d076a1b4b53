// Package firestore implements the repositories on Cloud Firestore using the
// collection layout of the storefront web client: cart_items, wishlist_items,
// orders/{id}/order_items, products, users, admins, newsletter_subscribers and
// auditLogs.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

const (
	colCartItems    = "cart_items"
	colWishlist     = "wishlist_items"
	colOrders       = "orders"
	colOrderItems   = "order_items"
	colOrderNumbers = "order_numbers"
	colProducts     = "products"
	colUsers        = "users"
	colAdmins       = "admins"
	colSubscribers  = "newsletter_subscribers"
	colAuditLogs    = "auditLogs"
	colProfiles     = "user_profiles"
)

// maxTxWrites is the Firestore limit on writes in one transaction.
const maxTxWrites = 500

// NewClient uses Application Default Credentials when credentialsFile is empty.
// FIRESTORE_EMULATOR_HOST is honoured by the client library itself.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}

	return client, nil
}

// Amounts are stored as numbers so documents written by the web client stay
// readable; values are rounded to paise on the way back.
func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func fromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

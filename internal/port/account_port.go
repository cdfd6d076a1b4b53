package port

import (
	"context"

	"github.com/nikolayk812/snexa/internal/domain"
)

type CustomerRepository interface {
	Upsert(ctx context.Context, customer domain.Customer) error
	List(ctx context.Context) ([]domain.Customer, error)
	// GetAdmin returns domain.ErrNotFound for non-admins.
	GetAdmin(ctx context.Context, uid string) (domain.AdminProfile, error)
	AddAdmin(ctx context.Context, admin domain.AdminProfile) error
}

type ProfileRepository interface {
	// Get returns domain.ErrNotFound when nothing was saved yet.
	Get(ctx context.Context, uid string) (domain.Profile, error)
	// Save replaces the stored profile of profile.UID.
	Save(ctx context.Context, profile domain.Profile) error
}

type SubscriberRepository interface {
	// Add returns domain.ErrAlreadySubscribed for a known email.
	Add(ctx context.Context, subscriber domain.Subscriber) error
	List(ctx context.Context) ([]domain.Subscriber, error)
}

type AuditRepository interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
	List(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

type Mailer interface {
	Send(ctx context.Context, m domain.Mail) error
}

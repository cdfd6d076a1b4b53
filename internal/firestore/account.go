package firestore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type CustomerRepository struct {
	Client *firestore.Client
}

var _ port.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomer(client *firestore.Client) (*CustomerRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	return &CustomerRepository{Client: client}, nil
}

type userDoc struct {
	Email      string    `firestore:"email"`
	Name       string    `firestore:"name"`
	CreatedAt  time.Time `firestore:"created_at"`
	LastSeenAt time.Time `firestore:"last_seen_at"`
}

type adminDoc struct {
	Name      string    `firestore:"name"`
	Email     string    `firestore:"email"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func (r *CustomerRepository) Upsert(ctx context.Context, c domain.Customer) error {
	if c.UID == "" {
		return fmt.Errorf("uid is empty")
	}

	seen := c.LastSeenAt
	if seen.IsZero() {
		seen = time.Now().UTC()
	}

	ref := r.Client.Collection(colUsers).Doc(c.UID)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc := userDoc{Email: c.Email, Name: c.Name, CreatedAt: seen, LastSeenAt: seen}

		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing userDoc
			if err := snap.DataTo(&existing); err != nil {
				return fmt.Errorf("DataTo: %w", err)
			}
			if !existing.CreatedAt.IsZero() {
				doc.CreatedAt = existing.CreatedAt
			}
		case status.Code(err) != codes.NotFound:
			return fmt.Errorf("tx.Get: %w", err)
		}

		return tx.Set(ref, doc)
	})
	if err != nil {
		return fmt.Errorf("RunTransaction: %w", err)
	}

	return nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	snaps, err := r.Client.Collection(colUsers).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("users.GetAll: %w", err)
	}

	customers := make([]domain.Customer, 0, len(snaps))
	for _, snap := range snaps {
		var doc userDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("users[%s].DataTo: %w", snap.Ref.ID, err)
		}
		customers = append(customers, domain.Customer{
			UID:        snap.Ref.ID,
			Email:      doc.Email,
			Name:       doc.Name,
			CreatedAt:  doc.CreatedAt,
			LastSeenAt: doc.LastSeenAt,
		})
	}

	slices.SortFunc(customers, func(a, b domain.Customer) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.UID, b.UID))
	})

	return customers, nil
}

func (r *CustomerRepository) GetAdmin(ctx context.Context, uid string) (domain.AdminProfile, error) {
	if uid == "" {
		return domain.AdminProfile{}, fmt.Errorf("uid is empty")
	}

	snap, err := r.Client.Collection(colAdmins).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.AdminProfile{}, fmt.Errorf("admin[%s]: %w", uid, domain.ErrNotFound)
		}
		return domain.AdminProfile{}, fmt.Errorf("admins.Get: %w", err)
	}

	var doc adminDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.AdminProfile{}, fmt.Errorf("DataTo: %w", err)
	}

	return domain.AdminProfile{UID: uid, Name: doc.Name, Email: doc.Email, CreatedAt: doc.CreatedAt}, nil
}

func (r *CustomerRepository) AddAdmin(ctx context.Context, a domain.AdminProfile) error {
	if a.UID == "" {
		return fmt.Errorf("uid is empty")
	}

	_, err := r.Client.Collection(colAdmins).Doc(a.UID).Set(ctx, map[string]any{
		"name":      a.Name,
		"email":     a.Email,
		"createdAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("admins.Set: %w", err)
	}

	return nil
}

type SubscriberRepository struct {
	Client *firestore.Client
}

var _ port.SubscriberRepository = (*SubscriberRepository)(nil)

func NewSubscriber(client *firestore.Client) (*SubscriberRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	return &SubscriberRepository{Client: client}, nil
}

type subscriberDoc struct {
	Email     string    `firestore:"email"`
	CreatedAt time.Time `firestore:"created_at"`
}

// Add keys documents by the normalized email so Create rejects duplicates.
func (r *SubscriberRepository) Add(ctx context.Context, s domain.Subscriber) error {
	if s.Email == "" {
		return fmt.Errorf("email is empty")
	}
	if strings.Contains(s.Email, "/") {
		return fmt.Errorf("email[%s] is not valid: %w", s.Email, domain.ErrInvalidInput)
	}

	at := s.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	_, err := r.Client.Collection(colSubscribers).Doc(s.Email).Create(ctx, subscriberDoc{Email: s.Email, CreatedAt: at})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("subscriber[%s]: %w", s.Email, domain.ErrAlreadySubscribed)
		}
		return fmt.Errorf("newsletter_subscribers.Create: %w", err)
	}

	return nil
}

func (r *SubscriberRepository) List(ctx context.Context) ([]domain.Subscriber, error) {
	snaps, err := r.Client.Collection(colSubscribers).OrderBy("created_at", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("newsletter_subscribers.GetAll: %w", err)
	}

	subscribers := make([]domain.Subscriber, 0, len(snaps))
	for _, snap := range snaps {
		var doc subscriberDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("newsletter_subscribers[%s].DataTo: %w", snap.Ref.ID, err)
		}
		subscribers = append(subscribers, domain.Subscriber{Email: doc.Email, CreatedAt: doc.CreatedAt})
	}

	return subscribers, nil
}

type AuditRepository struct {
	Client *firestore.Client
}

var _ port.AuditRepository = (*AuditRepository)(nil)

func NewAudit(client *firestore.Client) (*AuditRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	return &AuditRepository{Client: client}, nil
}

type auditDoc struct {
	Action  string         `firestore:"action"`
	Actor   string         `firestore:"actor"`
	Payload map[string]any `firestore:"payload"`
	At      time.Time      `firestore:"at"`
}

func (r *AuditRepository) Append(ctx context.Context, e domain.AuditEntry) error {
	if e.Action == "" {
		return fmt.Errorf("action is empty")
	}

	at := e.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	ref := r.Client.Collection(colAuditLogs).NewDoc()
	if e.ID != "" {
		ref = r.Client.Collection(colAuditLogs).Doc(e.ID)
	}

	if _, err := ref.Create(ctx, auditDoc{Action: e.Action, Actor: e.Actor, Payload: e.Payload, At: at}); err != nil {
		return fmt.Errorf("auditLogs.Create: %w", err)
	}

	return nil
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	snaps, err := r.Client.Collection(colAuditLogs).OrderBy("at", firestore.Desc).Limit(limit).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("auditLogs.GetAll: %w", err)
	}

	entries := make([]domain.AuditEntry, 0, len(snaps))
	for _, snap := range snaps {
		var doc auditDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("auditLogs[%s].DataTo: %w", snap.Ref.ID, err)
		}
		entries = append(entries, domain.AuditEntry{
			ID:      snap.Ref.ID,
			Action:  doc.Action,
			Actor:   doc.Actor,
			Payload: doc.Payload,
			At:      doc.At,
		})
	}

	return entries, nil
}

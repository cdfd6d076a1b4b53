package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ProfileRepository struct {
	Client *firestore.Client
}

var _ port.ProfileRepository = (*ProfileRepository)(nil)

func NewProfile(client *firestore.Client) (*ProfileRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	return &ProfileRepository{Client: client}, nil
}

// profileDoc matches the web client, which writes updated_at as an ISO string.
type profileDoc struct {
	FullName       string            `firestore:"full_name"`
	Phone          string            `firestore:"phone"`
	DefaultAddress map[string]string `firestore:"default_address"`
	UpdatedAt      string            `firestore:"updated_at"`
}

func (r *ProfileRepository) col() *firestore.CollectionRef {
	return r.Client.Collection(colProfiles)
}

func (r *ProfileRepository) Get(ctx context.Context, uid string) (domain.Profile, error) {
	if uid == "" {
		return domain.Profile{}, fmt.Errorf("uid is empty")
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Profile{}, fmt.Errorf("profile[%s]: %w", uid, domain.ErrNotFound)
		}
		return domain.Profile{}, fmt.Errorf("user_profiles.Get: %w", err)
	}

	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.Profile{}, fmt.Errorf("user_profiles[%s].DataTo: %w", uid, err)
	}

	p := domain.Profile{
		UID:      uid,
		FullName: doc.FullName,
		Phone:    doc.Phone,
		DefaultAddress: domain.ProfileAddress{
			Address: doc.DefaultAddress["address"],
			City:    doc.DefaultAddress["city"],
			State:   doc.DefaultAddress["state"],
			Pincode: doc.DefaultAddress["pincode"],
		},
	}
	if at, err := time.Parse(time.RFC3339Nano, doc.UpdatedAt); err == nil {
		p.UpdatedAt = at
	}

	return p, nil
}

// Save merges into the document so fields written by other clients survive.
func (r *ProfileRepository) Save(ctx context.Context, p domain.Profile) error {
	if p.UID == "" {
		return fmt.Errorf("uid is empty")
	}

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	data := map[string]any{
		"id":        p.UID,
		"full_name": p.FullName,
		"phone":     p.Phone,
		"default_address": map[string]any{
			"address": p.DefaultAddress.Address,
			"city":    p.DefaultAddress.City,
			"state":   p.DefaultAddress.State,
			"pincode": p.DefaultAddress.Pincode,
		},
		"updated_at": updatedAt.Format(time.RFC3339Nano),
	}

	if _, err := r.col().Doc(p.UID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("user_profiles.Set: %w", err)
	}

	return nil
}

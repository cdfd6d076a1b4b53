package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"go.opentelemetry.io/otel/attribute"
)

type ProfileService struct {
	profiles port.ProfileRepository
	now      func() time.Time
	obs      *Observer
}

func NewProfileService(profiles port.ProfileRepository, obs *Observer) (*ProfileService, error) {
	if profiles == nil {
		return nil, fmt.Errorf("profile repository is nil")
	}
	if obs == nil {
		obs = nopObserver()
	}
	return &ProfileService{
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
		obs:      obs,
	}, nil
}

type ProfileInput struct {
	FullName       string
	Phone          string
	DefaultAddress domain.ProfileAddress
}

// Get returns an empty profile, prefilled with the identity's name, until one
// is saved.
func (s *ProfileService) Get(ctx context.Context, identity domain.Identity) (_ domain.Profile, err error) {
	ctx, done := s.obs.start(ctx, "profile.get", attribute.String("uid", identity.UID))
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Profile{}, domain.ErrNoIdentity
	}

	profile, err := s.profiles.Get(ctx, identity.UID)
	switch {
	case err == nil:
		return profile, nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.Profile{UID: identity.UID, FullName: identity.Name}, nil
	default:
		return domain.Profile{}, fmt.Errorf("profiles.Get: %w", err)
	}
}

// Save replaces the identity's profile with the trimmed input.
func (s *ProfileService) Save(ctx context.Context, identity domain.Identity, in ProfileInput) (_ domain.Profile, err error) {
	ctx, done := s.obs.start(ctx, "profile.save", attribute.String("uid", identity.UID))
	defer done(&err)

	if identity.IsAnonymous() {
		return domain.Profile{}, domain.ErrNoIdentity
	}

	profile := domain.Profile{
		UID:      identity.UID,
		FullName: strings.TrimSpace(in.FullName),
		Phone:    strings.TrimSpace(in.Phone),
		DefaultAddress: domain.ProfileAddress{
			Address: strings.TrimSpace(in.DefaultAddress.Address),
			City:    strings.TrimSpace(in.DefaultAddress.City),
			State:   strings.TrimSpace(in.DefaultAddress.State),
			Pincode: strings.TrimSpace(in.DefaultAddress.Pincode),
		},
		UpdatedAt: s.now(),
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("profiles.Save: %w", err)
	}

	return profile, nil
}

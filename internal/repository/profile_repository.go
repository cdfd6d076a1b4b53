package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/db"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

type profileRepository struct {
	q *db.Queries
}

func NewProfile(pool *pgxpool.Pool) (port.ProfileRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &profileRepository{q: db.New(pool)}, nil
}

func (r *profileRepository) Get(ctx context.Context, uid string) (domain.Profile, error) {
	if uid == "" {
		return domain.Profile{}, fmt.Errorf("uid is empty")
	}

	row, err := r.q.GetUserProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, fmt.Errorf("profile[%s]: %w", uid, domain.ErrNotFound)
		}
		return domain.Profile{}, fmt.Errorf("q.GetUserProfile: %w", err)
	}

	return domain.Profile{
		UID:      row.Uid,
		FullName: row.FullName,
		Phone:    row.Phone,
		DefaultAddress: domain.ProfileAddress{
			Address: row.Address,
			City:    row.City,
			State:   row.State,
			Pincode: row.Pincode,
		},
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *profileRepository) Save(ctx context.Context, p domain.Profile) error {
	if p.UID == "" {
		return fmt.Errorf("uid is empty")
	}

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	err := r.q.SaveUserProfile(ctx, db.SaveUserProfileParams{
		Uid:       p.UID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Address:   p.DefaultAddress.Address,
		City:      p.DefaultAddress.City,
		State:     p.DefaultAddress.State,
		Pincode:   p.DefaultAddress.Pincode,
		UpdatedAt: updatedAt,
	})
	if err != nil {
		return fmt.Errorf("q.SaveUserProfile: %w", err)
	}

	return nil
}

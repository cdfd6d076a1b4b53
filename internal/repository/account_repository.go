package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/db"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

type customerRepository struct {
	q *db.Queries
}

func NewCustomer(pool *pgxpool.Pool) (port.CustomerRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &customerRepository{q: db.New(pool)}, nil
}

func (r *customerRepository) Upsert(ctx context.Context, c domain.Customer) error {
	if c.UID == "" {
		return fmt.Errorf("uid is empty")
	}

	seen := c.LastSeenAt
	if seen.IsZero() {
		seen = time.Now().UTC()
	}

	err := r.q.UpsertUser(ctx, db.UpsertUserParams{
		Uid:       c.UID,
		Email:     c.Email,
		Name:      c.Name,
		CreatedAt: seen,
	})
	if err != nil {
		return fmt.Errorf("q.UpsertUser: %w", err)
	}

	return nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListUsers: %w", err)
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, domain.Customer{
			UID:        row.Uid,
			Email:      row.Email,
			Name:       row.Name,
			CreatedAt:  row.CreatedAt,
			LastSeenAt: row.LastSeenAt,
		})
	}

	return customers, nil
}

func (r *customerRepository) GetAdmin(ctx context.Context, uid string) (domain.AdminProfile, error) {
	if uid == "" {
		return domain.AdminProfile{}, fmt.Errorf("uid is empty")
	}

	row, err := r.q.GetAdmin(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AdminProfile{}, fmt.Errorf("admin[%s]: %w", uid, domain.ErrNotFound)
		}
		return domain.AdminProfile{}, fmt.Errorf("q.GetAdmin: %w", err)
	}

	return domain.AdminProfile{
		UID:       row.Uid,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *customerRepository) AddAdmin(ctx context.Context, a domain.AdminProfile) error {
	if a.UID == "" {
		return fmt.Errorf("uid is empty")
	}

	err := r.q.AddAdmin(ctx, db.AddAdminParams{
		Uid:   a.UID,
		Name:  a.Name,
		Email: a.Email,
	})
	if err != nil {
		return fmt.Errorf("q.AddAdmin: %w", err)
	}

	return nil
}

type subscriberRepository struct {
	q *db.Queries
}

func NewSubscriber(pool *pgxpool.Pool) (port.SubscriberRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &subscriberRepository{q: db.New(pool)}, nil
}

func (r *subscriberRepository) Add(ctx context.Context, s domain.Subscriber) error {
	if s.Email == "" {
		return fmt.Errorf("email is empty")
	}

	at := s.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	rowsAffected, err := r.q.AddSubscriber(ctx, db.AddSubscriberParams{
		Email:     s.Email,
		CreatedAt: at,
	})
	if err != nil {
		return fmt.Errorf("q.AddSubscriber: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("subscriber[%s]: %w", s.Email, domain.ErrAlreadySubscribed)
	}

	return nil
}

func (r *subscriberRepository) List(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := r.q.ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListSubscribers: %w", err)
	}

	subscribers := make([]domain.Subscriber, 0, len(rows))
	for _, row := range rows {
		subscribers = append(subscribers, domain.Subscriber{Email: row.Email, CreatedAt: row.CreatedAt})
	}

	return subscribers, nil
}

type auditRepository struct {
	q *db.Queries
}

func NewAudit(pool *pgxpool.Pool) (port.AuditRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &auditRepository{q: db.New(pool)}, nil
}

func (r *auditRepository) Append(ctx context.Context, e domain.AuditEntry) error {
	if e.Action == "" {
		return fmt.Errorf("action is empty")
	}

	id := uuid.New()
	if e.ID != "" {
		parsed, err := uuid.Parse(e.ID)
		if err != nil {
			return fmt.Errorf("audit id[%s] is not valid: %w", e.ID, err)
		}
		id = parsed
	}

	payload := e.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	at := e.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	err = r.q.AppendAuditLog(ctx, db.AppendAuditLogParams{
		ID:      id,
		Action:  e.Action,
		Actor:   e.Actor,
		Payload: data,
		At:      at,
	})
	if err != nil {
		return fmt.Errorf("q.AppendAuditLog: %w", err)
	}

	return nil
}

func (r *auditRepository) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.q.ListAuditLogs(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("q.ListAuditLogs: %w", err)
	}

	entries := make([]domain.AuditEntry, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return nil, fmt.Errorf("json.Unmarshal: %w", err)
		}

		entries = append(entries, domain.AuditEntry{
			ID:      row.ID.String(),
			Action:  row.Action,
			Actor:   row.Actor,
			Payload: payload,
			At:      row.At,
		})
	}

	return entries, nil
}

package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type AuditEntry struct {
	ID      string
	Action  string
	Actor   string
	Payload map[string]any
	At      time.Time
}

type Subscriber struct {
	Email     string
	CreatedAt time.Time
}

type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// NormalizeEmail lowercases and validates an address so duplicates differing
// only by case collapse to one subscriber.
func NormalizeEmail(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("email is empty: %w", ErrInvalidInput)
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", fmt.Errorf("email[%s] is not valid: %w", raw, ErrInvalidInput)
	}

	return strings.ToLower(addr.Address), nil
}

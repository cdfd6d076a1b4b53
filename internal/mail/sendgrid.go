// Package mail delivers transactional mail through SendGrid.
package mail

import (
	"context"
	"fmt"
	"html"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sender interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

type SendGrid struct {
	client   sender
	fromName string
	from     string
}

var _ port.Mailer = (*SendGrid)(nil)

func NewSendGrid(apiKey, fromName, from string) (*SendGrid, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid api key is empty")
	}
	if from == "" {
		return nil, fmt.Errorf("from address is empty")
	}

	return &SendGrid{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		from:     from,
	}, nil
}

func (s *SendGrid) Send(ctx context.Context, m domain.Mail) error {
	if m.To == "" {
		return fmt.Errorf("to address is empty")
	}

	htmlContent := m.HTML
	if htmlContent == "" {
		htmlContent = "<p>" + html.EscapeString(m.Text) + "</p>"
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.fromName, s.from),
		m.Subject,
		sgmail.NewEmail("", m.To),
		m.Text,
		htmlContent,
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	return nil
}

// Discard drops every mail. It backs local runs without an API key.
type Discard struct{}

var _ port.Mailer = Discard{}

func (Discard) Send(context.Context, domain.Mail) error {
	return nil
}

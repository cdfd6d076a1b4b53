package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	got      *sgmail.SGMailV3
	response *rest.Response
	err      error
}

func (r *recordingSender) SendWithContext(_ context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	r.got = email
	return r.response, r.err
}

func TestSendGrid_Send(t *testing.T) {
	rec := &recordingSender{response: &rest.Response{StatusCode: 202}}
	sg := &SendGrid{client: rec, fromName: "SNEXA", from: "hello@snexa.com"}

	err := sg.Send(t.Context(), domain.Mail{
		To:      "asha@example.com",
		Subject: "New Newsletter Subscriber",
		Text:    "New subscriber: <asha@example.com>",
	})
	require.NoError(t, err)

	require.NotNil(t, rec.got)
	assert.Equal(t, "New Newsletter Subscriber", rec.got.Subject)
	assert.Equal(t, "hello@snexa.com", rec.got.From.Address)
	require.Len(t, rec.got.Personalizations, 1)
	assert.Equal(t, "asha@example.com", rec.got.Personalizations[0].To[0].Address)

	require.Len(t, rec.got.Content, 2)
	assert.Equal(t, "New subscriber: <asha@example.com>", rec.got.Content[0].Value)
	assert.Equal(t, "<p>New subscriber: &lt;asha@example.com&gt;</p>", rec.got.Content[1].Value)
}

func TestSendGrid_SendErrors(t *testing.T) {
	tests := []struct {
		name   string
		sender *recordingSender
		mail   domain.Mail
	}{
		{
			name:   "no recipient",
			sender: &recordingSender{response: &rest.Response{StatusCode: 202}},
		},
		{
			name:   "transport error",
			sender: &recordingSender{err: errors.New("dial tcp: timeout")},
			mail:   domain.Mail{To: "a@b.co"},
		},
		{
			name:   "rejected by api",
			sender: &recordingSender{response: &rest.Response{StatusCode: 401, Body: "unauthorized"}},
			mail:   domain.Mail{To: "a@b.co"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sg := &SendGrid{client: tt.sender, from: "hello@snexa.com"}
			require.Error(t, sg.Send(t.Context(), tt.mail))
		})
	}

	_, err := NewSendGrid("", "SNEXA", "hello@snexa.com")
	require.Error(t, err)

	require.NoError(t, Discard{}.Send(t.Context(), domain.Mail{}))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

type NewsletterService struct {
	subscribers port.SubscriberRepository
	mailer      port.Mailer
	adminEmail  string
	now         func() time.Time
	obs         *Observer
}

func NewNewsletterService(subscribers port.SubscriberRepository, mailer port.Mailer, adminEmail string, obs *Observer) (*NewsletterService, error) {
	if subscribers == nil {
		return nil, fmt.Errorf("subscriber repository is nil")
	}
	if mailer == nil {
		return nil, fmt.Errorf("mailer is nil")
	}
	if obs == nil {
		obs = nopObserver()
	}

	return &NewsletterService{
		subscribers: subscribers,
		mailer:      mailer,
		adminEmail:  adminEmail,
		now:         func() time.Time { return time.Now().UTC() },
		obs:         obs,
	}, nil
}

// Subscribe stores the address, then mails a welcome note to the subscriber
// and a notification to the admin. A delivery failure keeps the subscriber.
func (s *NewsletterService) Subscribe(ctx context.Context, rawEmail string) (err error) {
	ctx, done := s.obs.start(ctx, "newsletter.subscribe")
	defer done(&err)

	email, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return err
	}

	if err := s.subscribers.Add(ctx, domain.Subscriber{Email: email, CreatedAt: s.now()}); err != nil {
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			return err
		}
		return fmt.Errorf("subscribers.Add: %w", err)
	}

	welcome := domain.Mail{
		To:      email,
		Subject: "Welcome to SNEXA 🎉",
		Text:    "Welcome to SNEXA! You're now subscribed to exclusive updates.",
		HTML:    "<h2>Welcome to SNEXA!</h2><p>You're now subscribed to exclusive updates.</p>",
	}
	if err := s.mailer.Send(ctx, welcome); err != nil {
		return fmt.Errorf("%w: welcome mail: %w", domain.ErrDelivery, err)
	}

	if s.adminEmail != "" {
		notice := domain.Mail{
			To:      s.adminEmail,
			Subject: "New Newsletter Subscriber",
			Text:    "New subscriber: " + email,
		}
		if err := s.mailer.Send(ctx, notice); err != nil {
			return fmt.Errorf("%w: admin notification: %w", domain.ErrDelivery, err)
		}
	}

	return nil
}

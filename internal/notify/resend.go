package notify

import (
	"context"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/resend/resend-go/v2"
)

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender returns nil when apiKey is empty so the dispatcher treats
// email as unconfigured.
func NewResendSender(apiKey, from string) *ResendSender {
	if apiKey == "" {
		return nil
	}
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) SendEmail(ctx context.Context, msg EmailMessage) error {
	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return apperr.Wrap(apperr.KindDelivery, "Failed to send email: "+err.Error(), err)
	}
	return nil
}

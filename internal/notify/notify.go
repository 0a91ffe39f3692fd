// Package notify sends transactional email and SMS through third-party
// providers. Each call is independent; callers decide whether a failure is
// fatal to their own operation.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/models"
)

// EmailMessage is one outgoing email. From is filled in by the sender.
type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// EmailSender delivers email through a provider.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

// SMSSender delivers a text message to a 27XXXXXXXXX number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Dispatcher composes templated messages and hands them to the providers.
// A nil sender or an empty inbox address means that channel is not configured.
type Dispatcher struct {
	email        EmailSender
	sms          SMSSender
	salesEmail   string
	contactEmail string
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithEmail sets the email provider.
func WithEmail(s EmailSender) Option { return func(d *Dispatcher) { d.email = s } }

// WithSMS sets the SMS provider.
func WithSMS(s SMSSender) Option { return func(d *Dispatcher) { d.sms = s } }

// WithSalesInbox sets where internal sales alerts go.
func WithSalesInbox(addr string) Option { return func(d *Dispatcher) { d.salesEmail = addr } }

// WithContactInbox sets where contact-form enquiries go.
func WithContactInbox(addr string) Option { return func(d *Dispatcher) { d.contactEmail = addr } }

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Configured reports whether the channel for method has a provider.
func (d *Dispatcher) Configured(method string) error {
	switch method {
	case models.MethodEmail:
		if d.email == nil {
			return apperr.Configuration("RESEND_API_KEY is not set")
		}
	case models.MethodSMS:
		if d.sms == nil {
			return apperr.Configuration("WINSMS_API_KEY is not set")
		}
	default:
		return apperr.Validation("method must be 'email' or 'sms'")
	}
	return nil
}

// SendPin delivers a verification code valid for validFor. destination is an
// email address or a normalized phone number depending on method.
func (d *Dispatcher) SendPin(ctx context.Context, method, destination, code string, validFor time.Duration) error {
	if err := d.Configured(method); err != nil {
		return err
	}
	if method == models.MethodSMS {
		return d.sms.SendSMS(ctx, destination, fmt.Sprintf(pinSMSText, code, validForText(validFor)))
	}
	html, err := render(pinEmailTemplate, map[string]string{"Code": code, "ValidFor": validForText(validFor)})
	if err != nil {
		return err
	}
	return d.email.SendEmail(ctx, EmailMessage{
		To:      []string{destination},
		Subject: "Your Bales Store verification code",
		HTML:    html,
	})
}

// NotifySales emails the internal sales inbox.
func (d *Dispatcher) NotifySales(ctx context.Context, subject string, lines map[string]string) error {
	if d.email == nil {
		return apperr.Configuration("RESEND_API_KEY is not set")
	}
	if d.salesEmail == "" {
		return apperr.Configuration("SALES_EMAIL is not set")
	}
	html, err := render(salesAlertTemplate, struct {
		Subject string
		Lines   map[string]string
	}{subject, lines})
	if err != nil {
		return err
	}
	return d.email.SendEmail(ctx, EmailMessage{To: []string{d.salesEmail}, Subject: subject, HTML: html})
}

// SendOrderNote emails a customer an update about their order.
func (d *Dispatcher) SendOrderNote(ctx context.Context, order models.Order, note string) error {
	if d.email == nil {
		return apperr.Configuration("RESEND_API_KEY is not set")
	}
	if order.CustomerEmail == "" {
		return apperr.Validation("Order has no customer email")
	}
	html, err := render(orderNoteTemplate, struct {
		Order models.Order
		Note  string
	}{order, note})
	if err != nil {
		return err
	}
	return d.email.SendEmail(ctx, EmailMessage{
		To:      []string{order.CustomerEmail},
		Subject: fmt.Sprintf("Update on your order %s", order.OrderNumber),
		HTML:    html,
		ReplyTo: d.salesEmail,
	})
}

// Enquiry is a contact-form submission.
type Enquiry struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// SendContactEnquiry forwards an enquiry to the contact inbox with the
// customer as reply-to.
func (d *Dispatcher) SendContactEnquiry(ctx context.Context, e Enquiry) error {
	if d.email == nil {
		return apperr.Configuration("RESEND_API_KEY is not set")
	}
	if d.contactEmail == "" {
		return apperr.Configuration("CONTACT_EMAIL is not set")
	}
	subject := e.Subject
	if subject == "" {
		subject = "New enquiry from " + e.Name
	}
	html, err := render(contactTemplate, e)
	if err != nil {
		return err
	}
	return d.email.SendEmail(ctx, EmailMessage{
		To:      []string{d.contactEmail},
		Subject: subject,
		HTML:    html,
		ReplyTo: e.Email,
	})
}

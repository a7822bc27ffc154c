// Package email delivers the lead notification over Brevo or SMTP.
package email

import (
	"context"
	"fmt"

	"quotewidget_backend/platform/config"
)

// LeadEmailData carries everything the lead notification template renders.
type LeadEmailData struct {
	WidgetName  string
	ContactName string
	Email       string
	Phone       string
	Answers     map[string]interface{}
	Summary     map[string]interface{}
}

// Sender delivers transactional email.
type Sender interface {
	SendLeadNotificationEmail(ctx context.Context, toEmail string, data LeadEmailData) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender drops all mail. Used when email is disabled.
type NoopSender struct{}

func (NoopSender) SendLeadNotificationEmail(ctx context.Context, toEmail string, data LeadEmailData) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender picks the delivery backend from configuration.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	switch cfg.GetEmailProvider() {
	case "brevo":
		return NewBrevoSender(cfg), nil
	case "smtp":
		return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(), cfg.GetEmailFromName()), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.GetEmailProvider())
	}
}

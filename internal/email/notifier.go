package email

import (
	"context"
	"fmt"

	leadsvc "quotewidget_backend/internal/leads/service"
	"quotewidget_backend/platform/config"
)

// LeadNotifier adapts a Sender to the lead capture flow's notification
// port. This is the primary channel: its failure fails the capture.
type LeadNotifier struct {
	sender Sender
	to     string
}

// NewLeadNotifier wires the notification address from configuration.
// Returns nil when no address is configured so the capture flow skips
// notification entirely.
func NewLeadNotifier(sender Sender, cfg config.EmailConfig) *LeadNotifier {
	if cfg.GetLeadNotifyAddress() == "" {
		return nil
	}
	return &LeadNotifier{sender: sender, to: cfg.GetLeadNotifyAddress()}
}

// NotifyLead implements service.Notifier.
func (n *LeadNotifier) NotifyLead(ctx context.Context, notification leadsvc.LeadNotification) error {
	err := n.sender.SendLeadNotificationEmail(ctx, n.to, LeadEmailData{
		WidgetName:  notification.WidgetName,
		ContactName: notification.ContactName,
		Email:       notification.Email,
		Phone:       notification.Phone,
		Answers:     notification.Data,
		Summary:     notification.Summary,
	})
	if err != nil {
		return fmt.Errorf("lead notification: %w", err)
	}
	return nil
}

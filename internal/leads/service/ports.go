package service

import "context"

// ForwardInput is the captured submission handed to each outbound adapter.
// Data carries the freeform answers exactly as the widget collected them;
// adapters own their own key fallbacks and formatting.
type ForwardInput struct {
	WidgetKey string
	Data      map[string]interface{}
	Note      string
}

// Forwarder pushes a captured lead into one external CRM-style system.
// Implementations return the decoded upstream response on success.
type Forwarder interface {
	Name() string
	Forward(ctx context.Context, input ForwardInput) (interface{}, error)
}

// LeadNotification is the content of the primary notification email.
type LeadNotification struct {
	WidgetName  string
	WidgetKey   string
	ContactName string
	Email       string
	Phone       string
	Data        map[string]interface{}
	Summary     map[string]interface{}
}

// Notifier delivers the primary lead notification. Unlike forwarders,
// a notifier failure aborts the capture.
type Notifier interface {
	NotifyLead(ctx context.Context, notification LeadNotification) error
}

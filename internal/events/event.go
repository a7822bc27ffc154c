// Package events defines the domain events exchanged between modules.
package events

import "github.com/google/uuid"

// LeadCaptured is published after a lead submission has been stored and the
// primary notification succeeded. Forwarding outcomes ride along so audit
// subscribers can record partial deliveries.
type LeadCaptured struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	WidgetID  uuid.UUID `json:"widgetId"`
	WidgetKey string    `json:"widgetKey"`
	Forwarded []string  `json:"forwarded"`
}

// EventName returns the unique identifier for this event type.
func (LeadCaptured) EventName() string { return "leads.captured" }

// WidgetPublished is published when a widget's status flips to published,
// making its configuration publicly servable.
type WidgetPublished struct {
	BaseEvent
	WidgetID  uuid.UUID `json:"widgetId"`
	WidgetKey string    `json:"widgetKey"`
	TenantID  uuid.UUID `json:"tenantId"`
}

// EventName returns the unique identifier for this event type.
func (WidgetPublished) EventName() string { return "widgets.published" }

// Package transport defines request and response DTOs for the leads API.
package transport

import "github.com/google/uuid"

// SubmitLeadRequest is the public lead-submission payload posted by the
// embedded widget.
type SubmitLeadRequest struct {
	Data            map[string]interface{} `json:"data" validate:"required"`
	ContactInfo     map[string]interface{} `json:"contact_info"`
	Summary         map[string]interface{} `json:"summary"`
	SmartMovingNote string                 `json:"smart_moving_note" validate:"omitempty,max=2000"`
}

// ForwardOutcome is the per-adapter result aggregated into the response.
// Adapter failures surface here instead of failing the capture.
type ForwardOutcome struct {
	Submitted bool        `json:"submitted"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// SubmitLeadResponse acknowledges a captured lead.
type SubmitLeadResponse struct {
	LeadID     uuid.UUID                 `json:"lead_id"`
	Forwarding map[string]ForwardOutcome `json:"forwarding"`
}

// SetLeadStatusRequest moves a lead through the pipeline.
type SetLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted converted lost"`
}

// ListLeadsQuery filters and pages the admin lead listing.
type ListLeadsQuery struct {
	WidgetID string `form:"widget_id" validate:"omitempty,uuid"`
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset   int    `form:"offset" validate:"omitempty,min=0"`
}

// ListLeadsResponse pages leads for the admin UI.
type ListLeadsResponse struct {
	Leads  interface{} `json:"leads"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

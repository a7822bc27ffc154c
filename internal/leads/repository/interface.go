package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lead is one captured end-user submission. The freeform answers and the
// normalized contact block stay raw JSON; the service layer decodes them.
type Lead struct {
	ID             uuid.UUID       `json:"id"`
	WidgetID       uuid.UUID       `json:"widgetId"`
	TenantID       uuid.UUID       `json:"tenantId"`
	Status         string          `json:"status"`
	LeadData       json.RawMessage `json:"leadData"`
	ContactInfo    json.RawMessage `json:"contactInfo"`
	EstimatedValue float64         `json:"estimatedValue"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

// Lead pipeline states. Transitions between them are free form.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

// ValidStatus reports whether s is a known lead status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusConverted, StatusLost:
		return true
	}
	return false
}

// CreateParams are the inputs for storing a captured lead.
type CreateParams struct {
	WidgetID       uuid.UUID
	TenantID       uuid.UUID
	LeadData       json.RawMessage
	ContactInfo    json.RawMessage
	EstimatedValue float64
}

// ListParams scope and page a lead listing.
type ListParams struct {
	TenantID uuid.UUID
	WidgetID *uuid.UUID
	Limit    int
	Offset   int
}

// Repository defines lead persistence operations.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (Lead, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// Widget is a tenant's configurable quote wizard. The dynamic JSON columns
// stay raw here; the service layer owns decoding and defensive coercion.
type Widget struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenantId"`
	WidgetKey      string          `json:"widgetKey"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	EnabledModules json.RawMessage `json:"enabledModules"`
	ModuleConfigs  json.RawMessage `json:"moduleConfigs"`
	Branding       json.RawMessage `json:"branding"`
	Settings       json.RawMessage `json:"settings"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

// Widget lifecycle states. Only published widgets are externally servable.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusPaused    = "paused"
)

// ValidStatus reports whether s is a known widget status.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusPaused
}

// Step is an explicit, fully pre-formatted wizard screen. When any step
// rows exist for a widget they replace module synthesis entirely.
type Step struct {
	ID         uuid.UUID       `json:"id"`
	WidgetID   uuid.UUID       `json:"widgetId"`
	StepKey    string          `json:"stepKey"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	Prompt     json.RawMessage `json:"prompt"`
	Options    json.RawMessage `json:"options"`
	Buttons    json.RawMessage `json:"buttons"`
	Layout     json.RawMessage `json:"layout"`
	Validation json.RawMessage `json:"validation"`
	OrderIndex int             `json:"orderIndex"`
}

// PricingRule holds an opaque rules object for one pricing category.
type PricingRule struct {
	ID       uuid.UUID       `json:"id"`
	WidgetID uuid.UUID       `json:"widgetId"`
	Category string          `json:"category"`
	Rules    json.RawMessage `json:"rules"`
}

// CreateParams are the inputs for creating a widget.
type CreateParams struct {
	TenantID       uuid.UUID
	WidgetKey      string
	Name           string
	EnabledModules json.RawMessage
	ModuleConfigs  json.RawMessage
	Branding       json.RawMessage
	Settings       json.RawMessage
}

// UpdateParams are the inputs for updating a widget. Nil JSON fields are
// left untouched.
type UpdateParams struct {
	TenantID       uuid.UUID
	ID             uuid.UUID
	Name           *string
	EnabledModules json.RawMessage
	ModuleConfigs  json.RawMessage
	Branding       json.RawMessage
	Settings       json.RawMessage
}

// StepParams are the inputs for one explicit step row.
type StepParams struct {
	StepKey    string
	Title      string
	Subtitle   string
	Prompt     json.RawMessage
	Options    json.RawMessage
	Buttons    json.RawMessage
	Layout     json.RawMessage
	Validation json.RawMessage
	OrderIndex int
}

// Repository defines widget persistence operations.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Widget, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (Widget, error)
	GetByKey(ctx context.Context, widgetKey string) (Widget, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]Widget, error)
	Update(ctx context.Context, params UpdateParams) (Widget, error)
	SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (Widget, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	ReplaceSteps(ctx context.Context, widgetID uuid.UUID, steps []StepParams) ([]Step, error)
	ListSteps(ctx context.Context, widgetID uuid.UUID) ([]Step, error)

	UpsertPricingRule(ctx context.Context, widgetID uuid.UUID, category string, rules json.RawMessage) (PricingRule, error)
	ListPricingRules(ctx context.Context, widgetID uuid.UUID) ([]PricingRule, error)
}

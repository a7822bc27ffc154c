// Package transport defines the request/response DTOs for the widgets module.
package transport

import "encoding/json"

// CreateWidgetRequest creates a new widget in draft status.
type CreateWidgetRequest struct {
	Name           string          `json:"name" validate:"required,max=200"`
	EnabledModules json.RawMessage `json:"enabledModules"`
	ModuleConfigs  json.RawMessage `json:"moduleConfigs"`
	Branding       json.RawMessage `json:"branding"`
	Settings       json.RawMessage `json:"settings"`
}

// UpdateWidgetRequest updates mutable widget fields. Omitted JSON fields
// keep their stored value.
type UpdateWidgetRequest struct {
	Name           *string         `json:"name" validate:"omitempty,max=200"`
	EnabledModules json.RawMessage `json:"enabledModules"`
	ModuleConfigs  json.RawMessage `json:"moduleConfigs"`
	Branding       json.RawMessage `json:"branding"`
	Settings       json.RawMessage `json:"settings"`
}

// SetStatusRequest flips the widget lifecycle status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published paused"`
}

// StepRequest is one explicit step row in a replace-all write.
type StepRequest struct {
	StepKey    string          `json:"stepKey" validate:"required,max=100"`
	Title      string          `json:"title" validate:"max=300"`
	Subtitle   string          `json:"subtitle" validate:"max=300"`
	Prompt     json.RawMessage `json:"prompt"`
	Options    json.RawMessage `json:"options"`
	Buttons    json.RawMessage `json:"buttons"`
	Layout     json.RawMessage `json:"layout"`
	Validation json.RawMessage `json:"validation"`
	OrderIndex int             `json:"orderIndex"`
}

// ReplaceStepsRequest swaps the full explicit step set. An empty list
// clears the rows so module synthesis takes over again.
type ReplaceStepsRequest struct {
	Steps []StepRequest `json:"steps" validate:"dive"`
}

// UpsertPricingRuleRequest writes the rules object for one category.
type UpsertPricingRuleRequest struct {
	Category string          `json:"category" validate:"required,max=100"`
	Rules    json.RawMessage `json:"rules" validate:"required"`
}

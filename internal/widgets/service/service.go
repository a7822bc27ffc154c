// Package service implements widget management and the configuration
// derivation engine.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"quotewidget_backend/internal/events"
	"quotewidget_backend/internal/widgets/repository"
	"quotewidget_backend/internal/widgets/transport"
	"quotewidget_backend/platform/apperr"
	"quotewidget_backend/platform/logger"
)

// Service exposes widget management operations and public configuration
// assembly.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new widgets service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create stores a new widget in draft status with a fresh opaque key.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req transport.CreateWidgetRequest) (repository.Widget, error) {
	widget, err := s.repo.Create(ctx, repository.CreateParams{
		TenantID:       tenantID,
		WidgetKey:      newWidgetKey(),
		Name:           req.Name,
		EnabledModules: req.EnabledModules,
		ModuleConfigs:  req.ModuleConfigs,
		Branding:       req.Branding,
		Settings:       req.Settings,
	})
	if err != nil {
		return repository.Widget{}, err
	}

	s.log.Info("widget created", "widget_key", widget.WidgetKey, "tenant_id", tenantID)
	return widget, nil
}

// GetByID retrieves a widget for its tenant.
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (repository.Widget, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// List retrieves all widgets for a tenant.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]repository.Widget, error) {
	return s.repo.List(ctx, tenantID)
}

// Update updates the mutable widget fields.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req transport.UpdateWidgetRequest) (repository.Widget, error) {
	return s.repo.Update(ctx, repository.UpdateParams{
		TenantID:       tenantID,
		ID:             id,
		Name:           req.Name,
		EnabledModules: req.EnabledModules,
		ModuleConfigs:  req.ModuleConfigs,
		Branding:       req.Branding,
		Settings:       req.Settings,
	})
}

// SetStatus flips the lifecycle status. Publishing has no validation gate
// beyond the status value itself; an empty widget publishes an empty wizard.
func (s *Service) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (repository.Widget, error) {
	if !repository.ValidStatus(status) {
		return repository.Widget{}, apperr.Validation("unknown widget status")
	}

	widget, err := s.repo.SetStatus(ctx, tenantID, id, status)
	if err != nil {
		return repository.Widget{}, err
	}

	if status == repository.StatusPublished && s.bus != nil {
		s.bus.Publish(ctx, events.WidgetPublished{
			BaseEvent: events.NewBaseEvent(),
			WidgetID:  widget.ID,
			WidgetKey: widget.WidgetKey,
			TenantID:  widget.TenantID,
		})
	}

	return widget, nil
}

// Delete removes a widget and everything hanging off it (steps, pricing
// rules, leads — cascaded by the database).
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// ReplaceSteps swaps the explicit step rows. Any non-empty set disables
// module synthesis for the widget entirely.
func (s *Service) ReplaceSteps(ctx context.Context, tenantID, id uuid.UUID, req transport.ReplaceStepsRequest) ([]repository.Step, error) {
	widget, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	params := make([]repository.StepParams, 0, len(req.Steps))
	seen := map[string]bool{}
	for _, step := range req.Steps {
		key := strings.TrimSpace(step.StepKey)
		if key == "" || seen[key] {
			return nil, apperr.Validation("step keys must be unique and non-empty")
		}
		seen[key] = true
		params = append(params, repository.StepParams{
			StepKey:    key,
			Title:      step.Title,
			Subtitle:   step.Subtitle,
			Prompt:     step.Prompt,
			Options:    step.Options,
			Buttons:    step.Buttons,
			Layout:     step.Layout,
			Validation: step.Validation,
			OrderIndex: step.OrderIndex,
		})
	}

	return s.repo.ReplaceSteps(ctx, widget.ID, params)
}

// ListSteps returns the explicit steps for a widget.
func (s *Service) ListSteps(ctx context.Context, tenantID, id uuid.UUID) ([]repository.Step, error) {
	widget, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.repo.ListSteps(ctx, widget.ID)
}

// UpsertPricingRule writes the rules object for one category.
func (s *Service) UpsertPricingRule(ctx context.Context, tenantID, id uuid.UUID, req transport.UpsertPricingRuleRequest) (repository.PricingRule, error) {
	widget, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return repository.PricingRule{}, err
	}
	return s.repo.UpsertPricingRule(ctx, widget.ID, req.Category, req.Rules)
}

// ListPricingRules returns all pricing rules for a widget.
func (s *Service) ListPricingRules(ctx context.Context, tenantID, id uuid.UUID) ([]repository.PricingRule, error) {
	widget, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPricingRules(ctx, widget.ID)
}

// Preview assembles the configuration document for a widget regardless of
// status, so admins can inspect the derived schema before publishing.
func (s *Service) Preview(ctx context.Context, tenantID, id uuid.UUID) (map[string]interface{}, error) {
	widget, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, widget)
}

func newWidgetKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

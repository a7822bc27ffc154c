package service

import (
	"context"

	"quotewidget_backend/internal/widgets/repository"
	"quotewidget_backend/platform/apperr"
)

const publicNotFoundMessage = "widget not found"

// GetPublicConfiguration assembles the configuration document for a
// published widget. Draft and paused widgets, like unknown keys, surface
// as a plain not-found so the public endpoint leaks nothing about
// unpublished tenants.
func (s *Service) GetPublicConfiguration(ctx context.Context, widgetKey string) (map[string]interface{}, error) {
	widget, err := s.repo.GetByKey(ctx, widgetKey)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.NotFound(publicNotFoundMessage)
		}
		return nil, err
	}

	if widget.Status != repository.StatusPublished {
		return nil, apperr.NotFound(publicNotFoundMessage)
	}

	return s.assemble(ctx, widget)
}

// ResolvePublished returns the widget behind a public key only when it is
// servable. The leads module uses this to gate public lead submission on
// the same rule as configuration reads.
func (s *Service) ResolvePublished(ctx context.Context, widgetKey string) (repository.Widget, error) {
	widget, err := s.repo.GetByKey(ctx, widgetKey)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return repository.Widget{}, apperr.NotFound(publicNotFoundMessage)
		}
		return repository.Widget{}, err
	}
	if widget.Status != repository.StatusPublished {
		return repository.Widget{}, apperr.NotFound(publicNotFoundMessage)
	}
	return widget, nil
}

func (s *Service) assemble(ctx context.Context, widget repository.Widget) (map[string]interface{}, error) {
	steps, err := s.repo.ListSteps(ctx, widget.ID)
	if err != nil {
		return nil, err
	}

	rules, err := s.repo.ListPricingRules(ctx, widget.ID)
	if err != nil {
		return nil, err
	}

	document := buildConfiguration(widget, steps, rules)
	s.log.Debug("configuration assembled",
		"widget_key", widget.WidgetKey,
		"explicit_steps", len(steps),
		"pricing_categories", len(rules),
	)
	return document, nil
}

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"quotewidget_backend/internal/widgets/repository"
	"quotewidget_backend/platform/apperr"
	"quotewidget_backend/platform/events"
	"quotewidget_backend/platform/logger"
)

// fakeRepo serves widgets from memory keyed by widget_key.
type fakeRepo struct {
	repository.Repository

	widgets map[string]repository.Widget
	steps   map[uuid.UUID][]repository.Step
	rules   map[uuid.UUID][]repository.PricingRule
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		widgets: map[string]repository.Widget{},
		steps:   map[uuid.UUID][]repository.Step{},
		rules:   map[uuid.UUID][]repository.PricingRule{},
	}
}

func (f *fakeRepo) GetByKey(_ context.Context, widgetKey string) (repository.Widget, error) {
	widget, ok := f.widgets[widgetKey]
	if !ok {
		return repository.Widget{}, apperr.NotFound("widget not found")
	}
	return widget, nil
}

func (f *fakeRepo) ListSteps(_ context.Context, widgetID uuid.UUID) ([]repository.Step, error) {
	return f.steps[widgetID], nil
}

func (f *fakeRepo) ListPricingRules(_ context.Context, widgetID uuid.UUID) ([]repository.PricingRule, error) {
	return f.rules[widgetID], nil
}

func newTestService(repo repository.Repository) *Service {
	log := logger.New("development")
	return New(repo, events.NewInMemoryBus(log), log)
}

func storedWidget(status string) repository.Widget {
	return repository.Widget{
		ID:             uuid.New(),
		TenantID:       uuid.New(),
		WidgetKey:      "deadbeefdeadbeefdeadbeefdeadbeef",
		Name:           "Moving Quote",
		Status:         status,
		EnabledModules: json.RawMessage(`["service-selection"]`),
		ModuleConfigs:  json.RawMessage(`{"service-selection":{"title":"Pick one"}}`),
		Branding:       json.RawMessage(`{"primary_color":"#112233"}`),
		Settings:       json.RawMessage(`{}`),
	}
}

func TestGetPublicConfiguration_UnpublishedStatusesAreNotFound(t *testing.T) {
	for _, status := range []string{repository.StatusDraft, repository.StatusPaused} {
		repo := newFakeRepo()
		widget := storedWidget(status)
		repo.widgets[widget.WidgetKey] = widget

		svc := newTestService(repo)
		_, err := svc.GetPublicConfiguration(context.Background(), widget.WidgetKey)
		if !apperr.Is(err, apperr.KindNotFound) {
			t.Fatalf("status %s: expected not-found, got %v", status, err)
		}
	}
}

func TestGetPublicConfiguration_UnknownKeyIsNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetPublicConfiguration(context.Background(), "nope")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found for unknown key, got %v", err)
	}
}

func TestGetPublicConfiguration_PublishFlipMakesKeyServable(t *testing.T) {
	repo := newFakeRepo()
	widget := storedWidget(repository.StatusDraft)
	repo.widgets[widget.WidgetKey] = widget

	svc := newTestService(repo)
	if _, err := svc.GetPublicConfiguration(context.Background(), widget.WidgetKey); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected draft widget to be not-found, got %v", err)
	}

	widget.Status = repository.StatusPublished
	repo.widgets[widget.WidgetKey] = widget

	doc, err := svc.GetPublicConfiguration(context.Background(), widget.WidgetKey)
	if err != nil {
		t.Fatalf("expected published widget to be servable, got %v", err)
	}
	if got := doc["widget_id"]; got != widget.WidgetKey {
		t.Fatalf("expected widget_id %q, got %v", widget.WidgetKey, got)
	}

	branding := doc["branding"].(map[string]interface{})
	if got := branding["primary_color"]; got != "#112233" {
		t.Fatalf("expected branding round-trip, got %v", got)
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"quotewidget_backend/internal/events"
	"quotewidget_backend/internal/leads/repository"
	"quotewidget_backend/internal/leads/transport"
	widgetrepo "quotewidget_backend/internal/widgets/repository"
	"quotewidget_backend/platform/apperr"
	"quotewidget_backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository

	created []repository.CreateParams
	leads   map[uuid.UUID]repository.Lead
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: make(map[uuid.UUID]repository.Lead)}
}

func (r *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Lead, error) {
	r.created = append(r.created, params)
	lead := repository.Lead{
		ID:             uuid.New(),
		WidgetID:       params.WidgetID,
		TenantID:       params.TenantID,
		Status:         repository.StatusNew,
		LeadData:       params.LeadData,
		ContactInfo:    params.ContactInfo,
		EstimatedValue: params.EstimatedValue,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	r.leads[lead.ID] = lead
	return lead, nil
}

type stubResolver struct {
	widget widgetrepo.Widget
	err    error
}

func (r stubResolver) ResolvePublished(context.Context, string) (widgetrepo.Widget, error) {
	return r.widget, r.err
}

type stubNotifier struct {
	err   error
	calls []LeadNotification
}

func (n *stubNotifier) NotifyLead(_ context.Context, notification LeadNotification) error {
	n.calls = append(n.calls, notification)
	return n.err
}

type stubForwarder struct {
	name   string
	result interface{}
	err    error
	inputs []ForwardInput
}

func (f *stubForwarder) Name() string { return f.name }

func (f *stubForwarder) Forward(_ context.Context, input ForwardInput) (interface{}, error) {
	f.inputs = append(f.inputs, input)
	return f.result, f.err
}

func publishedWidget() widgetrepo.Widget {
	return widgetrepo.Widget{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Name:     "Moving Quote",
		Status:   widgetrepo.StatusPublished,
	}
}

func newCaptureService(repo repository.Repository, resolver WidgetResolver, notifier Notifier, forwarders []Forwarder) *Service {
	log := logger.New("development")
	return New(repo, resolver, notifier, forwarders, events.NewInMemoryBus(log), log)
}

func TestCapture_StoresLeadAndForwards(t *testing.T) {
	repo := newFakeRepo()
	notifier := &stubNotifier{}
	first := &stubForwarder{name: "gravity_forms", result: map[string]interface{}{"status": 200.0}}
	second := &stubForwarder{name: "smartmoving", result: map[string]interface{}{"id": "lead-1"}}

	svc := newCaptureService(repo, stubResolver{widget: publishedWidget()}, notifier, []Forwarder{first, second})

	resp, err := svc.Capture(context.Background(), "abc123", transport.SubmitLeadRequest{
		Data: map[string]interface{}{
			"name":  "Jane Doe",
			"email": "jane@example.com",
			"phone": "404-555-0123",
		},
		Summary:         map[string]interface{}{"total": 1250.0},
		SmartMovingNote: "call after 5pm",
	})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored lead, got %d", len(repo.created))
	}
	if repo.created[0].EstimatedValue != 1250.0 {
		t.Fatalf("expected estimated value from summary total, got %v", repo.created[0].EstimatedValue)
	}
	var contact map[string]interface{}
	if err := json.Unmarshal(repo.created[0].ContactInfo, &contact); err != nil {
		t.Fatalf("contact info not valid JSON: %v", err)
	}
	if contact["name"] != "Jane Doe" {
		t.Fatalf("expected contact name extracted from data, got %v", contact["name"])
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.calls))
	}
	if notifier.calls[0].WidgetName != "Moving Quote" {
		t.Fatalf("expected widget name on notification, got %q", notifier.calls[0].WidgetName)
	}

	if len(first.inputs) != 1 || len(second.inputs) != 1 {
		t.Fatal("expected every adapter to be called once")
	}
	if second.inputs[0].Note != "call after 5pm" {
		t.Fatalf("expected operator note passed through, got %q", second.inputs[0].Note)
	}

	if len(resp.Forwarding) != 2 {
		t.Fatalf("expected 2 forwarding outcomes, got %d", len(resp.Forwarding))
	}
	if !resp.Forwarding["gravity_forms"].Submitted || !resp.Forwarding["smartmoving"].Submitted {
		t.Fatalf("expected both outcomes submitted, got %+v", resp.Forwarding)
	}
	if resp.LeadID == uuid.Nil {
		t.Fatal("expected a lead id in the response")
	}
}

func TestCapture_NotificationFailureAborts(t *testing.T) {
	repo := newFakeRepo()
	notifier := &stubNotifier{err: errors.New("smtp down")}
	forwarder := &stubForwarder{name: "smartmoving", result: map[string]interface{}{}}

	svc := newCaptureService(repo, stubResolver{widget: publishedWidget()}, notifier, []Forwarder{forwarder})

	_, err := svc.Capture(context.Background(), "abc123", transport.SubmitLeadRequest{
		Data: map[string]interface{}{"name": "Jo"},
	})
	if !apperr.Is(err, apperr.KindExternal) {
		t.Fatalf("expected external error when notification fails, got %v", err)
	}
	if len(forwarder.inputs) != 0 {
		t.Fatal("expected no forwarding after a failed notification")
	}
	if len(repo.created) != 1 {
		t.Fatal("expected the lead to be stored before the notification attempt")
	}
}

func TestCapture_AdapterFailureDoesNotAbort(t *testing.T) {
	repo := newFakeRepo()
	failing := &stubForwarder{name: "gravity_forms", err: errors.New("form API returned 500")}
	healthy := &stubForwarder{name: "smartmoving", result: map[string]interface{}{"id": "lead-2"}}

	svc := newCaptureService(repo, stubResolver{widget: publishedWidget()}, &stubNotifier{}, []Forwarder{failing, healthy})

	resp, err := svc.Capture(context.Background(), "abc123", transport.SubmitLeadRequest{
		Data: map[string]interface{}{"name": "Jo"},
	})
	if err != nil {
		t.Fatalf("expected capture to survive an adapter failure, got %v", err)
	}

	outcome := resp.Forwarding["gravity_forms"]
	if outcome.Submitted || outcome.Error == "" {
		t.Fatalf("expected a failed outcome with a reason, got %+v", outcome)
	}
	if !resp.Forwarding["smartmoving"].Submitted {
		t.Fatal("expected the later adapter to still run")
	}
	if len(healthy.inputs) != 1 {
		t.Fatal("expected the healthy adapter to be called")
	}
}

func TestCapture_UnpublishedWidget(t *testing.T) {
	svc := newCaptureService(newFakeRepo(), stubResolver{err: apperr.NotFound("widget not found")}, &stubNotifier{}, nil)

	_, err := svc.Capture(context.Background(), "missing", transport.SubmitLeadRequest{
		Data: map[string]interface{}{},
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for an unresolvable key, got %v", err)
	}
}

func TestCapture_NilNotifierSkipsNotification(t *testing.T) {
	repo := newFakeRepo()
	svc := newCaptureService(repo, stubResolver{widget: publishedWidget()}, nil, nil)

	resp, err := svc.Capture(context.Background(), "abc123", transport.SubmitLeadRequest{
		Data: map[string]interface{}{"name": "Jo"},
	})
	if err != nil {
		t.Fatalf("expected capture without a notifier to succeed, got %v", err)
	}
	if len(resp.Forwarding) != 0 {
		t.Fatalf("expected no forwarding outcomes, got %+v", resp.Forwarding)
	}
}

func TestCapture_ExplicitContactInfoWins(t *testing.T) {
	repo := newFakeRepo()
	svc := newCaptureService(repo, stubResolver{widget: publishedWidget()}, nil, nil)

	_, err := svc.Capture(context.Background(), "abc123", transport.SubmitLeadRequest{
		Data:        map[string]interface{}{"name": "From Data", "email": "data@example.com"},
		ContactInfo: map[string]interface{}{"name": "Explicit Name"},
	})
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	var contact map[string]interface{}
	if err := json.Unmarshal(repo.created[0].ContactInfo, &contact); err != nil {
		t.Fatalf("contact info not valid JSON: %v", err)
	}
	if contact["name"] != "Explicit Name" {
		t.Fatalf("expected explicit contact name to win, got %v", contact["name"])
	}
	if contact["email"] != "data@example.com" {
		t.Fatalf("expected data email as fallback, got %v", contact["email"])
	}
}

func TestEstimatedValue(t *testing.T) {
	tests := []struct {
		name    string
		summary map[string]interface{}
		want    float64
	}{
		{"float total", map[string]interface{}{"total": 999.5}, 999.5},
		{"string total", map[string]interface{}{"total": "450"}, 450},
		{"missing total", map[string]interface{}{"subtotal": 10.0}, 0},
		{"nil summary", nil, 0},
		{"unparseable string", map[string]interface{}{"total": "n/a"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimatedValue(tt.summary); got != tt.want {
				t.Fatalf("estimatedValue = %v, want %v", got, tt.want)
			}
		})
	}
}

// Package service contains the lead capture and administration logic.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"quotewidget_backend/internal/events"
	"quotewidget_backend/internal/leads/repository"
	"quotewidget_backend/internal/leads/transport"
	widgetrepo "quotewidget_backend/internal/widgets/repository"
	"quotewidget_backend/platform/apperr"
	"quotewidget_backend/platform/fields"
	"quotewidget_backend/platform/logger"
	"quotewidget_backend/platform/phone"
)

// WidgetResolver maps a public widget key to its published widget.
// Satisfied by the widgets service.
type WidgetResolver interface {
	ResolvePublished(ctx context.Context, widgetKey string) (widgetrepo.Widget, error)
}

// Service implements lead capture and administration.
type Service struct {
	repo       repository.Repository
	widgets    WidgetResolver
	notifier   Notifier
	forwarders []Forwarder
	bus        events.Bus
	log        *logger.Logger
}

// New creates the leads service. notifier may be nil when the notification
// channel is disabled; forwarders holds only the configured adapters, in
// call order.
func New(repo repository.Repository, widgets WidgetResolver, notifier Notifier, forwarders []Forwarder, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		widgets:    widgets,
		notifier:   notifier,
		forwarders: forwarders,
		bus:        bus,
		log:        log,
	}
}

// Capture runs the full lead-submission flow for a published widget: store
// the lead, deliver the primary notification, then hand the lead to each
// forwarding adapter in turn. The notification is the one fatal step;
// adapter failures are logged and reported per adapter but never abort
// the capture.
func (s *Service) Capture(ctx context.Context, widgetKey string, req transport.SubmitLeadRequest) (transport.SubmitLeadResponse, error) {
	const op = "leads.Capture"

	widget, err := s.widgets.ResolvePublished(ctx, widgetKey)
	if err != nil {
		return transport.SubmitLeadResponse{}, err
	}

	contact := buildContactInfo(req.Data, req.ContactInfo)

	leadData, err := json.Marshal(req.Data)
	if err != nil {
		return transport.SubmitLeadResponse{}, apperr.Wrap(apperr.KindBadRequest, "encode lead data", err).WithOp(op)
	}
	contactJSON, err := json.Marshal(contact)
	if err != nil {
		return transport.SubmitLeadResponse{}, apperr.Wrap(apperr.KindInternal, "encode contact info", err).WithOp(op)
	}

	lead, err := s.repo.Create(ctx, repository.CreateParams{
		WidgetID:       widget.ID,
		TenantID:       widget.TenantID,
		LeadData:       leadData,
		ContactInfo:    contactJSON,
		EstimatedValue: estimatedValue(req.Summary),
	})
	if err != nil {
		return transport.SubmitLeadResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	log := s.log.WithWidget(widgetKey)

	if s.notifier != nil {
		notification := LeadNotification{
			WidgetName:  widget.Name,
			WidgetKey:   widgetKey,
			ContactName: fields.Stringify(contact["name"]),
			Email:       fields.Stringify(contact["email"]),
			Phone:       fields.Stringify(contact["phone"]),
			Data:        req.Data,
			Summary:     req.Summary,
		}
		if err := s.notifier.NotifyLead(ctx, notification); err != nil {
			log.Error("lead notification failed", "lead_id", lead.ID, "error", err)
			return transport.SubmitLeadResponse{}, apperr.Wrap(apperr.KindExternal, "lead notification failed", err).WithOp(op)
		}
	}

	input := ForwardInput{
		WidgetKey: widgetKey,
		Data:      req.Data,
		Note:      req.SmartMovingNote,
	}

	outcomes := make(map[string]transport.ForwardOutcome, len(s.forwarders))
	var forwarded []string
	for _, forwarder := range s.forwarders {
		result, err := forwarder.Forward(ctx, input)
		if err != nil {
			log.ForwardingEvent(forwarder.Name(), widgetKey, false, err.Error())
			outcomes[forwarder.Name()] = transport.ForwardOutcome{Submitted: false, Error: err.Error()}
			continue
		}
		log.ForwardingEvent(forwarder.Name(), widgetKey, true, "")
		outcomes[forwarder.Name()] = transport.ForwardOutcome{Submitted: true, Data: result}
		forwarded = append(forwarded, forwarder.Name())
	}

	s.bus.Publish(ctx, events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		WidgetID:  widget.ID,
		WidgetKey: widgetKey,
		Forwarded: forwarded,
	})

	return transport.SubmitLeadResponse{
		LeadID:     lead.ID,
		Forwarding: outcomes,
	}, nil
}

// GetByID retrieves one lead for the tenant.
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (repository.Lead, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// List pages the tenant's leads, optionally scoped to one widget.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, query transport.ListLeadsQuery) (transport.ListLeadsResponse, error) {
	params := repository.ListParams{
		TenantID: tenantID,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if query.WidgetID != "" {
		widgetID, err := uuid.Parse(query.WidgetID)
		if err != nil {
			return transport.ListLeadsResponse{}, apperr.BadRequest("invalid widget_id filter")
		}
		params.WidgetID = &widgetID
	}

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.ListLeadsResponse{}, err
	}
	if leads == nil {
		leads = []repository.Lead{}
	}

	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return transport.ListLeadsResponse{
		Leads:  leads,
		Total:  total,
		Limit:  limit,
		Offset: params.Offset,
	}, nil
}

// SetStatus moves a lead through the pipeline. All transitions between the
// known statuses are allowed.
func (s *Service) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (repository.Lead, error) {
	if !repository.ValidStatus(status) {
		return repository.Lead{}, apperr.Validation("invalid lead status")
	}
	return s.repo.SetStatus(ctx, tenantID, id, status)
}

// Delete removes a lead permanently.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// buildContactInfo assembles the normalized contact block stored on the
// lead. Explicit contact_info wins over answers captured in data.
func buildContactInfo(data, explicit map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{})

	name := fields.FirstString(explicit, "name", "full_name")
	if name == "" {
		name = fields.FirstString(data, "name", "full_name", "fullName", "contact_name")
	}
	email := fields.FirstString(explicit, "email")
	if email == "" {
		email = fields.FirstString(data, "email", "email_address", "contact_email")
	}
	rawPhone := fields.FirstString(explicit, "phone")
	if rawPhone == "" {
		rawPhone = fields.Stringify(fields.FirstPresent(data, "phone", "phone_number", "contact_phone"))
	}

	if name != "" {
		merged["name"] = name
	}
	if email != "" {
		merged["email"] = email
	}
	if rawPhone != "" {
		merged["phone"] = phone.NormalizeE164(rawPhone)
	}
	return merged
}

// estimatedValue reads the quoted total off the pricing summary. A missing
// or malformed summary prices the lead at zero.
func estimatedValue(summary map[string]interface{}) float64 {
	if summary == nil {
		return 0
	}
	switch total := summary["total"].(type) {
	case float64:
		return total
	case int:
		return float64(total)
	case string:
		var parsed float64
		if _, err := fmt.Sscanf(total, "%f", &parsed); err == nil {
			return parsed
		}
	}
	return 0
}

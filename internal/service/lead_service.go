package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/events"
	"github.com/spec-kit/doorknock-service/internal/repository"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// LeadService coordinates lead workflows.
type LeadService struct {
	leads      repository.LeadRepository
	actors     repository.ActorRepository
	visibility *VisibilityService
	dispatcher events.Dispatcher
}

// LeadDependencies bundles collaborators for the lead service.
type LeadDependencies struct {
	LeadRepo   repository.LeadRepository
	ActorRepo  repository.ActorRepository
	Visibility *VisibilityService
	Dispatcher events.Dispatcher
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	return &LeadService{
		leads:      deps.LeadRepo,
		actors:     deps.ActorRepo,
		visibility: deps.Visibility,
		dispatcher: deps.Dispatcher,
	}
}

// LeadCreateInput describes lead creation payload.
type LeadCreateInput struct {
	Latitude  float64
	Longitude float64
	Address   string
	Notes     string
	Status    domain.LeadStatus
}

// LeadUpdateInput carries the owner-editable lead fields; nil means keep.
type LeadUpdateInput struct {
	Status  *domain.LeadStatus
	Notes   *string
	Address *string
}

// LeadListFilter describes listing parameters.
type LeadListFilter struct {
	UnitID   string
	Statuses []domain.LeadStatus
	Limit    int
	Offset   int
}

// CreateLead records a new prospect owned by the acting actor.
func (s *LeadService) CreateLead(ctx context.Context, actor *domain.Actor, input LeadCreateInput) (*domain.Lead, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	status := input.Status
	if status == "" {
		status = domain.LeadStatusUntouched
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown lead status", map[string]any{"status": status})
	}

	lead := &domain.Lead{
		ExternalKey: generateLeadKey(),
		OwnerID:     actor.ID,
		Status:      status,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Address:     strings.TrimSpace(input.Address),
		Notes:       strings.TrimSpace(input.Notes),
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventLeadCreated,
		SubjectID: lead.ID,
		ActorID:   actor.ID,
		Payload: events.LeadCreatedPayload{
			OwnerID: lead.OwnerID,
			Status:  lead.Status,
			Address: lead.Address,
		},
	})
	return lead, nil
}

// ListLeads returns the leads visible to the actor.
func (s *LeadService) ListLeads(ctx context.Context, actor *domain.Actor, filter LeadListFilter) ([]domain.Lead, error) {
	return s.visibility.VisibleLeads(ctx, actor, filter.UnitID, repository.LeadFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
}

// GetLead fetches a lead ensuring it falls inside the actor's scope.
func (s *LeadService) GetLead(ctx context.Context, actor *domain.Actor, leadID string) (*domain.Lead, error) {
	lead, err := s.fetchLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if err := s.visibility.CanMutateLead(ctx, actor, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// UpdateLead applies status/notes/address changes. Only the current owner
// of record edits a lead; supervisors change ownership through Reassign.
func (s *LeadService) UpdateLead(ctx context.Context, actor *domain.Actor, leadID string, input LeadUpdateInput) (*domain.Lead, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	lead, err := s.fetchLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.OwnerID != actor.ID {
		return nil, apperrors.NewForbidden("only the owning actor may edit a lead")
	}

	oldStatus := lead.Status
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("unknown lead status", map[string]any{"status": *input.Status})
		}
		lead.Status = *input.Status
	}
	if input.Notes != nil {
		lead.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.Address != nil {
		lead.Address = strings.TrimSpace(*input.Address)
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}
	if lead.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventLeadStatusChanged,
			SubjectID: lead.ID,
			ActorID:   actor.ID,
			Payload: events.LeadStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: lead.Status,
			},
		})
	}
	return lead, nil
}

// LogVisit marks a door as knocked, recording the visit timestamp on first
// contact and applying the resulting disposition.
func (s *LeadService) LogVisit(ctx context.Context, actor *domain.Actor, leadID string, status domain.LeadStatus) (*domain.Lead, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown lead status", map[string]any{"status": status})
	}
	lead, err := s.fetchLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.OwnerID != actor.ID {
		return nil, apperrors.NewForbidden("only the owning actor may log a visit")
	}

	if lead.VisitedAt == nil {
		now := time.Now()
		lead.VisitedAt = &now
	}
	lead.Status = status
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventLeadVisited,
		SubjectID: lead.ID,
		ActorID:   actor.ID,
		Payload: events.LeadVisitedPayload{
			VisitedAt: *lead.VisitedAt,
			Status:    lead.Status,
		},
	})
	return lead, nil
}

// ReassignLead transfers ownership to another actor. Restricted to the
// supervising tiers; both the lead and the new owner must fall inside the
// acting actor's scope.
func (s *LeadService) ReassignLead(ctx context.Context, actor *domain.Actor, leadID, newOwnerID string) (*domain.Lead, error) {
	if err := requireSupervisor(actor); err != nil {
		return nil, err
	}
	lead, err := s.fetchLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if err := s.visibility.CanMutateLead(ctx, actor, lead); err != nil {
		return nil, err
	}

	newOwner, err := s.actors.GetByID(ctx, newOwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("actor", map[string]any{"actor_id": newOwnerID})
		}
		return nil, apperrors.MapError(err)
	}
	if !newOwner.Active {
		return nil, apperrors.NewConflict("new owner inactive", map[string]any{"actor_id": newOwnerID})
	}
	if err := s.visibility.CanMutateActor(actor, newOwner); err != nil {
		return nil, err
	}

	oldOwnerID := lead.OwnerID
	if err := s.leads.Reassign(ctx, lead.ID, newOwner.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	lead.OwnerID = newOwner.ID
	s.publishEvent(ctx, events.Event{
		Type:      events.EventLeadReassigned,
		SubjectID: lead.ID,
		ActorID:   actor.ID,
		Payload: events.LeadReassignedPayload{
			OldOwnerID: oldOwnerID,
			NewOwnerID: newOwner.ID,
		},
	})
	return lead, nil
}

// DeleteLead removes a lead inside the actor's scope.
func (s *LeadService) DeleteLead(ctx context.Context, actor *domain.Actor, leadID string) error {
	lead, err := s.fetchLead(ctx, leadID)
	if err != nil {
		return err
	}
	if err := s.visibility.CanMutateLead(ctx, actor, lead); err != nil {
		return err
	}
	if err := s.leads.Delete(ctx, lead.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *LeadService) fetchLead(ctx context.Context, leadID string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}
	return lead, nil
}

func requireSupervisor(actor *domain.Actor) error {
	if actor == nil {
		return apperrors.NewUnauthorized("acting identity required")
	}
	if actor.Role != domain.RoleOwner && actor.Role != domain.RoleManager {
		return apperrors.NewForbidden("insufficient role for reassignment")
	}
	return nil
}

func generateLeadKey() string {
	return "LD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *LeadService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

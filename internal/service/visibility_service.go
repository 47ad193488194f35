package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/repository"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// VisibilityService computes which actors and leads a given actor may see
// or mutate. Role scoping comes first; an optional org-unit filter can only
// shrink the role-scoped result, never widen it. Every method takes the
// acting identity explicitly.
type VisibilityService struct {
	actors    repository.ActorRepository
	leads     repository.LeadRepository
	hierarchy *HierarchyService
}

// NewVisibilityService constructs the service.
func NewVisibilityService(actors repository.ActorRepository, leads repository.LeadRepository, hierarchy *HierarchyService) *VisibilityService {
	return &VisibilityService{actors: actors, leads: leads, hierarchy: hierarchy}
}

// VisibleActors returns the actors the viewer is permitted to view and
// administer: owners see everyone, managers see themselves plus their
// direct reports, reps see only themselves. A non-empty unitID narrows the
// result to members of that unit or any of its descendants.
func (s *VisibilityService) VisibleActors(ctx context.Context, viewer *domain.Actor, unitID string) ([]domain.Actor, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}

	var visible []domain.Actor
	switch viewer.Role {
	case domain.RoleOwner:
		all, err := s.actors.List(ctx, repository.ActorFilter{})
		if err != nil {
			return nil, err
		}
		visible = all
	case domain.RoleManager:
		reports, err := s.actors.List(ctx, repository.ActorFilter{ManagerID: &viewer.ID})
		if err != nil {
			return nil, err
		}
		visible = append([]domain.Actor{*viewer}, reports...)
	default:
		visible = []domain.Actor{*viewer}
	}

	if unitID == "" {
		return visible, nil
	}

	scope, err := s.hierarchy.ScopeSet(ctx, unitID)
	if err != nil {
		return nil, err
	}
	narrowed := make([]domain.Actor, 0, len(visible))
	for _, actor := range visible {
		if actor.OrgUnitID == nil {
			continue
		}
		if _, ok := scope[*actor.OrgUnitID]; ok {
			narrowed = append(narrowed, actor)
		}
	}
	return narrowed, nil
}

// VisibleLeads returns the leads the viewer is permitted to view, owned by
// any actor in the viewer's (optionally unit-narrowed) actor scope. Status
// and paging filters pass through; the ownership constraint always wins.
func (s *VisibilityService) VisibleLeads(ctx context.Context, viewer *domain.Actor, unitID string, filter repository.LeadFilter) ([]domain.Lead, error) {
	if viewer == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}

	if viewer.Role == domain.RoleOwner && unitID == "" {
		filter.OwnerIDs = nil
		return s.leads.ListWithFilter(ctx, filter)
	}

	actors, err := s.VisibleActors(ctx, viewer, unitID)
	if err != nil {
		return nil, err
	}
	ownerIDs := make([]string, 0, len(actors))
	for _, actor := range actors {
		ownerIDs = append(ownerIDs, actor.ID)
	}
	filter.OwnerIDs = ownerIDs
	return s.leads.ListWithFilter(ctx, filter)
}

// CanMutateActor verifies the target actor falls inside the viewer's scope
// before any write. Denials are typed, never silent.
func (s *VisibilityService) CanMutateActor(viewer, target *domain.Actor) error {
	if viewer == nil {
		return apperrors.NewUnauthorized("acting identity required")
	}
	switch viewer.Role {
	case domain.RoleOwner:
		return nil
	case domain.RoleManager:
		if target.ID == viewer.ID || target.ReportsTo(viewer.ID) {
			return nil
		}
	default:
		if target.ID == viewer.ID {
			return nil
		}
	}
	return apperrors.NewForbidden("actor outside your scope")
}

// CanMutateLead verifies the lead falls inside the viewer's scope before
// any write.
func (s *VisibilityService) CanMutateLead(ctx context.Context, viewer *domain.Actor, lead *domain.Lead) error {
	if viewer == nil {
		return apperrors.NewUnauthorized("acting identity required")
	}
	switch viewer.Role {
	case domain.RoleOwner:
		return nil
	case domain.RoleManager:
		if lead.OwnerID == viewer.ID {
			return nil
		}
		owner, err := s.actors.GetByID(ctx, lead.OwnerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewForbidden("lead outside your scope")
			}
			return apperrors.MapError(err)
		}
		if owner.ReportsTo(viewer.ID) {
			return nil
		}
	default:
		if lead.OwnerID == viewer.ID {
			return nil
		}
	}
	return apperrors.NewForbidden("lead outside your scope")
}

// CanAssignRole enforces the tier rules for role changes: owners are
// unrestricted, managers may only assign the rep tier.
func (s *VisibilityService) CanAssignRole(viewer *domain.Actor, role domain.Role) error {
	if viewer == nil {
		return apperrors.NewUnauthorized("acting identity required")
	}
	switch viewer.Role {
	case domain.RoleOwner:
		return nil
	case domain.RoleManager:
		if role == domain.RoleRep {
			return nil
		}
		return apperrors.NewForbidden("managers may only assign the rep role")
	default:
		return apperrors.NewForbidden("insufficient role for actor administration")
	}
}

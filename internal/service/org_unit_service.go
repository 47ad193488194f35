package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/repository"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// OrgUnitService administers the region > area > team containment tree.
// Owners manage the whole tree; managers manage units inside their own
// unit's subtree. Reps have no administrative access.
type OrgUnitService struct {
	units     repository.OrgUnitRepository
	hierarchy *HierarchyService
}

// NewOrgUnitService constructs the service.
func NewOrgUnitService(units repository.OrgUnitRepository, hierarchy *HierarchyService) *OrgUnitService {
	return &OrgUnitService{units: units, hierarchy: hierarchy}
}

// OrgUnitCreateInput describes unit creation payload.
type OrgUnitCreateInput struct {
	Name     string
	Level    domain.OrgUnitLevel
	ParentID *string
}

// OrgUnitUpdateInput carries the editable unit fields; nil means keep.
// ParentID set to the empty string detaches the unit to a root.
type OrgUnitUpdateInput struct {
	Name     *string
	ParentID *string
}

// CreateUnit adds a node to the tree. Level nesting rules apply: teams
// under areas or regions, areas under regions, regions as roots.
func (s *OrgUnitService) CreateUnit(ctx context.Context, actor *domain.Actor, input OrgUnitCreateInput) (*domain.OrgUnit, error) {
	if err := s.requireAdmin(ctx, actor, input.ParentID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	switch input.Level {
	case domain.OrgUnitLevelRegion, domain.OrgUnitLevelArea, domain.OrgUnitLevelTeam:
	default:
		return nil, apperrors.NewValidationError("unknown org unit level", map[string]any{"level": input.Level})
	}

	if input.ParentID == nil {
		if input.Level != domain.OrgUnitLevelRegion {
			return nil, apperrors.NewValidationError("only regions may be roots", map[string]any{"level": input.Level})
		}
	} else {
		parent, err := s.fetchUnit(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if !domain.ParentLevelAllowed(input.Level, parent.Level) {
			return nil, apperrors.NewValidationError("invalid parent level for unit", map[string]any{
				"level":        input.Level,
				"parent_level": parent.Level,
			})
		}
	}

	unit := &domain.OrgUnit{
		Name:     name,
		Level:    input.Level,
		ParentID: input.ParentID,
	}
	if err := s.units.Create(ctx, unit); err != nil {
		return nil, apperrors.MapError(err)
	}
	return unit, nil
}

// ListUnits returns the full tree as a flat slice in creation order.
func (s *OrgUnitService) ListUnits(ctx context.Context, actor *domain.Actor) ([]domain.OrgUnit, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	units, err := s.units.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return units, nil
}

// GetUnit fetches one unit.
func (s *OrgUnitService) GetUnit(ctx context.Context, actor *domain.Actor, unitID string) (*domain.OrgUnit, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	return s.fetchUnit(ctx, unitID)
}

// UpdateUnit renames a unit or moves it under a new parent. Re-parenting
// re-validates the level rules and refuses moves that would close a loop.
func (s *OrgUnitService) UpdateUnit(ctx context.Context, actor *domain.Actor, unitID string, input OrgUnitUpdateInput) (*domain.OrgUnit, error) {
	if err := s.requireAdmin(ctx, actor, &unitID); err != nil {
		return nil, err
	}
	unit, err := s.fetchUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name is required", nil)
		}
		unit.Name = name
	}
	if input.ParentID != nil {
		if *input.ParentID == "" {
			if unit.Level != domain.OrgUnitLevelRegion {
				return nil, apperrors.NewValidationError("only regions may be roots", map[string]any{"level": unit.Level})
			}
			unit.ParentID = nil
		} else {
			if *input.ParentID == unit.ID {
				return nil, apperrors.NewValidationError("unit cannot be its own parent", nil)
			}
			parent, err := s.fetchUnit(ctx, *input.ParentID)
			if err != nil {
				return nil, err
			}
			if !domain.ParentLevelAllowed(unit.Level, parent.Level) {
				return nil, apperrors.NewValidationError("invalid parent level for unit", map[string]any{
					"level":        unit.Level,
					"parent_level": parent.Level,
				})
			}
			all, err := s.units.List(ctx)
			if err != nil {
				return nil, apperrors.MapError(err)
			}
			if wouldCycle(all, unit.ID, parent.ID) {
				return nil, apperrors.NewValidationError("move would create a cycle", map[string]any{
					"org_unit_id":    unit.ID,
					"parent_unit_id": parent.ID,
				})
			}
			unit.ParentID = input.ParentID
		}
	}

	if err := s.units.Update(ctx, unit); err != nil {
		return nil, apperrors.MapError(err)
	}
	return unit, nil
}

// DeleteUnit removes a unit. Owner only, and only for leaves; delete the
// children first.
func (s *OrgUnitService) DeleteUnit(ctx context.Context, actor *domain.Actor, unitID string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("acting identity required")
	}
	if actor.Role != domain.RoleOwner {
		return apperrors.NewForbidden("only owners may delete org units")
	}
	if _, err := s.fetchUnit(ctx, unitID); err != nil {
		return err
	}
	children, err := s.hierarchy.DescendantIDs(ctx, unitID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if len(children) > 0 {
		return apperrors.NewConflict("unit still has child units", map[string]any{"org_unit_id": unitID})
	}
	if err := s.units.Delete(ctx, unitID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// requireAdmin gates tree mutations. Owners pass unconditionally; managers
// pass when the touched position falls inside their own unit's subtree.
func (s *OrgUnitService) requireAdmin(ctx context.Context, actor *domain.Actor, unitID *string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("acting identity required")
	}
	switch actor.Role {
	case domain.RoleOwner:
		return nil
	case domain.RoleManager:
		if actor.OrgUnitID == nil || unitID == nil {
			return apperrors.NewForbidden("unit outside your scope")
		}
		scope, err := s.hierarchy.ScopeSet(ctx, *actor.OrgUnitID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if _, ok := scope[*unitID]; ok {
			return nil
		}
		return apperrors.NewForbidden("unit outside your scope")
	default:
		return apperrors.NewForbidden("insufficient role for org unit administration")
	}
}

func (s *OrgUnitService) fetchUnit(ctx context.Context, unitID string) (*domain.OrgUnit, error) {
	unit, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("org unit", map[string]any{"org_unit_id": unitID})
		}
		return nil, apperrors.MapError(err)
	}
	return unit, nil
}

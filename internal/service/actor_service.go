package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/doorknock-service/internal/auth"
	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/repository"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// ActorService administers the people in the system. Every mutation runs
// through the visibility resolver first, so a manager can only touch
// themselves and their direct reports.
type ActorService struct {
	actors     repository.ActorRepository
	units      repository.OrgUnitRepository
	visibility *VisibilityService
	bcryptCost int
}

// NewActorService constructs the service.
func NewActorService(actors repository.ActorRepository, units repository.OrgUnitRepository, visibility *VisibilityService, bcryptCost int) *ActorService {
	return &ActorService{actors: actors, units: units, visibility: visibility, bcryptCost: bcryptCost}
}

// ActorCreateInput describes actor creation payload.
type ActorCreateInput struct {
	Name      string
	Phone     string
	Email     string
	Password  string
	Role      domain.Role
	ManagerID *string
	OrgUnitID *string
}

// ActorUpdateInput carries the editable actor fields; nil means keep.
type ActorUpdateInput struct {
	Name      *string
	Phone     *string
	Email     *string
	Password  *string
	Role      *domain.Role
	ManagerID *string
	OrgUnitID *string
	Active    *bool
}

// CreateActor provisions a new actor. Owners create any tier; managers may
// only create reps, and those reps report to the creating manager.
func (s *ActorService) CreateActor(ctx context.Context, actor *domain.Actor, input ActorCreateInput) (*domain.Actor, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	role, ok := domain.NormalizeRole(string(input.Role))
	if !ok {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if err := s.visibility.CanAssignRole(actor, role); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, apperrors.NewValidationError("phone is required", nil)
	}

	managerID := input.ManagerID
	if role != domain.RoleRep {
		managerID = nil
	}
	if actor.Role == domain.RoleManager {
		managerID = &actor.ID
	}
	if role == domain.RoleRep && managerID != nil {
		if err := s.validateManagerRef(ctx, *managerID); err != nil {
			return nil, err
		}
	}
	if input.OrgUnitID != nil {
		if err := s.validateUnitRef(ctx, *input.OrgUnitID); err != nil {
			return nil, err
		}
	}

	var passwordHash string
	if input.Password != "" {
		hashed, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		passwordHash = hashed
	}

	target := &domain.Actor{
		Name:         name,
		Phone:        phone,
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		PasswordHash: passwordHash,
		Role:         role,
		ManagerID:    managerID,
		OrgUnitID:    input.OrgUnitID,
		Active:       true,
	}
	if err := s.actors.Create(ctx, target); err != nil {
		return nil, apperrors.MapError(err)
	}
	return target, nil
}

// ListActors returns the actors visible to the viewer, optionally narrowed
// to an org unit subtree.
func (s *ActorService) ListActors(ctx context.Context, actor *domain.Actor, unitID string) ([]domain.Actor, error) {
	return s.visibility.VisibleActors(ctx, actor, unitID)
}

// GetActor fetches one actor inside the viewer's scope.
func (s *ActorService) GetActor(ctx context.Context, actor *domain.Actor, targetID string) (*domain.Actor, error) {
	target, err := s.fetchActor(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.visibility.CanMutateActor(actor, target); err != nil {
		return nil, err
	}
	return target, nil
}

// UpdateActor applies profile, role, reporting and activation changes.
// Deactivating or demoting yourself is refused so an org cannot lock out
// its last administrator by accident.
func (s *ActorService) UpdateActor(ctx context.Context, actor *domain.Actor, targetID string, input ActorUpdateInput) (*domain.Actor, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("acting identity required")
	}
	target, err := s.fetchActor(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.visibility.CanMutateActor(actor, target); err != nil {
		return nil, err
	}

	if input.Role != nil {
		role, ok := domain.NormalizeRole(string(*input.Role))
		if !ok {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *input.Role})
		}
		if role != target.Role {
			if target.ID == actor.ID {
				return nil, apperrors.NewForbidden("you cannot change your own role")
			}
			if err := s.visibility.CanAssignRole(actor, role); err != nil {
				return nil, err
			}
			target.Role = role
			// Only reps carry a supervising reference.
			if role != domain.RoleRep {
				target.ManagerID = nil
			}
		}
	}
	if input.Active != nil && *input.Active != target.Active {
		if target.ID == actor.ID {
			return nil, apperrors.NewForbidden("you cannot deactivate yourself")
		}
		target.Active = *input.Active
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name is required", nil)
		}
		target.Name = name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone == "" {
			return nil, apperrors.NewValidationError("phone is required", nil)
		}
		target.Phone = phone
	}
	if input.Email != nil {
		target.Email = strings.TrimSpace(strings.ToLower(*input.Email))
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		target.PasswordHash = hashed
	}
	if input.ManagerID != nil {
		if *input.ManagerID == "" {
			target.ManagerID = nil
		} else {
			if target.Role != domain.RoleRep {
				return nil, apperrors.NewValidationError("only reps report to a manager", map[string]any{"actor_id": target.ID})
			}
			if err := s.validateManagerRef(ctx, *input.ManagerID); err != nil {
				return nil, err
			}
			target.ManagerID = input.ManagerID
		}
	}
	if input.OrgUnitID != nil {
		if *input.OrgUnitID == "" {
			target.OrgUnitID = nil
		} else {
			if err := s.validateUnitRef(ctx, *input.OrgUnitID); err != nil {
				return nil, err
			}
			target.OrgUnitID = input.OrgUnitID
		}
	}

	if err := s.actors.Update(ctx, target); err != nil {
		return nil, apperrors.MapError(err)
	}
	return target, nil
}

// DeleteActor removes an actor permanently. Restricted to owners; day to
// day offboarding goes through deactivation instead.
func (s *ActorService) DeleteActor(ctx context.Context, actor *domain.Actor, targetID string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("acting identity required")
	}
	if actor.Role != domain.RoleOwner {
		return apperrors.NewForbidden("only owners may delete actors")
	}
	if actor.ID == targetID {
		return apperrors.NewForbidden("you cannot delete yourself")
	}
	if _, err := s.fetchActor(ctx, targetID); err != nil {
		return err
	}
	if err := s.actors.Delete(ctx, targetID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ActorService) fetchActor(ctx context.Context, id string) (*domain.Actor, error) {
	target, err := s.actors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("actor", map[string]any{"actor_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return target, nil
}

func (s *ActorService) validateManagerRef(ctx context.Context, managerID string) error {
	manager, err := s.actors.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("manager does not exist", map[string]any{"manager_actor_id": managerID})
		}
		return apperrors.MapError(err)
	}
	// Only mid-tier managers supervise reps. Owners see everyone anyway
	// and a rep reporting to one would sit outside every manager scope.
	if manager.Role != domain.RoleManager {
		return apperrors.NewValidationError("referenced actor cannot supervise reps", map[string]any{"manager_actor_id": managerID})
	}
	return nil
}

func (s *ActorService) validateUnitRef(ctx context.Context, unitID string) error {
	if _, err := s.units.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("org unit does not exist", map[string]any{"org_unit_id": unitID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

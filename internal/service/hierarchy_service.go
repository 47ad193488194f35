package service

import (
	"context"

	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/repository"
)

// HierarchyService answers containment questions over the org-unit tree.
type HierarchyService struct {
	units repository.OrgUnitRepository
}

// NewHierarchyService constructs the service.
func NewHierarchyService(units repository.OrgUnitRepository) *HierarchyService {
	return &HierarchyService{units: units}
}

// DescendantIDs returns every unit transitively parented by unitID,
// excluding unitID itself. An unknown unit yields an empty set. The walk is
// iterative with a visited set, so a corrupted parent chain that loops
// terminates instead of recursing forever.
func (s *HierarchyService) DescendantIDs(ctx context.Context, unitID string) (map[string]struct{}, error) {
	units, err := s.units.List(ctx)
	if err != nil {
		return nil, err
	}
	return descendantIDs(units, unitID), nil
}

// ScopeSet returns {unitID} plus all descendants, the membership set used
// for org-unit narrowing.
func (s *HierarchyService) ScopeSet(ctx context.Context, unitID string) (map[string]struct{}, error) {
	set, err := s.DescendantIDs(ctx, unitID)
	if err != nil {
		return nil, err
	}
	set[unitID] = struct{}{}
	return set, nil
}

func descendantIDs(units []domain.OrgUnit, unitID string) map[string]struct{} {
	children := make(map[string][]string, len(units))
	for _, unit := range units {
		if unit.ParentID == nil {
			continue
		}
		children[*unit.ParentID] = append(children[*unit.ParentID], unit.ID)
	}

	result := make(map[string]struct{})
	visited := map[string]struct{}{unitID: {}}
	queue := []string{unitID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			result[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return result
}

// wouldCycle reports whether re-parenting unitID under newParentID would
// close a loop in the parent chain.
func wouldCycle(units []domain.OrgUnit, unitID, newParentID string) bool {
	parents := make(map[string]*string, len(units))
	for _, unit := range units {
		parents[unit.ID] = unit.ParentID
	}

	visited := make(map[string]struct{})
	current := newParentID
	for {
		if current == unitID {
			return true
		}
		if _, seen := visited[current]; seen {
			return false
		}
		visited[current] = struct{}{}
		parent, ok := parents[current]
		if !ok || parent == nil {
			return false
		}
		current = *parent
	}
}

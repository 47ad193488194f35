package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

func seedTree(repo *fakeOrgUnitRepo) {
	seedUnit(repo, domain.OrgUnit{ID: "west", Name: "West", Level: domain.OrgUnitLevelRegion})
	seedUnit(repo, domain.OrgUnit{ID: "bay", Name: "Bay", Level: domain.OrgUnitLevelArea, ParentID: strPtr("west")})
	seedUnit(repo, domain.OrgUnit{ID: "alpha", Name: "Alpha", Level: domain.OrgUnitLevelTeam, ParentID: strPtr("bay")})
	seedUnit(repo, domain.OrgUnit{ID: "east", Name: "East", Level: domain.OrgUnitLevelRegion})
	seedUnit(repo, domain.OrgUnit{ID: "bravo", Name: "Bravo", Level: domain.OrgUnitLevelTeam, ParentID: strPtr("east")})
}

func TestDescendantIDs(t *testing.T) {
	repo := newFakeOrgUnitRepo()
	seedTree(repo)
	svc := NewHierarchyService(repo)
	ctx := context.Background()

	got, err := svc.DescendantIDs(ctx, "west")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"bay": {}, "alpha": {}}, got)

	got, err = svc.DescendantIDs(ctx, "bay")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"alpha": {}}, got)

	got, err = svc.DescendantIDs(ctx, "alpha")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDescendantIDsUnknownUnit(t *testing.T) {
	repo := newFakeOrgUnitRepo()
	seedTree(repo)
	svc := NewHierarchyService(repo)

	got, err := svc.DescendantIDs(context.Background(), "no-such-unit")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDescendantIDsIdempotent(t *testing.T) {
	repo := newFakeOrgUnitRepo()
	seedTree(repo)
	svc := NewHierarchyService(repo)
	ctx := context.Background()

	first, err := svc.DescendantIDs(ctx, "west")
	require.NoError(t, err)
	second, err := svc.DescendantIDs(ctx, "west")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDescendantIDsTerminatesOnCorruptedCycle(t *testing.T) {
	repo := newFakeOrgUnitRepo()
	seedUnit(repo, domain.OrgUnit{ID: "a", Name: "A", Level: domain.OrgUnitLevelArea, ParentID: strPtr("b")})
	seedUnit(repo, domain.OrgUnit{ID: "b", Name: "B", Level: domain.OrgUnitLevelArea, ParentID: strPtr("a")})
	svc := NewHierarchyService(repo)

	got, err := svc.DescendantIDs(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"b": {}}, got)
}

func TestScopeSetIncludesSelf(t *testing.T) {
	repo := newFakeOrgUnitRepo()
	seedTree(repo)
	svc := NewHierarchyService(repo)

	got, err := svc.ScopeSet(context.Background(), "west")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"west": {}, "bay": {}, "alpha": {}}, got)
}

func TestWouldCycle(t *testing.T) {
	units := []domain.OrgUnit{
		{ID: "west", Level: domain.OrgUnitLevelRegion},
		{ID: "bay", Level: domain.OrgUnitLevelArea, ParentID: strPtr("west")},
		{ID: "alpha", Level: domain.OrgUnitLevelTeam, ParentID: strPtr("bay")},
	}

	assert.True(t, wouldCycle(units, "west", "bay"))
	assert.True(t, wouldCycle(units, "west", "alpha"))
	assert.True(t, wouldCycle(units, "bay", "bay"))
	assert.False(t, wouldCycle(units, "alpha", "west"))
	assert.False(t, wouldCycle(units, "bay", "west"))
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/doorknock-service/internal/domain"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

func newOrgUnitService(f *visibilityFixture) *OrgUnitService {
	return NewOrgUnitService(f.units, NewHierarchyService(f.units))
}

func TestCreateUnitLevelRules(t *testing.T) {
	f := newVisibilityFixture(t)
	svc := newOrgUnitService(f)
	ctx := context.Background()

	region, err := svc.CreateUnit(ctx, f.owner, OrgUnitCreateInput{Name: "North", Level: domain.OrgUnitLevelRegion})
	require.NoError(t, err)
	assert.Nil(t, region.ParentID)

	team, err := svc.CreateUnit(ctx, f.owner, OrgUnitCreateInput{
		Name:     "Charlie",
		Level:    domain.OrgUnitLevelTeam,
		ParentID: &region.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, team.ParentID)
	assert.Equal(t, region.ID, *team.ParentID)

	var domainErr *apperrors.DomainError

	// Areas cannot be roots.
	_, err = svc.CreateUnit(ctx, f.owner, OrgUnitCreateInput{Name: "Loose", Level: domain.OrgUnitLevelArea})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	// Regions cannot nest.
	_, err = svc.CreateUnit(ctx, f.owner, OrgUnitCreateInput{
		Name:     "Nested",
		Level:    domain.OrgUnitLevelRegion,
		ParentID: &region.ID,
	})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	// Areas cannot nest under teams.
	_, err = svc.CreateUnit(ctx, f.owner, OrgUnitCreateInput{
		Name:     "Upside",
		Level:    domain.OrgUnitLevelArea,
		ParentID: &team.ID,
	})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestCreateUnitManagerScope(t *testing.T) {
	f := newVisibilityFixture(t)
	svc := newOrgUnitService(f)
	ctx := context.Background()

	// Mara sits on bay; she may add a team under it.
	team, err := svc.CreateUnit(ctx, f.manager, OrgUnitCreateInput{
		Name:     "Delta",
		Level:    domain.OrgUnitLevelTeam,
		ParentID: strPtr("bay"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bay", *team.ParentID)

	// East is not her subtree.
	var domainErr *apperrors.DomainError
	_, err = svc.CreateUnit(ctx, f.manager, OrgUnitCreateInput{
		Name:     "Echo",
		Level:    domain.OrgUnitLevelTeam,
		ParentID: strPtr("east"),
	})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	// Reps never administer the tree.
	_, err = svc.CreateUnit(ctx, f.repA, OrgUnitCreateInput{Name: "Rogue", Level: domain.OrgUnitLevelRegion})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestUpdateUnitReparent(t *testing.T) {
	f := newVisibilityFixture(t)
	svc := newOrgUnitService(f)
	ctx := context.Background()

	// Move team alpha from bay directly under west.
	moved, err := svc.UpdateUnit(ctx, f.owner, "alpha", OrgUnitUpdateInput{ParentID: strPtr("west")})
	require.NoError(t, err)
	assert.Equal(t, "west", *moved.ParentID)

	var domainErr *apperrors.DomainError

	// bay under alpha would both violate levels and close a loop.
	_, err = svc.UpdateUnit(ctx, f.owner, "bay", OrgUnitUpdateInput{ParentID: strPtr("alpha")})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	_, err = svc.UpdateUnit(ctx, f.owner, "bay", OrgUnitUpdateInput{ParentID: strPtr("bay")})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	// Only regions detach to roots.
	_, err = svc.UpdateUnit(ctx, f.owner, "alpha", OrgUnitUpdateInput{ParentID: strPtr("")})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestDeleteUnit(t *testing.T) {
	f := newVisibilityFixture(t)
	svc := newOrgUnitService(f)
	ctx := context.Background()

	var domainErr *apperrors.DomainError

	err := svc.DeleteUnit(ctx, f.manager, "alpha")
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	// West still has children.
	err = svc.DeleteUnit(ctx, f.owner, "west")
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)

	require.NoError(t, svc.DeleteUnit(ctx, f.owner, "alpha"))
	_, err = f.units.GetByID(ctx, "alpha")
	assert.Error(t, err)
}

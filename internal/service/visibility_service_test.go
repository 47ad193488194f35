package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/repository"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

type visibilityFixture struct {
	actors  *fakeActorRepo
	leads   *fakeLeadRepo
	units   *fakeOrgUnitRepo
	svc     *VisibilityService
	owner   *domain.Actor
	manager *domain.Actor
	repA    *domain.Actor
	repB    *domain.Actor
	outside *domain.Actor
}

// newVisibilityFixture builds an org with one owner, one manager running
// two reps on team alpha, and one unrelated rep on team bravo.
func newVisibilityFixture(t *testing.T) *visibilityFixture {
	t.Helper()
	actors := newFakeActorRepo()
	leads := newFakeLeadRepo()
	units := newFakeOrgUnitRepo()
	seedTree(units)

	owner := seedActor(actors, domain.Actor{Name: "Olive", Role: domain.RoleOwner, Active: true})
	manager := seedActor(actors, domain.Actor{Name: "Mara", Role: domain.RoleManager, OrgUnitID: strPtr("bay"), Active: true})
	repA := seedActor(actors, domain.Actor{Name: "Ana", Role: domain.RoleRep, ManagerID: &manager.ID, OrgUnitID: strPtr("alpha"), Active: true})
	repB := seedActor(actors, domain.Actor{Name: "Ben", Role: domain.RoleRep, ManagerID: &manager.ID, Active: true})
	outside := seedActor(actors, domain.Actor{Name: "Omar", Role: domain.RoleRep, OrgUnitID: strPtr("bravo"), Active: true})

	return &visibilityFixture{
		actors:  actors,
		leads:   leads,
		units:   units,
		svc:     NewVisibilityService(actors, leads, NewHierarchyService(units)),
		owner:   owner,
		manager: manager,
		repA:    repA,
		repB:    repB,
		outside: outside,
	}
}

func actorIDs(actors []domain.Actor) []string {
	ids := make([]string, 0, len(actors))
	for _, actor := range actors {
		ids = append(ids, actor.ID)
	}
	return ids
}

func TestVisibleActorsByRole(t *testing.T) {
	f := newVisibilityFixture(t)
	ctx := context.Background()

	all, err := f.svc.VisibleActors(ctx, f.owner, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	managerScope, err := f.svc.VisibleActors(ctx, f.manager, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{f.manager.ID, f.repA.ID, f.repB.ID}, actorIDs(managerScope))

	repScope, err := f.svc.VisibleActors(ctx, f.repA, "")
	require.NoError(t, err)
	assert.Equal(t, []string{f.repA.ID}, actorIDs(repScope))
}

func TestVisibleActorsUnitNarrowingOnlyShrinks(t *testing.T) {
	f := newVisibilityFixture(t)
	ctx := context.Background()

	// Narrowing to west keeps only actors on west's subtree. Ben has no
	// unit and drops out; Omar is on another region and was already out of
	// the manager's role scope.
	narrowed, err := f.svc.VisibleActors(ctx, f.manager, "west")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{f.manager.ID, f.repA.ID}, actorIDs(narrowed))

	unscoped, err := f.svc.VisibleActors(ctx, f.manager, "")
	require.NoError(t, err)
	assert.Subset(t, actorIDs(unscoped), actorIDs(narrowed))

	// Narrowing never widens: bravo is outside the manager's role scope,
	// so even though Omar sits there the result is empty of him.
	bravo, err := f.svc.VisibleActors(ctx, f.manager, "bravo")
	require.NoError(t, err)
	assert.Empty(t, bravo)
}

func TestVisibleActorsNilViewer(t *testing.T) {
	f := newVisibilityFixture(t)
	_, err := f.svc.VisibleActors(context.Background(), nil, "")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestVisibleLeadsFollowsActorScope(t *testing.T) {
	f := newVisibilityFixture(t)
	ctx := context.Background()

	leadA := seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusUntouched})
	leadB := seedLead(f.leads, domain.Lead{OwnerID: f.repB.ID, Status: domain.LeadStatusSold})
	seedLead(f.leads, domain.Lead{OwnerID: f.outside.ID, Status: domain.LeadStatusUntouched})

	ownerLeads, err := f.svc.VisibleLeads(ctx, f.owner, "", repository.LeadFilter{})
	require.NoError(t, err)
	assert.Len(t, ownerLeads, 3)

	managerLeads, err := f.svc.VisibleLeads(ctx, f.manager, "", repository.LeadFilter{})
	require.NoError(t, err)
	gotIDs := make([]string, 0, len(managerLeads))
	for _, lead := range managerLeads {
		gotIDs = append(gotIDs, lead.ID)
	}
	assert.ElementsMatch(t, []string{leadA.ID, leadB.ID}, gotIDs)

	repLeads, err := f.svc.VisibleLeads(ctx, f.repA, "", repository.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, repLeads, 1)
	assert.Equal(t, leadA.ID, repLeads[0].ID)
}

func TestVisibleLeadsStatusFilterPassesThrough(t *testing.T) {
	f := newVisibilityFixture(t)
	ctx := context.Background()

	seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusUntouched})
	sold := seedLead(f.leads, domain.Lead{OwnerID: f.repB.ID, Status: domain.LeadStatusSold})

	got, err := f.svc.VisibleLeads(ctx, f.manager, "", repository.LeadFilter{
		Statuses: []domain.LeadStatus{domain.LeadStatusSold},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sold.ID, got[0].ID)
}

func TestCanMutateActor(t *testing.T) {
	f := newVisibilityFixture(t)

	assert.NoError(t, f.svc.CanMutateActor(f.owner, f.outside))
	assert.NoError(t, f.svc.CanMutateActor(f.manager, f.manager))
	assert.NoError(t, f.svc.CanMutateActor(f.manager, f.repA))
	assert.NoError(t, f.svc.CanMutateActor(f.repA, f.repA))

	var domainErr *apperrors.DomainError
	err := f.svc.CanMutateActor(f.manager, f.outside)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	err = f.svc.CanMutateActor(f.repA, f.repB)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestCanMutateLead(t *testing.T) {
	f := newVisibilityFixture(t)
	ctx := context.Background()

	mine := seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusUntouched})
	foreign := seedLead(f.leads, domain.Lead{OwnerID: f.outside.ID, Status: domain.LeadStatusUntouched})

	assert.NoError(t, f.svc.CanMutateLead(ctx, f.owner, foreign))
	assert.NoError(t, f.svc.CanMutateLead(ctx, f.manager, mine))
	assert.NoError(t, f.svc.CanMutateLead(ctx, f.repA, mine))

	var domainErr *apperrors.DomainError
	err := f.svc.CanMutateLead(ctx, f.manager, foreign)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	err = f.svc.CanMutateLead(ctx, f.repB, mine)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestCanAssignRole(t *testing.T) {
	f := newVisibilityFixture(t)

	assert.NoError(t, f.svc.CanAssignRole(f.owner, domain.RoleManager))
	assert.NoError(t, f.svc.CanAssignRole(f.manager, domain.RoleRep))

	var domainErr *apperrors.DomainError
	err := f.svc.CanAssignRole(f.manager, domain.RoleManager)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	err = f.svc.CanAssignRole(f.repA, domain.RoleRep)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/doorknock-service/internal/domain"
)

func statsFor(rows []domain.ActorStats, actorID string) *domain.ActorStats {
	for i := range rows {
		if rows[i].ActorID == actorID {
			return &rows[i]
		}
	}
	return nil
}

func TestStatsCountsAndRates(t *testing.T) {
	f := newVisibilityFixture(t)
	svc := NewStatsService(f.svc)
	ctx := context.Background()
	now := time.Now()

	// Ana: 4 leads, 3 visited, 2 contacts, 1 appointment, 1 sale.
	seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusUntouched})
	seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusNotHome, VisitedAt: &now})
	seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusAppointment, VisitedAt: &now})
	seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusSold, VisitedAt: &now})

	rows, err := svc.Stats(ctx, f.manager, domain.WindowAllTime, "")
	require.NoError(t, err)

	ana := statsFor(rows, f.repA.ID)
	require.NotNil(t, ana)
	assert.Equal(t, 4, ana.TotalLeads)
	assert.Equal(t, 3, ana.DoorsKnocked)
	assert.Equal(t, 2, ana.Contacts)
	assert.Equal(t, 1, ana.Appointments)
	assert.Equal(t, 1, ana.Sales)
	assert.Equal(t, 67, ana.ContactRate)
	assert.Equal(t, 50, ana.CloseRate)
	assert.NotNil(t, ana.LastActivity)
}

func TestStatsZeroDenominatorRatesAreZero(t *testing.T) {
	f := newVisibilityFixture(t)
	svc := NewStatsService(f.svc)

	// Ben has leads but no visits and no contacts.
	seedLead(f.leads, domain.Lead{OwnerID: f.repB.ID, Status: domain.LeadStatusUntouched})
	seedLead(f.leads, domain.Lead{OwnerID: f.repB.ID, Status: domain.LeadStatusUntouched})

	rows, err := svc.Stats(context.Background(), f.manager, domain.WindowAllTime, "")
	require.NoError(t, err)

	ben := statsFor(rows, f.repB.ID)
	require.NotNil(t, ben)
	assert.Equal(t, 2, ben.TotalLeads)
	assert.Equal(t, 0, ben.DoorsKnocked)
	assert.Equal(t, 0, ben.ContactRate)
	assert.Equal(t, 0, ben.CloseRate)
}

func TestStatsWindowRestrictsDoorsKnockedOnly(t *testing.T) {
	f := newVisibilityFixture(t)
	svc := NewStatsService(f.svc)
	ctx := context.Background()

	recent := time.Now().Add(-1 * time.Hour)
	stale := time.Now().Add(-8 * 24 * time.Hour)
	seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusSold, VisitedAt: &recent})
	seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusSold, VisitedAt: &stale})

	weekly, err := svc.Stats(ctx, f.manager, domain.WindowThisWeek, "")
	require.NoError(t, err)
	ana := statsFor(weekly, f.repA.ID)
	require.NotNil(t, ana)
	assert.Equal(t, 1, ana.DoorsKnocked)
	// Sales stay all-time regardless of window.
	assert.Equal(t, 2, ana.Sales)

	allTime, err := svc.Stats(ctx, f.manager, domain.WindowAllTime, "")
	require.NoError(t, err)
	ana = statsFor(allTime, f.repA.ID)
	require.NotNil(t, ana)
	assert.Equal(t, 2, ana.DoorsKnocked)
}

func TestStatsTodayWindowUsesCalendarDay(t *testing.T) {
	f := newVisibilityFixture(t)
	svc := NewStatsService(f.svc)

	today := time.Now()
	yesterday := time.Now().Add(-24 * time.Hour)
	seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusNotHome, VisitedAt: &today})
	seedLead(f.leads, domain.Lead{OwnerID: f.repA.ID, Status: domain.LeadStatusNotHome, VisitedAt: &yesterday})

	rows, err := svc.Stats(context.Background(), f.manager, domain.WindowToday, "")
	require.NoError(t, err)
	ana := statsFor(rows, f.repA.ID)
	require.NotNil(t, ana)
	assert.Equal(t, 1, ana.DoorsKnocked)
}

func TestStatsSkipsOwnersAndHonorsScope(t *testing.T) {
	f := newVisibilityFixture(t)
	svc := NewStatsService(f.svc)
	ctx := context.Background()

	seedLead(f.leads, domain.Lead{OwnerID: f.outside.ID, Status: domain.LeadStatusSold})

	rows, err := svc.Stats(ctx, f.owner, domain.WindowAllTime, "")
	require.NoError(t, err)
	assert.Nil(t, statsFor(rows, f.owner.ID))
	assert.NotNil(t, statsFor(rows, f.outside.ID))

	// The manager's rollup never includes the unrelated rep.
	rows, err = svc.Stats(ctx, f.manager, domain.WindowAllTime, "")
	require.NoError(t, err)
	assert.Nil(t, statsFor(rows, f.outside.ID))
}

func TestTeamTotalsSumsCounts(t *testing.T) {
	svc := NewStatsService(nil)

	totals := svc.TeamTotals([]domain.ActorStats{
		{TotalLeads: 4, DoorsKnocked: 3, Contacts: 2, Appointments: 1, Sales: 1, ContactRate: 67},
		{TotalLeads: 2, DoorsKnocked: 0, Contacts: 0, Appointments: 0, Sales: 0, ContactRate: 0},
	})

	assert.Equal(t, domain.TeamTotals{
		TotalLeads:   6,
		DoorsKnocked: 3,
		Contacts:     2,
		Appointments: 1,
		Sales:        1,
	}, totals)
}

package service

import (
	"context"
	"math"
	"time"

	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/repository"
)

// StatsService computes performance rollups on demand from raw lead
// records. Nothing is cached or maintained incrementally; cost is linear in
// the number of visible leads per call.
type StatsService struct {
	visibility *VisibilityService
}

// NewStatsService constructs the service.
func NewStatsService(visibility *VisibilityService) *StatsService {
	return &StatsService{visibility: visibility}
}

// Stats computes per-actor performance over the viewer's visibility scope,
// restricted to manager and rep tier actors. DoorsKnocked honors the
// window; the remaining counts are all-time. Visibility is established here
// by reusing the resolver, not re-checked per record.
func (s *StatsService) Stats(ctx context.Context, viewer *domain.Actor, window domain.StatsWindow, unitID string) ([]domain.ActorStats, error) {
	actors, err := s.visibility.VisibleActors(ctx, viewer, unitID)
	if err != nil {
		return nil, err
	}

	leads, err := s.visibility.VisibleLeads(ctx, viewer, unitID, repository.LeadFilter{})
	if err != nil {
		return nil, err
	}
	byOwner := make(map[string][]domain.Lead, len(actors))
	for _, lead := range leads {
		byOwner[lead.OwnerID] = append(byOwner[lead.OwnerID], lead)
	}

	now := time.Now()
	result := make([]domain.ActorStats, 0, len(actors))
	for _, actor := range actors {
		if actor.Role == domain.RoleOwner {
			continue
		}
		result = append(result, computeActorStats(actor, byOwner[actor.ID], window, now))
	}
	return result, nil
}

// TeamTotals sums per-actor counts element-wise. Rates are intentionally
// not re-derived from the summed counts; callers recompute them if needed.
func (s *StatsService) TeamTotals(stats []domain.ActorStats) domain.TeamTotals {
	var totals domain.TeamTotals
	for _, row := range stats {
		totals.TotalLeads += row.TotalLeads
		totals.DoorsKnocked += row.DoorsKnocked
		totals.Contacts += row.Contacts
		totals.Appointments += row.Appointments
		totals.Sales += row.Sales
	}
	return totals
}

func computeActorStats(actor domain.Actor, leads []domain.Lead, window domain.StatsWindow, now time.Time) domain.ActorStats {
	stats := domain.ActorStats{ActorID: actor.ID, ActorName: actor.Name}

	var last *time.Time
	for _, lead := range leads {
		stats.TotalLeads++
		if lead.VisitedAt != nil && inWindow(*lead.VisitedAt, window, now) {
			stats.DoorsKnocked++
		}
		if lead.Status.IsContactOutcome() {
			stats.Contacts++
		}
		switch lead.Status {
		case domain.LeadStatusAppointment:
			stats.Appointments++
		case domain.LeadStatusSold:
			stats.Sales++
		}
		if last == nil || lead.UpdatedAt.After(*last) {
			updated := lead.UpdatedAt
			last = &updated
		}
	}

	stats.LastActivity = last
	stats.ContactRate = ratePercent(stats.Contacts, stats.DoorsKnocked)
	stats.CloseRate = ratePercent(stats.Sales, stats.Contacts)
	return stats
}

func inWindow(t time.Time, window domain.StatsWindow, now time.Time) bool {
	switch window {
	case domain.WindowToday:
		ty, tm, td := t.Date()
		ny, nm, nd := now.Date()
		return ty == ny && tm == nm && td == nd
	case domain.WindowThisWeek:
		return t.After(now.Add(-7 * 24 * time.Hour))
	default:
		return true
	}
}

// ratePercent rounds numerator/denominator to a whole percentage, defined
// as 0 when the denominator is 0.
func ratePercent(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

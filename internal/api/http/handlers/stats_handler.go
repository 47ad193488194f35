package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doorknock-service/internal/api/dto"
	"github.com/spec-kit/doorknock-service/internal/auth"
	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/service"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// StatsHandler serves performance rollups.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// GetStats GET /stats. Window defaults to all-time; the optional unit
// query narrows the rollup to an org unit subtree.
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	window, ok := domain.ParseWindow(c.Query("window"))
	if !ok {
		return apperrors.NewValidationError("unknown stats window", map[string]any{"window": c.Query("window")})
	}

	stats, err := h.service.Stats(c.Context(), actor, window, c.Query("unit"))
	if err != nil {
		return err
	}
	totals := h.service.TeamTotals(stats)

	rows := make([]dto.ActorStatsResponse, 0, len(stats))
	for _, row := range stats {
		rows = append(rows, dto.ActorStatsResponse{
			ActorID:      row.ActorID,
			ActorName:    row.ActorName,
			TotalLeads:   row.TotalLeads,
			DoorsKnocked: row.DoorsKnocked,
			Contacts:     row.Contacts,
			Appointments: row.Appointments,
			Sales:        row.Sales,
			ContactRate:  row.ContactRate,
			CloseRate:    row.CloseRate,
			LastActivity: row.LastActivity,
		})
	}
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		Window: string(window),
		Actors: rows,
		Totals: dto.TeamTotalsResponse{
			TotalLeads:   totals.TotalLeads,
			DoorsKnocked: totals.DoorsKnocked,
			Contacts:     totals.Contacts,
			Appointments: totals.Appointments,
			Sales:        totals.Sales,
		},
	}})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doorknock-service/internal/api/dto"
	"github.com/spec-kit/doorknock-service/internal/auth"
	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/service"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// TerritoriesHandler manages territory endpoints.
type TerritoriesHandler struct {
	service *service.TerritoryService
}

// NewTerritoriesHandler constructs handler.
func NewTerritoriesHandler(territoryService *service.TerritoryService) *TerritoriesHandler {
	return &TerritoriesHandler{service: territoryService}
}

// CreateTerritory POST /territories.
func (h *TerritoriesHandler) CreateTerritory(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTerritoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	territory, err := h.service.CreateTerritory(c.Context(), actor, service.TerritoryCreateInput{
		Name:        req.Name,
		Points:      req.Points,
		AssignedRep: req.AssignedRep,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": territoryResponse(territory)})
}

// ListTerritories GET /territories.
func (h *TerritoriesHandler) ListTerritories(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	territories, err := h.service.ListTerritories(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.TerritoryResponse, 0, len(territories))
	for i := range territories {
		items = append(items, territoryResponse(&territories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTerritory GET /territories/:id.
func (h *TerritoriesHandler) GetTerritory(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	territory, err := h.service.GetTerritory(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": territoryResponse(territory)})
}

// UpdateTerritory PATCH /territories/:id.
func (h *TerritoriesHandler) UpdateTerritory(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTerritoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	territory, err := h.service.UpdateTerritory(c.Context(), actor, c.Params("id"), service.TerritoryUpdateInput{
		Name:        req.Name,
		Points:      req.Points,
		AssignedRep: req.AssignedRep,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": territoryResponse(territory)})
}

// DeleteTerritory DELETE /territories/:id.
func (h *TerritoriesHandler) DeleteTerritory(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteTerritory(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignPoint POST /territories/assign. Answers which territory contains
// the coordinate; null when none does.
func (h *TerritoriesHandler) AssignPoint(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignPointRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	territory, err := h.service.Assign(c.Context(), actor, domain.Coordinate{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		return err
	}
	resp := dto.AssignPointResponse{}
	if territory != nil {
		matched := territoryResponse(territory)
		resp.Territory = &matched
	}
	return c.JSON(fiber.Map{"data": resp})
}

func territoryResponse(territory *domain.Territory) dto.TerritoryResponse {
	return dto.TerritoryResponse{
		ID:          territory.ID,
		Name:        territory.Name,
		Points:      territory.Points,
		AssignedRep: territory.AssignedRep,
		Color:       territory.Color,
		CreatedAt:   territory.CreatedAt,
		UpdatedAt:   territory.UpdatedAt,
	}
}

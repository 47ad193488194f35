package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doorknock-service/internal/api/dto"
	"github.com/spec-kit/doorknock-service/internal/auth"
	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/service"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// OrgUnitsHandler manages org-unit tree endpoints.
type OrgUnitsHandler struct {
	service *service.OrgUnitService
}

// NewOrgUnitsHandler constructs handler.
func NewOrgUnitsHandler(orgUnitService *service.OrgUnitService) *OrgUnitsHandler {
	return &OrgUnitsHandler{service: orgUnitService}
}

// CreateUnit POST /org-units.
func (h *OrgUnitsHandler) CreateUnit(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateOrgUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	unit, err := h.service.CreateUnit(c.Context(), actor, service.OrgUnitCreateInput{
		Name:     req.Name,
		Level:    req.Level,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": orgUnitResponse(unit)})
}

// ListUnits GET /org-units.
func (h *OrgUnitsHandler) ListUnits(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	units, err := h.service.ListUnits(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.OrgUnitResponse, 0, len(units))
	for i := range units {
		items = append(items, orgUnitResponse(&units[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetUnit GET /org-units/:id.
func (h *OrgUnitsHandler) GetUnit(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	unit, err := h.service.GetUnit(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orgUnitResponse(unit)})
}

// UpdateUnit PATCH /org-units/:id.
func (h *OrgUnitsHandler) UpdateUnit(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateOrgUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	unit, err := h.service.UpdateUnit(c.Context(), actor, c.Params("id"), service.OrgUnitUpdateInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orgUnitResponse(unit)})
}

// DeleteUnit DELETE /org-units/:id.
func (h *OrgUnitsHandler) DeleteUnit(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteUnit(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func orgUnitResponse(unit *domain.OrgUnit) dto.OrgUnitResponse {
	return dto.OrgUnitResponse{
		ID:        unit.ID,
		Name:      unit.Name,
		Level:     unit.Level,
		ParentID:  unit.ParentID,
		CreatedAt: unit.CreatedAt,
		UpdatedAt: unit.UpdatedAt,
	}
}

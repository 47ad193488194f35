package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doorknock-service/internal/api/dto"
	"github.com/spec-kit/doorknock-service/internal/auth"
	"github.com/spec-kit/doorknock-service/internal/domain"
	"github.com/spec-kit/doorknock-service/internal/service"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// ActorsHandler manages actor administration endpoints.
type ActorsHandler struct {
	service *service.ActorService
}

// NewActorsHandler constructs handler.
func NewActorsHandler(actorService *service.ActorService) *ActorsHandler {
	return &ActorsHandler{service: actorService}
}

// CreateActor POST /actors.
func (h *ActorsHandler) CreateActor(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateActorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	created, err := h.service.CreateActor(c.Context(), actor, service.ActorCreateInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		ManagerID: req.ManagerID,
		OrgUnitID: req.OrgUnitID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": actorResponse(created)})
}

// ListActors GET /actors. The optional unit query narrows the result to an
// org unit subtree.
func (h *ActorsHandler) ListActors(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	actors, err := h.service.ListActors(c.Context(), actor, c.Query("unit"))
	if err != nil {
		return err
	}
	items := make([]dto.ActorResponse, 0, len(actors))
	for i := range actors {
		items = append(items, actorResponse(&actors[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetActor GET /actors/:id.
func (h *ActorsHandler) GetActor(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	target, err := h.service.GetActor(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": actorResponse(target)})
}

// UpdateActor PATCH /actors/:id.
func (h *ActorsHandler) UpdateActor(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateActorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.service.UpdateActor(c.Context(), actor, c.Params("id"), service.ActorUpdateInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		ManagerID: req.ManagerID,
		OrgUnitID: req.OrgUnitID,
		Active:    req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": actorResponse(updated)})
}

// DeleteActor DELETE /actors/:id.
func (h *ActorsHandler) DeleteActor(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteActor(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func actorResponse(actor *domain.Actor) dto.ActorResponse {
	return dto.ActorResponse{
		ID:        actor.ID,
		Name:      actor.Name,
		Phone:     actor.Phone,
		Email:     actor.Email,
		Role:      actor.Role,
		ManagerID: actor.ManagerID,
		OrgUnitID: actor.OrgUnitID,
		Active:    actor.Active,
		CreatedAt: actor.CreatedAt,
		UpdatedAt: actor.UpdatedAt,
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doorknock-service/internal/api/dto"
	"github.com/spec-kit/doorknock-service/internal/service"
	apperrors "github.com/spec-kit/doorknock-service/pkg/util"
)

// AuthHandler exposes both sign-in paths.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.PasswordLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, err := h.service.LoginPassword(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

// RequestPasscode POST /auth/passcode/request. Always answers 202 so the
// endpoint cannot be used to probe which phone numbers exist.
func (h *AuthHandler) RequestPasscode(c *fiber.Ctx) error {
	var req dto.PasscodeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.RequestPasscode(c.Context(), req.Phone); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "sent"}})
}

// VerifyPasscode POST /auth/passcode/verify.
func (h *AuthHandler) VerifyPasscode(c *fiber.Ctx) error {
	var req dto.PasscodeVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, err := h.service.VerifyPasscode(c.Context(), req.Phone, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

func sessionResponse(session *service.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Actor:     actorResponse(session.Actor),
	}
}

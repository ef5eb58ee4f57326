package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/helpdesk-service/internal/api/dto"
	"github.com/supportdesk/helpdesk-service/internal/auth"
	"github.com/supportdesk/helpdesk-service/internal/service"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

// AuthHandler exposes login and logout.
type AuthHandler struct {
	service    *service.AuthService
	middleware *auth.AuthMiddleware
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, middleware *auth.AuthMiddleware) *AuthHandler {
	return &AuthHandler{service: authService, middleware: middleware}
}

// Login POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password are required", nil)
	}

	user, token, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)})
}

// Logout POST /api/logout. Works from the bare token so a session already
// removed on the server still logs out cleanly.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := h.middleware.SessionFromRequest(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Logout(c.UserContext(), claims.SessionID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

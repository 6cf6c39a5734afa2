package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gholaman/municipal-portal/internal/api/dto"
	"github.com/gholaman/municipal-portal/internal/auth"
	"github.com/gholaman/municipal-portal/internal/domain"
	"github.com/gholaman/municipal-portal/internal/service"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// AuthHandler manages staff login endpoints.
type AuthHandler struct {
	service  *service.AuthService
	resolver *auth.Resolver
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, resolver *auth.Resolver) *AuthHandler {
	return &AuthHandler{service: authService, resolver: resolver}
}

// Login POST /auth/staff/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	staff, token, expiresAt, err := h.service.LoginStaff(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	role := h.resolver.RoleOf(&domain.Identity{ID: staff.ID, Email: staff.Email})
	return c.JSON(fiber.Map{"data": dto.StaffLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Name:      staff.Name,
		Email:     staff.Email,
		Role:      string(role),
	}})
}

// Logout POST /auth/staff/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.UserContext(), c.Get("Authorization")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"signed_out": true}})
}

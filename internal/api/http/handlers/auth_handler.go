package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/token-service/internal/api/dto"
	"github.com/spec-kit/token-service/internal/auth"
	"github.com/spec-kit/token-service/internal/domain"
	"github.com/spec-kit/token-service/internal/repository"
	"github.com/spec-kit/token-service/internal/service"
	apperrors "github.com/spec-kit/token-service/pkg/util/errorutil"
)

const (
	minPasswordLength = 8
	// bcrypt only accepts passwords up to 72 bytes.
	maxPasswordLength = 72
)

// AuthHandler exposes account and token endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}
	if len(req.Password) > maxPasswordLength {
		return apperrors.NewValidationError("password too long", map[string]any{"max_length": maxPasswordLength})
	}

	user, issued, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return apperrors.NewConflict(err.Error(), nil)
		case errors.Is(err, bcrypt.ErrPasswordTooLong):
			return apperrors.NewValidationError("password too long", map[string]any{"max_length": maxPasswordLength})
		case errors.Is(err, auth.ErrInvalidIdentity):
			return apperrors.NewValidationError(err.Error(), nil)
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(authPayload(user, issued))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, issued, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewUnauthorized(err.Error())
	case errors.Is(err, service.ErrTooManyAttempts):
		return apperrors.NewTooManyRequests(err.Error())
	case err != nil:
		return apperrors.MapError(err)
	}

	return c.JSON(authPayload(user, issued))
}

// Me handles GET /auth/me and answers from the token alone.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("unauthenticated")
	}
	return c.JSON(fiber.Map{
		"data": dto.IdentityResponse{ID: identity.ID, Name: identity.Name},
	})
}

func authPayload(user *domain.User, issued service.IssuedToken) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			"user": dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email},
			"auth": dto.AuthResponse{Token: issued.Token, ExpiresAt: issued.ExpiresAt},
		},
	}
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/devconnect-service/internal/api/dto"
	"github.com/spec-kit/devconnect-service/internal/auth"
	"github.com/spec-kit/devconnect-service/internal/domain"
	"github.com/spec-kit/devconnect-service/internal/service"
	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

// UsersHandler exposes account and auth endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user": userResponse(user),
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Login handles POST /api/auth.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	_, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{Token: token, ExpiresAt: exp})
}

// CurrentUser handles GET /api/auth.
func (h *UsersHandler) CurrentUser(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	user, err := h.auth.CurrentUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}

// RequestPasswordReset handles POST /api/auth/password/reset/request.
// The response is identical whether or not the email exists.
func (h *UsersHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if _, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "if the account exists, a reset token has been issued"})
}

// ConfirmPasswordReset handles POST /api/auth/password/reset/confirm.
func (h *UsersHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "password updated"})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

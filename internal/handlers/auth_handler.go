package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/martapp/backend/internal/dto"
	"github.com/martapp/backend/internal/services"
)

type AuthHandler struct {
	authService     *services.AuthService
	settingsService *services.SettingsService
}

func NewAuthHandler(authService *services.AuthService, settingsService *services.SettingsService) *AuthHandler {
	return &AuthHandler{authService: authService, settingsService: settingsService}
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.SignUp(req.Name, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrPhoneTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrNameRequired) ||
			errors.Is(err, services.ErrInvalidPhone) ||
			errors.Is(err, services.ErrPasswordTooShort) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.authService.Login(req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Session reports the signed-in gate the navigation layer keys off.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	snap := h.settingsService.Session()
	return c.JSON(dto.SessionResponse{
		SignedIn: snap.SignedIn(),
		Phone:    snap.Phone,
		UserID:   snap.UserID,
		DarkMode: snap.DarkMode,
	})
}

package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// HandleSignup handles POST /signup
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req models.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	token, err := h.authService.Signup(c.UserContext(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsRequired):
			return fiber.NewError(fiber.StatusBadRequest, "Username and password required")
		case errors.Is(err, services.ErrUsernameTaken):
			return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
		default:
			return err
		}
	}

	return c.JSON(models.SessionResponse{
		Message:      "Signup successful",
		SessionToken: token,
		Username:     strings.TrimSpace(req.Username),
	})
}

// HandleLogin handles POST /login
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	token, err := h.authService.Login(c.UserContext(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsRequired):
			return fiber.NewError(fiber.StatusBadRequest, "Username and password required")
		case errors.Is(err, services.ErrInvalidCredentials):
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		default:
			return err
		}
	}

	return c.JSON(models.SessionResponse{
		Message:      "Login successful",
		SessionToken: token,
		Username:     strings.TrimSpace(req.Username),
	})
}

// HandleVerifySession handles GET /verify-session?session_token=
func (h *AuthHandler) HandleVerifySession(c *fiber.Ctx) error {
	username, err := h.authService.VerifySession(c.UserContext(), c.Query("session_token"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidSession) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid session")
		}
		return err
	}

	return c.JSON(models.VerifySessionResponse{
		Valid:    true,
		Username: username,
	})
}

// HandleLogout handles POST /logout. The token is read from the query string
// and, for older clients, from a JSON body.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	token := c.Query("session_token")
	if token == "" && len(c.Body()) > 0 {
		var req models.LogoutRequest
		if err := c.BodyParser(&req); err == nil {
			token = req.SessionToken
		}
	}

	if err := h.authService.Logout(c.UserContext(), token); err != nil {
		return err
	}

	return c.JSON(models.MessageResponse{Message: "Logged out successfully"})
}

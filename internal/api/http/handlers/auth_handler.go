package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/photoshare-service/internal/api/dto"
	"github.com/spec-kit/photoshare-service/internal/auth"
	"github.com/spec-kit/photoshare-service/internal/service"
)

// AuthHandler exposes signup, login, token renewal and logout.
type AuthHandler struct {
	auth AuthAPI
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService AuthAPI) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Signup(c.UserContext(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":   dto.NewUserResponse(user),
		"detail": "user successfully created",
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	pair, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tokenResponse(pair)})
}

// Refresh handles GET /auth/refresh_token. The refresh token travels as the bearer credential.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token, err := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	pair, err := h.auth.Refresh(c.UserContext(), token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tokenResponse(pair)})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), user); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func tokenResponse(pair *service.TokenPair) dto.TokenResponse {
	return dto.NewTokenResponse(pair.AccessToken, pair.RefreshToken, pair.AccessExpiresAt, pair.RefreshExpiresAt)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/photoshare-service/internal/api/dto"
	"github.com/spec-kit/photoshare-service/internal/auth"
	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/service"
)

// UsersHandler manages account endpoints.
type UsersHandler struct {
	users          UserAPI
	maxUploadBytes int64
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users UserAPI, maxUploadBytes int64) *UsersHandler {
	return &UsersHandler{users: users, maxUploadBytes: maxUploadBytes}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateMe handles PATCH /users/me. Accepts a multipart form with an optional
// username field and an optional avatar file.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}

	var req dto.UsernameUpdate
	if username := c.FormValue("username"); username != "" {
		req.Username = &username
	}
	if err := dto.Check(req); err != nil {
		return err
	}

	avatar, _, err := readUpload(c, "avatar", h.maxUploadBytes)
	if err != nil {
		return err
	}

	updated, err := h.users.UpdateProfile(c.UserContext(), user, service.ProfileUpdate{
		Username: req.Username,
		Avatar:   avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(updated)})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	if _, err := auth.AdminOnly.CheckContext(c); err != nil {
		return err
	}
	users, err := h.users.List(c.UserContext(), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// Profile handles GET /users/by-username/:username.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	if _, err := auth.AllRoles.CheckContext(c); err != nil {
		return err
	}
	profile, err := h.users.Profile(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}

// Ban handles PATCH /users/ban.
func (h *UsersHandler) Ban(c *fiber.Ctx) error {
	actor, err := auth.AdminOnly.CheckContext(c)
	if err != nil {
		return err
	}
	var req dto.BanRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.users.Ban(c.UserContext(), actor, req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"detail": "user banned"})
}

// ChangeRole handles PATCH /users/role.
func (h *UsersHandler) ChangeRole(c *fiber.Ctx) error {
	actor, err := auth.AdminOnly.CheckContext(c)
	if err != nil {
		return err
	}
	var req dto.RoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.users.ChangeRole(c.UserContext(), actor, req.Email, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(updated)})
}

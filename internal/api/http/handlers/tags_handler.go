package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/photoshare-service/internal/api/dto"
	"github.com/spec-kit/photoshare-service/internal/auth"
)

// TagsHandler manages tag endpoints.
type TagsHandler struct {
	tags TagAPI
}

// NewTagsHandler constructs handler.
func NewTagsHandler(tags TagAPI) *TagsHandler {
	return &TagsHandler{tags: tags}
}

// Create handles POST /tags. Creating an existing title returns that tag.
func (h *TagsHandler) Create(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}
	var req dto.TagRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tag, err := h.tags.Create(c.UserContext(), user, req.Title)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTagResponse(tag)})
}

// Rename handles PUT /tags/:id.
func (h *TagsHandler) Rename(c *fiber.Ctx) error {
	if _, err := auth.AdminOnly.CheckContext(c); err != nil {
		return err
	}
	var req dto.TagRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tag, err := h.tags.Rename(c.UserContext(), c.Params("id"), req.Title)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTagResponse(tag)})
}

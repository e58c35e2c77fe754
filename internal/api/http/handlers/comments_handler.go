package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/photoshare-service/internal/api/dto"
	"github.com/spec-kit/photoshare-service/internal/auth"
)

// CommentsHandler manages comment endpoints.
type CommentsHandler struct {
	comments CommentAPI
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(comments CommentAPI) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

// List handles GET /comments/photo/:photo_id.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	if _, err := auth.AllRoles.CheckContext(c); err != nil {
		return err
	}
	comments, err := h.comments.ListForPhoto(c.UserContext(), c.Params("photo_id"), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponses(comments)})
}

// Create handles POST /comments/photo/:photo_id.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Create(c.UserContext(), user, c.Params("photo_id"), req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// Update handles PUT /comments/:id.
func (h *CommentsHandler) Update(c *fiber.Ctx) error {
	if _, err := auth.AdminsAndModerators.CheckContext(c); err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Update(c.UserContext(), c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// Delete handles DELETE /comments/:id.
func (h *CommentsHandler) Delete(c *fiber.Ctx) error {
	user, err := auth.AdminsAndModerators.CheckContext(c)
	if err != nil {
		return err
	}
	comment, err := h.comments.Delete(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

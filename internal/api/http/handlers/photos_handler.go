package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/photoshare-service/internal/api/dto"
	"github.com/spec-kit/photoshare-service/internal/auth"
	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/repository"
	"github.com/spec-kit/photoshare-service/internal/service"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// PhotosHandler manages photo endpoints.
type PhotosHandler struct {
	photos         PhotoAPI
	maxUploadBytes int64
}

// NewPhotosHandler constructs handler.
func NewPhotosHandler(photos PhotoAPI, maxUploadBytes int64) *PhotosHandler {
	return &PhotosHandler{photos: photos, maxUploadBytes: maxUploadBytes}
}

// Create handles POST /photos (multipart: file, title, description, tags).
func (h *PhotosHandler) Create(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}

	req := dto.PhotoCreateRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Tags:        c.FormValue("tags"),
	}
	if err := dto.Check(req); err != nil {
		return err
	}
	data, ok, err := readUpload(c, "file", h.maxUploadBytes)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewValidationError("file required", nil)
	}

	photo, err := h.photos.Create(c.UserContext(), user, service.PhotoCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        service.SplitTags(req.Tags),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPhotoResponse(photo)})
}

// List handles GET /photos. ?user_id= narrows to one owner.
func (h *PhotosHandler) List(c *fiber.Ctx) error {
	if _, err := auth.AllRoles.CheckContext(c); err != nil {
		return err
	}
	filter := repository.PhotoFilter{Page: parsePage(c)}
	if userID := c.Query("user_id"); userID != "" {
		filter.UserID = &userID
	}
	photos, err := h.photos.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPhotoResponses(photos)})
}

// Search handles GET /photos/search?q=.
func (h *PhotosHandler) Search(c *fiber.Ctx) error {
	if _, err := auth.AllRoles.CheckContext(c); err != nil {
		return err
	}
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		return apperrors.NewValidationError("q required", nil)
	}
	photos, err := h.photos.List(c.UserContext(), repository.PhotoFilter{SearchTerm: &term, Page: parsePage(c)})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPhotoResponses(photos)})
}

// Get handles GET /photos/:id.
func (h *PhotosHandler) Get(c *fiber.Ctx) error {
	if _, err := auth.AllRoles.CheckContext(c); err != nil {
		return err
	}
	photo, err := h.photos.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPhotoResponse(photo)})
}

// Update handles PUT /photos/:id.
func (h *PhotosHandler) Update(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}
	var req dto.PhotoUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tags := req.Tags
	return h.update(c, user, service.PhotoUpdateInput{
		Title:       &req.Title,
		Description: &req.Description,
		Tags:        &tags,
	})
}

// UpdateTitle handles PATCH /photos/:id/title.
func (h *PhotosHandler) UpdateTitle(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}
	var req dto.PhotoTitleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.update(c, user, service.PhotoUpdateInput{Title: &req.Title})
}

// UpdateDescription handles PATCH /photos/:id/description.
func (h *PhotosHandler) UpdateDescription(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}
	var req dto.PhotoDescriptionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.update(c, user, service.PhotoUpdateInput{Description: &req.Description})
}

// Delete handles DELETE /photos/:id.
func (h *PhotosHandler) Delete(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}
	photo, err := h.photos.Delete(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPhotoResponse(photo)})
}

func (h *PhotosHandler) update(c *fiber.Ctx, user *domain.User, in service.PhotoUpdateInput) error {
	photo, err := h.photos.Update(c.UserContext(), user, c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPhotoResponse(photo)})
}

package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/photoshare-service/internal/imagehost"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// ObjectReader reads stored images.
type ObjectReader interface {
	Get(ctx context.Context, key string) (*imagehost.Object, error)
}

// MediaHandler serves stored images when the bucket has no public endpoint of its own.
type MediaHandler struct {
	objects ObjectReader
}

// NewMediaHandler constructs handler.
func NewMediaHandler(objects ObjectReader) *MediaHandler {
	return &MediaHandler{objects: objects}
}

// Serve handles GET /media/*.
func (h *MediaHandler) Serve(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return apperrors.NewNotFound("object", nil)
	}
	obj, err := h.objects.Get(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, imagehost.ErrObjectNotFound) {
			return apperrors.NewNotFound("object", nil)
		}
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, obj.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(obj.Data)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/photoshare-service/internal/api/dto"
	"github.com/spec-kit/photoshare-service/internal/auth"
)

// TransformerHandler builds transformed image URLs and their QR codes.
type TransformerHandler struct {
	photos PhotoAPI
}

// NewTransformerHandler constructs handler.
func NewTransformerHandler(photos PhotoAPI) *TransformerHandler {
	return &TransformerHandler{photos: photos}
}

// Transform handles PATCH /transformer/:photo_id.
func (h *TransformerHandler) Transform(c *fiber.Ctx) error {
	user, err := auth.AllRoles.CheckContext(c)
	if err != nil {
		return err
	}
	req := dto.NewTransformRequest()
	if err := parseBody(c, &req); err != nil {
		return err
	}
	photo, err := h.photos.Transform(c.UserContext(), user, c.Params("photo_id"), req.Transformation)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPhotoResponse(photo)})
}

// QRCode handles POST /transformer/qr_code/:photo_id.
func (h *TransformerHandler) QRCode(c *fiber.Ctx) error {
	if _, err := auth.AllRoles.CheckContext(c); err != nil {
		return err
	}
	photoID := c.Params("photo_id")
	upload, err := h.photos.QRCode(c.UserContext(), photoID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.QRCodeResponse{PhotoID: photoID, QRCode: upload.URL}})
}

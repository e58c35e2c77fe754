package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

// TransformRequest wraps the filter chain. Omitted filters keep their defaults.
type TransformRequest struct {
	domain.Transformation
}

// NewTransformRequest returns a request pre-filled with default filter values
// so that a partial JSON body only overrides what it names.
func NewTransformRequest() TransformRequest {
	return TransformRequest{Transformation: domain.DefaultTransformation()}
}

func (r TransformRequest) Validate() error {
	return validation.ValidateStruct(&r.Transformation,
		validation.Field(&r.Transformation.Circle, validation.By(nonNegative(r.Circle.Height, r.Circle.Width))),
		validation.Field(&r.Transformation.Resize, validation.By(nonNegative(r.Resize.Height, r.Resize.Width))),
		validation.Field(&r.Transformation.Text, validation.By(nonNegative(r.Text.FontSize))),
		validation.Field(&r.Transformation.Rotate, validation.By(nonNegative(r.Rotate.Width))),
	)
}

func nonNegative(values ...int) validation.RuleFunc {
	return func(interface{}) error {
		for _, v := range values {
			if v < 0 {
				return validation.NewError("validation_non_negative", "must not be negative")
			}
		}
		return nil
	}
}

// QRCodeResponse carries the public URL of a rendered QR code.
type QRCodeResponse struct {
	PhotoID string `json:"photo_id"`
	QRCode  string `json:"qr_code_url"`
}

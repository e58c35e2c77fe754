package dto

import (
	"errors"

	validation "github.com/jellydator/validation"

	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// Validatable is implemented by every request payload.
type Validatable interface {
	Validate() error
}

// Check runs the payload rules and converts failures into a 400 domain error
// with one detail entry per field.
func Check(req Validatable) error {
	err := req.Validate()
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]any, len(fieldErrs))
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}
		return apperrors.NewValidationError("invalid payload", details)
	}
	return apperrors.NewValidationError(err.Error(), nil)
}

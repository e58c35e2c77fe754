package service

import (
	"context"
	"errors"

	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/imagehost"
	"github.com/spec-kit/photoshare-service/internal/repository"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// ImageStore is the part of the image host used by services.
type ImageStore interface {
	UploadImage(ctx context.Context, folder string, data []byte) (*imagehost.Upload, error)
	UploadQRCode(ctx context.Context, photoID, content string) (*imagehost.Upload, error)
	TransformationURL(publicID string, t domain.Transformation) (string, bool)
	Delete(ctx context.Context, key string) error
}

// TokenRecorder counts issued token pairs.
type TokenRecorder interface {
	RecordTokensIssued(flow string)
}

// mapStoreError converts repository sentinels into client-facing domain errors.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NewNotFound("user", nil)
	case errors.Is(err, domain.ErrPhotoNotFound):
		return apperrors.NewNotFound("photo", nil)
	case errors.Is(err, domain.ErrTagNotFound):
		return apperrors.NewNotFound("tag", nil)
	case errors.Is(err, domain.ErrCommentNotFound):
		return apperrors.NewNotFound("comment", nil)
	case errors.Is(err, domain.ErrTooManyTags):
		return apperrors.NewValidationError("too many tags", map[string]any{"max": domain.MaxPhotoTags})
	case errors.Is(err, imagehost.ErrUnsupportedType):
		return apperrors.NewValidationError("unsupported image type", nil)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict("resource already exists", nil)
	default:
		return apperrors.MapError(err)
	}
}

func canModify(actor *domain.User, ownerID string) bool {
	return actor != nil && (actor.ID == ownerID || actor.Role == domain.RoleAdmin)
}

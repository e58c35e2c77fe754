package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/events"
	"github.com/spec-kit/photoshare-service/internal/imagehost"
	"github.com/spec-kit/photoshare-service/internal/repository"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// PhotoCreateInput describes an upload.
type PhotoCreateInput struct {
	Title       string
	Description string
	Tags        []string
	Data        []byte
}

// PhotoUpdateInput carries the optional fields of a photo update.
type PhotoUpdateInput struct {
	Title       *string
	Description *string
	Tags        *[]string
}

// PhotoService coordinates photo workflows.
type PhotoService struct {
	photos     repository.PhotoRepository
	images     ImageStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PhotoDependencies bundles requirements for the photo service.
type PhotoDependencies struct {
	PhotoRepo  repository.PhotoRepository
	Images     ImageStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewPhotoService builds the service.
func NewPhotoService(deps PhotoDependencies) *PhotoService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhotoService{
		photos:     deps.PhotoRepo,
		images:     deps.Images,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// NormalizeTags trims, lowercases and de-duplicates tag titles, keeping input order.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// SplitTags parses a comma separated tag list.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(raw, ","))
}

// Create uploads the image and stores the photo with its tags.
func (s *PhotoService) Create(ctx context.Context, owner *domain.User, in PhotoCreateInput) (*domain.Photo, error) {
	tags := NormalizeTags(in.Tags)
	if len(tags) > domain.MaxPhotoTags {
		return nil, mapStoreError(domain.ErrTooManyTags)
	}

	upload, err := s.images.UploadImage(ctx, imagehost.FolderPhotos, in.Data)
	if err != nil {
		return nil, mapStoreError(err)
	}

	photo := &domain.Photo{
		UserID:      owner.ID,
		PhotoURL:    upload.URL,
		PublicID:    upload.PublicID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.photos.Create(ctx, photo, tags); err != nil {
		if delErr := s.images.Delete(ctx, upload.PublicID); delErr != nil {
			s.logger.Warn("removing orphaned upload failed", zap.String("key", upload.PublicID), zap.Error(delErr))
		}
		return nil, mapStoreError(err)
	}

	s.logger.Info("photo created", zap.String("photo_id", photo.ID), zap.String("user_id", owner.ID))
	return photo, nil
}

// Get returns one photo.
func (s *PhotoService) Get(ctx context.Context, id string) (*domain.Photo, error) {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return photo, nil
}

// List returns a page of photos, optionally filtered by owner or search term.
func (s *PhotoService) List(ctx context.Context, filter repository.PhotoFilter) ([]domain.Photo, error) {
	photos, err := s.photos.List(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return photos, nil
}

// Update changes the given fields. Only the owner or an admin may update a photo.
func (s *PhotoService) Update(ctx context.Context, actor *domain.User, id string, in PhotoUpdateInput) (*domain.Photo, error) {
	photo, err := s.modifiable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Tags != nil {
		tags := NormalizeTags(*in.Tags)
		if len(tags) > domain.MaxPhotoTags {
			return nil, mapStoreError(domain.ErrTooManyTags)
		}
		if err := s.photos.ReplaceTags(ctx, photo, tags); err != nil {
			return nil, mapStoreError(err)
		}
	}

	if in.Title != nil || in.Description != nil {
		if in.Title != nil {
			photo.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			photo.Description = strings.TrimSpace(*in.Description)
		}
		if err := s.photos.Update(ctx, photo); err != nil {
			return nil, mapStoreError(err)
		}
	}
	return photo, nil
}

// Delete removes the photo. Stored objects are cleaned up by the lifecycle worker.
func (s *PhotoService) Delete(ctx context.Context, actor *domain.User, id string) (*domain.Photo, error) {
	if _, err := s.modifiable(ctx, actor, id); err != nil {
		return nil, err
	}

	photo, err := s.photos.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.logger.Info("photo deleted", zap.String("photo_id", id), zap.String("actor_id", actor.ID))
	s.publish(ctx, events.New(events.EventPhotoDeleted, domain.SubjectTypePhoto, id, actor,
		events.PhotoDeletedPayload{PublicID: photo.PublicID, QRCodeKey: QRCodeKey(id)}))
	return photo, nil
}

// Transform stores the image-host URL for the requested filters. When no filter
// applies the photo is returned unchanged.
func (s *PhotoService) Transform(ctx context.Context, actor *domain.User, id string, t domain.Transformation) (*domain.Photo, error) {
	photo, err := s.modifiable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	url, ok := s.images.TransformationURL(photo.PublicID, t)
	if !ok {
		return photo, nil
	}
	photo.TransformedURL = &url
	if err := s.photos.Update(ctx, photo); err != nil {
		return nil, mapStoreError(err)
	}

	s.publish(ctx, events.New(events.EventPhotoTransformed, domain.SubjectTypePhoto, id, actor,
		events.PhotoTransformedPayload{TransformedURL: url}))
	return photo, nil
}

// QRCode renders and stores a QR code pointing at the transformed image.
func (s *PhotoService) QRCode(ctx context.Context, id string) (*imagehost.Upload, error) {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if photo.TransformedURL == nil || *photo.TransformedURL == "" {
		return nil, apperrors.NewNotFound("transformed image", nil)
	}

	upload, err := s.images.UploadQRCode(ctx, photo.ID, *photo.TransformedURL)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return upload, nil
}

// QRCodeKey is the object key of the QR code of a photo.
func QRCodeKey(photoID string) string {
	return imagehost.FolderQRCodes + "/" + photoID + ".png"
}

func (s *PhotoService) modifiable(ctx context.Context, actor *domain.User, id string) (*domain.Photo, error) {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if !canModify(actor, photo.UserID) {
		return nil, apperrors.NewForbidden("only the owner or an admin may modify this photo")
	}
	return photo, nil
}

func (s *PhotoService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publishing event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

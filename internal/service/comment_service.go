package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/repository"
)

// CommentService manages comments on photos.
type CommentService struct {
	comments repository.CommentRepository
	photos   repository.PhotoRepository
	logger   *zap.Logger
}

// NewCommentService builds the service.
func NewCommentService(comments repository.CommentRepository, photos repository.PhotoRepository, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{comments: comments, photos: photos, logger: logger}
}

// ListForPhoto returns the comments of a photo, oldest first.
func (s *CommentService) ListForPhoto(ctx context.Context, photoID string, page repository.Page) ([]domain.Comment, error) {
	if _, err := s.photos.GetByID(ctx, photoID); err != nil {
		return nil, mapStoreError(err)
	}
	comments, err := s.comments.ListByPhoto(ctx, photoID, page)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return comments, nil
}

// Create adds a comment by author to a photo.
func (s *CommentService) Create(ctx context.Context, author *domain.User, photoID, text string) (*domain.Comment, error) {
	if _, err := s.photos.GetByID(ctx, photoID); err != nil {
		return nil, mapStoreError(err)
	}

	comment := &domain.Comment{
		Text:    strings.TrimSpace(text),
		PhotoID: photoID,
		UserID:  author.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, mapStoreError(err)
	}
	return comment, nil
}

// Update replaces the text of a comment.
func (s *CommentService) Update(ctx context.Context, id, text string) (*domain.Comment, error) {
	comment, err := s.comments.UpdateText(ctx, id, strings.TrimSpace(text))
	if err != nil {
		return nil, mapStoreError(err)
	}
	return comment, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, actor *domain.User, id string) (*domain.Comment, error) {
	comment, err := s.comments.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Info("comment deleted", zap.String("comment_id", id), zap.String("actor_id", actor.ID))
	return comment, nil
}

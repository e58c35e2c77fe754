package service

import (
	"context"
	"strings"

	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/repository"
)

// TagService manages tags.
type TagService struct {
	tags repository.TagRepository
}

// NewTagService builds the service.
func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// Create returns the tag with title, creating it when missing.
func (s *TagService) Create(ctx context.Context, user *domain.User, title string) (*domain.Tag, error) {
	tag, err := s.tags.GetOrCreate(ctx, strings.ToLower(strings.TrimSpace(title)), user.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return tag, nil
}

// Rename changes the title of a tag.
func (s *TagService) Rename(ctx context.Context, id, title string) (*domain.Tag, error) {
	tag, err := s.tags.UpdateTitle(ctx, id, strings.ToLower(strings.TrimSpace(title)))
	if err != nil {
		return nil, mapStoreError(err)
	}
	return tag, nil
}

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/repository"
)

func TestTagServiceNormalizesTitles(t *testing.T) {
	ctx := context.Background()
	tags := &MockTagRepository{}
	svc := NewTagService(tags)

	tags.On("GetOrCreate", ctx, "sunset", ownerUser.ID).Return(&domain.Tag{ID: "t-1", Title: "sunset"}, nil).Once()
	tags.On("UpdateTitle", ctx, "t-1", "dusk").Return(&domain.Tag{ID: "t-1", Title: "dusk"}, nil).Once()

	tag, err := svc.Create(ctx, ownerUser, "  SunSet ")
	require.NoError(t, err)
	assert.Equal(t, "sunset", tag.Title)

	tag, err = svc.Rename(ctx, "t-1", "Dusk")
	require.NoError(t, err)
	assert.Equal(t, "dusk", tag.Title)
	tags.AssertExpectations(t)
}

func TestTagServiceRenameErrors(t *testing.T) {
	ctx := context.Background()
	tags := &MockTagRepository{}
	svc := NewTagService(tags)

	tags.On("UpdateTitle", ctx, "t-1", "taken").Return(nil, repository.ErrDuplicate).Once()
	tags.On("UpdateTitle", ctx, "t-2", "new").Return(nil, domain.ErrTagNotFound).Once()

	_, err := svc.Rename(ctx, "t-1", "taken")
	assert.Equal(t, http.StatusConflict, statusOf(err))
	_, err = svc.Rename(ctx, "t-2", "new")
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

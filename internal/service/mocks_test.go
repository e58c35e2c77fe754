package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/imagehost"
	"github.com/spec-kit/photoshare-service/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = "user-" + user.Username
		user.IsActive = true
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page repository.Page) ([]domain.User, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, username, avatarURL *string) (*domain.User, error) {
	args := m.Called(ctx, id, username, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetActive(ctx context.Context, email string, active bool) error {
	args := m.Called(ctx, email, active)
	return args.Error(0)
}

func (m *MockUserRepository) SetRole(ctx context.Context, email string, role domain.Role) error {
	args := m.Called(ctx, email, role)
	return args.Error(0)
}

// MockRefreshTokenStore is a mock implementation of repository.RefreshTokenStore
type MockRefreshTokenStore struct {
	mock.Mock
}

func (m *MockRefreshTokenStore) Save(ctx context.Context, email, token string, ttl time.Duration) error {
	args := m.Called(ctx, email, token, ttl)
	return args.Error(0)
}

func (m *MockRefreshTokenStore) Matches(ctx context.Context, email, token string) (bool, error) {
	args := m.Called(ctx, email, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockRefreshTokenStore) Revoke(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockPhotoRepository is a mock implementation of repository.PhotoRepository
type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) Create(ctx context.Context, photo *domain.Photo, tags []string) error {
	args := m.Called(ctx, photo, tags)
	if args.Error(0) == nil {
		photo.ID = "photo-1"
	}
	return args.Error(0)
}

func (m *MockPhotoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *MockPhotoRepository) List(ctx context.Context, filter repository.PhotoFilter) ([]domain.Photo, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *MockPhotoRepository) Update(ctx context.Context, photo *domain.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) ReplaceTags(ctx context.Context, photo *domain.Photo, tags []string) error {
	args := m.Called(ctx, photo, tags)
	return args.Error(0)
}

func (m *MockPhotoRepository) Delete(ctx context.Context, id string) (*domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPhoto(ctx context.Context, photoID string, page repository.Page) ([]domain.Comment, error) {
	args := m.Called(ctx, photoID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateText(ctx context.Context, id, text string) (*domain.Comment, error) {
	args := m.Called(ctx, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

// MockImageStore is a mock implementation of ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) UploadImage(ctx context.Context, folder string, data []byte) (*imagehost.Upload, error) {
	args := m.Called(ctx, folder, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imagehost.Upload), args.Error(1)
}

func (m *MockImageStore) UploadQRCode(ctx context.Context, photoID, content string) (*imagehost.Upload, error) {
	args := m.Called(ctx, photoID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imagehost.Upload), args.Error(1)
}

func (m *MockImageStore) TransformationURL(publicID string, t domain.Transformation) (string, bool) {
	args := m.Called(publicID, t)
	return args.String(0), args.Bool(1)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of repository.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, title, userID string) (*domain.Tag, error) {
	args := m.Called(ctx, title, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) UpdateTitle(ctx context.Context, id, title string) (*domain.Tag, error) {
	args := m.Called(ctx, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

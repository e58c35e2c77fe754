package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/imagehost"
	"github.com/spec-kit/photoshare-service/internal/repository"
	"github.com/spec-kit/photoshare-service/internal/service"
)

type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Signup(ctx context.Context, in service.SignupInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *mockAuthAPI) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *mockAuthAPI) Logout(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockUserAPI struct {
	mock.Mock
}

func (m *mockUserAPI) UpdateProfile(ctx context.Context, user *domain.User, in service.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, user, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserAPI) List(ctx context.Context, page repository.Page) ([]domain.User, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserAPI) Profile(ctx context.Context, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *mockUserAPI) Ban(ctx context.Context, actor *domain.User, email string) error {
	return m.Called(ctx, actor, email).Error(0)
}

func (m *mockUserAPI) ChangeRole(ctx context.Context, actor *domain.User, email string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, actor, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockPhotoAPI struct {
	mock.Mock
}

func (m *mockPhotoAPI) Create(ctx context.Context, owner *domain.User, in service.PhotoCreateInput) (*domain.Photo, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *mockPhotoAPI) Get(ctx context.Context, id string) (*domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *mockPhotoAPI) List(ctx context.Context, filter repository.PhotoFilter) ([]domain.Photo, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *mockPhotoAPI) Update(ctx context.Context, actor *domain.User, id string, in service.PhotoUpdateInput) (*domain.Photo, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *mockPhotoAPI) Delete(ctx context.Context, actor *domain.User, id string) (*domain.Photo, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *mockPhotoAPI) Transform(ctx context.Context, actor *domain.User, id string, t domain.Transformation) (*domain.Photo, error) {
	args := m.Called(ctx, actor, id, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *mockPhotoAPI) QRCode(ctx context.Context, id string) (*imagehost.Upload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imagehost.Upload), args.Error(1)
}

type mockTagAPI struct {
	mock.Mock
}

func (m *mockTagAPI) Create(ctx context.Context, user *domain.User, title string) (*domain.Tag, error) {
	args := m.Called(ctx, user, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagAPI) Rename(ctx context.Context, id, title string) (*domain.Tag, error) {
	args := m.Called(ctx, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

type mockCommentAPI struct {
	mock.Mock
}

func (m *mockCommentAPI) ListForPhoto(ctx context.Context, photoID string, page repository.Page) ([]domain.Comment, error) {
	args := m.Called(ctx, photoID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *mockCommentAPI) Create(ctx context.Context, author *domain.User, photoID, text string) (*domain.Comment, error) {
	args := m.Called(ctx, author, photoID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentAPI) Update(ctx context.Context, id, text string) (*domain.Comment, error) {
	args := m.Called(ctx, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentAPI) Delete(ctx context.Context, actor *domain.User, id string) (*domain.Comment, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

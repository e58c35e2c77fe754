package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/events"
	"github.com/spec-kit/photoshare-service/internal/imagehost"
	"github.com/spec-kit/photoshare-service/internal/repository"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// ProfileUpdate carries the optional fields of PATCH /users/me.
type ProfileUpdate struct {
	Username *string
	Avatar   []byte
}

// UserService manages accounts after signup.
type UserService struct {
	users      repository.UserRepository
	images     ImageStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, images ImageStore, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, images: images, dispatcher: dispatcher, logger: logger}
}

// UpdateProfile changes the username and/or avatar of user.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, in ProfileUpdate) (*domain.User, error) {
	var avatarURL *string
	if len(in.Avatar) > 0 {
		upload, err := s.images.UploadImage(ctx, imagehost.FolderAvatars, in.Avatar)
		if err != nil {
			return nil, mapStoreError(err)
		}
		avatarURL = &upload.URL
	}

	var username *string
	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		username = &trimmed
	}

	if username == nil && avatarURL == nil {
		return user, nil
	}

	updated, err := s.users.UpdateProfile(ctx, user.ID, username, avatarURL)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("username already taken", nil)
		}
		return nil, mapStoreError(err)
	}
	return updated, nil
}

// List returns a page of accounts.
func (s *UserService) List(ctx context.Context, page repository.Page) ([]domain.User, error) {
	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return users, nil
}

// Profile returns the public profile of username.
func (s *UserService) Profile(ctx context.Context, username string) (*domain.UserProfile, error) {
	profile, err := s.users.GetProfile(ctx, username)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return profile, nil
}

// Ban deactivates the account with email. Banned accounts fail authentication on
// their next request.
func (s *UserService) Ban(ctx context.Context, actor *domain.User, email string) error {
	email = normalizeEmail(email)
	if actor != nil && actor.Email == email {
		return apperrors.NewConflict("cannot ban yourself", nil)
	}

	target, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return mapStoreError(err)
	}
	if !target.IsActive {
		return apperrors.NewConflict("user is already banned", nil)
	}
	if err := s.users.SetActive(ctx, email, false); err != nil {
		return mapStoreError(err)
	}

	s.logger.Info("user banned", zap.String("user_id", target.ID))
	s.publish(ctx, events.New(events.EventUserBanned, domain.SubjectTypeUser, target.ID, actor,
		events.UserBannedPayload{Email: email}))
	return nil
}

// ChangeRole assigns role to the account with email. actor is nil for CLI bootstrap.
func (s *UserService) ChangeRole(ctx context.Context, actor *domain.User, email string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	email = normalizeEmail(email)

	target, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if target.Role == role {
		return target, nil
	}
	if err := s.users.SetRole(ctx, email, role); err != nil {
		return nil, mapStoreError(err)
	}

	old := target.Role
	target.Role = role
	s.logger.Info("user role changed",
		zap.String("user_id", target.ID),
		zap.String("old_role", string(old)),
		zap.String("new_role", string(role)),
	)
	s.publish(ctx, events.New(events.EventUserRoleChanged, domain.SubjectTypeUser, target.ID, actor,
		events.UserRoleChangedPayload{Email: email, OldRole: old, NewRole: role}))
	return target, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publishing event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

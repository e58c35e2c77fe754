package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/photoshare-service/internal/auth"
	"github.com/spec-kit/photoshare-service/internal/config"
	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/repository"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// SignupInput describes a new account.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// AuthService coordinates registration, login and token renewal.
type AuthService struct {
	users           repository.UserRepository
	refresh         repository.RefreshTokenStore
	tokens          *auth.TokenManager
	hasher          *auth.PasswordHasher
	recorder        TokenRecorder
	enforceRotation bool
	logger          *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	RefreshStore repository.RefreshTokenStore
	Tokens       *auth.TokenManager
	Hasher       *auth.PasswordHasher
	Recorder     TokenRecorder
	Logger       *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:           deps.UserRepo,
		refresh:         deps.RefreshStore,
		tokens:          deps.Tokens,
		hasher:          deps.Hasher,
		recorder:        deps.Recorder,
		enforceRotation: cfg.EnforceRefreshRotation,
		logger:          logger,
	}
}

// Signup creates a regular user account.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("account already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, apperrors.NewForbidden("account is deactivated")
	}

	return s.issuePair(ctx, user, "login")
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	email, err := s.tokens.ResolveRefreshSubject(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedCause(auth.MsgCouldNotValidate, auth.ErrUnknownSubject)
		}
		return nil, apperrors.MapError(err)
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedCause(auth.MsgCouldNotValidate, auth.ErrInactiveSubject)
	}

	if s.enforceRotation {
		ok, err := s.refresh.Matches(ctx, user.Email, refreshToken)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		if !ok {
			if err := s.refresh.Revoke(ctx, user.Email); err != nil {
				s.logger.Warn("revoking refresh token failed", zap.String("user_id", user.ID), zap.Error(err))
			}
			s.logger.Info("stale refresh token presented", zap.String("user_id", user.ID))
			return nil, apperrors.NewUnauthorized("invalid refresh token")
		}
	}

	return s.issuePair(ctx, user, "refresh")
}

// Logout forgets the stored refresh token of user.
func (s *AuthService) Logout(ctx context.Context, user *domain.User) error {
	if err := s.refresh.Revoke(ctx, user.Email); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User, flow string) (*TokenPair, error) {
	access, accessExp, err := s.tokens.IssueAccessToken(user.Email, 0)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	refresh, refreshExp, err := s.tokens.IssueRefreshToken(user.Email, 0)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.refresh.Save(ctx, user.Email, refresh, s.tokens.RefreshTTL()); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.recorder != nil {
		s.recorder.RecordTokensIssued(flow)
	}
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

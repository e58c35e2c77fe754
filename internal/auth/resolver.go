package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/photoshare-service/internal/domain"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// UserLookup loads users by the email carried in token subjects.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserLookupFunc adapts a plain function to UserLookup.
type UserLookupFunc func(ctx context.Context, email string) (*domain.User, error)

// GetByEmail implements UserLookup.
func (f UserLookupFunc) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f(ctx, email)
}

// Resolver turns a bearer access token into the stored user it names.
type Resolver struct {
	tokens *TokenManager
	users  UserLookup
}

// NewResolver constructs a Resolver.
func NewResolver(tokens *TokenManager, users UserLookup) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve validates token and loads its subject. Every call hits the user store, so
// bans and role changes apply to the next request.
func (r *Resolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	email, err := r.tokens.ResolveAccessSubject(token)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, unauthorized(ErrUnknownSubject)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if user == nil {
		return nil, unauthorized(ErrUnknownSubject)
	}
	if !user.IsActive {
		return nil, unauthorized(ErrInactiveSubject)
	}
	return user, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", apperrors.NewUnauthorizedCause(MsgNotAuthenticated, ErrMissingBearer)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.NewUnauthorizedCause(MsgNotAuthenticated, ErrMissingBearer)
	}
	return token, nil
}

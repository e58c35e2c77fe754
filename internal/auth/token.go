package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenConfig is the immutable token service configuration.
type TokenConfig struct {
	Secret     string
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the wall clock used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) {
		if now != nil {
			m.now = now
		}
	}
}

// TokenManager issues and validates scoped access and refresh tokens.
type TokenManager struct {
	codec      *TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager builds a token service.
func NewTokenManager(cfg TokenConfig, opts ...TokenOption) (*TokenManager, error) {
	m := &TokenManager{
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.accessTTL <= 0 {
		m.accessTTL = DefaultAccessTTL
	}
	if m.refreshTTL <= 0 {
		m.refreshTTL = DefaultRefreshTTL
	}

	codec, err := NewTokenCodec(cfg.Secret, cfg.Algorithm, m.now)
	if err != nil {
		return nil, err
	}
	m.codec = codec
	return m, nil
}

// AccessTTL returns the default access token lifetime.
func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL returns the default refresh token lifetime.
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccessToken creates an access token for subject. A non-positive ttl uses the default.
func (m *TokenManager) IssueAccessToken(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = m.accessTTL
	}
	return m.issue(subject, ScopeAccess, ttl)
}

// IssueRefreshToken creates a refresh token for subject. A non-positive ttl uses the default.
func (m *TokenManager) IssueRefreshToken(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = m.refreshTTL
	}
	return m.issue(subject, ScopeRefresh, ttl)
}

// ResolveAccessSubject returns the subject of a valid access token.
func (m *TokenManager) ResolveAccessSubject(token string) (string, error) {
	return m.resolve(token, ScopeAccess)
}

// ResolveRefreshSubject returns the subject of a valid refresh token.
func (m *TokenManager) ResolveRefreshSubject(token string) (string, error) {
	return m.resolve(token, ScopeRefresh)
}

func (m *TokenManager) issue(subject, scope string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("token subject must not be empty")
	}

	issuedAt := m.now().UTC()
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := m.codec.Encode(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue %s: %w", scope, err)
	}
	return signed, expiresAt, nil
}

func (m *TokenManager) resolve(token, scope string) (string, error) {
	claims, err := m.codec.Decode(token)
	if err != nil {
		return "", unauthorized(err)
	}
	if claims.Scope != scope {
		return "", unauthorized(ErrWrongScope)
	}
	if claims.Subject == "" {
		return "", unauthorized(ErrSubjectMissing)
	}
	return claims.Subject, nil
}

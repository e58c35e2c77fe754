package repository

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore remembers the most recent refresh token per account. Only a
// SHA-256 digest of the token is stored.
type RefreshTokenStore interface {
	Save(ctx context.Context, email, token string, ttl time.Duration) error
	Matches(ctx context.Context, email, token string) (bool, error)
	Revoke(ctx context.Context, email string) error
}

type redisRefreshTokenStore struct {
	client redis.Cmdable
	prefix string
}

// NewRefreshTokenStore returns a Redis-backed store. Keys are <prefix>refresh:<email>.
func NewRefreshTokenStore(client redis.Cmdable, prefix string) RefreshTokenStore {
	return &redisRefreshTokenStore{client: client, prefix: prefix}
}

func (s *redisRefreshTokenStore) key(email string) string {
	return s.prefix + "refresh:" + email
}

func (s *redisRefreshTokenStore) Save(ctx context.Context, email, token string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(email), digest(token), ttl).Err()
}

func (s *redisRefreshTokenStore) Matches(ctx context.Context, email, token string) (bool, error) {
	stored, err := s.client.Get(ctx, s.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(digest(token))) == 1, nil
}

func (s *redisRefreshTokenStore) Revoke(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

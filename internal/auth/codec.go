package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token scopes. An access token never passes as a refresh token and vice versa.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
)

// Claims is the payload carried by every issued token.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies compact JWTs with a shared HMAC secret.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// NewTokenCodec builds a codec for one of HS256, HS384 or HS512.
func NewTokenCodec(secret, algorithm string, now func() time.Time) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{secret: []byte(secret), method: method, now: now}, nil
}

// Algorithm returns the JWT alg header value the codec signs with.
func (c *TokenCodec) Algorithm() string {
	return c.method.Alg()
}

// Encode serializes and signs claims.
func (c *TokenCodec) Encode(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(c.method, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of raw and returns its claims.
// Errors are one of ErrTokenMalformed, ErrTokenSignatureInvalid or ErrTokenExpired.
func (c *TokenCodec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

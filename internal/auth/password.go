package auth

import (
	"fmt"
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hashing algorithms.
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

const argon2idPrefix = "$argon2id$"

// PasswordHasher produces self-describing salted hashes. Verification picks the
// algorithm from the stored hash, so switching the default keeps old hashes valid.
type PasswordHasher struct {
	algorithm  string
	bcryptCost int
	argon      *pwdhash.PasswordHasher
}

// NewPasswordHasher builds a hasher for the named algorithm.
func NewPasswordHasher(algorithm string, bcryptCost int) (*PasswordHasher, error) {
	if algorithm == "" {
		algorithm = HasherBcrypt
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	argon, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, fmt.Errorf("init argon2id hasher: %w", err)
	}

	switch algorithm {
	case HasherBcrypt, HasherArgon2id:
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", algorithm)
	}

	return &PasswordHasher{algorithm: algorithm, bcryptCost: bcryptCost, argon: argon}, nil
}

// Hash hashes a plaintext password with the configured algorithm.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.algorithm == HasherArgon2id {
		hashed, err := h.argon.Hash([]byte(password))
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		return hashed, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hashed. Malformed hashes never match.
func (h *PasswordHasher) Verify(plain, hashed string) bool {
	if strings.HasPrefix(hashed, argon2idPrefix) {
		ok, err := h.argon.Verify([]byte(plain), hashed)
		return err == nil && ok
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

package dto

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 150), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// NewTokenResponse builds a bearer token response.
func NewTokenResponse(access, refresh string, accessExp, refreshExp time.Time) TokenResponse {
	return TokenResponse{
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenType:        "bearer",
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}
}

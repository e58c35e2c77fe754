package dto

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

// BanRequest names the account to deactivate.
type BanRequest struct {
	Email string `json:"email"`
}

func (r BanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// RoleRequest assigns a role to an account.
type RoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r RoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Role, validation.Required,
			validation.In(string(domain.RoleAdmin), string(domain.RoleModerator), string(domain.RoleUser))),
	)
}

// UsernameUpdate is the optional text part of PATCH /users/me.
type UsernameUpdate struct {
	Username *string
}

func (r UsernameUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.NilOrNotEmpty, validation.Length(2, 50)),
	)
}

// UserResponse is the private view of an account.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	AvatarURL *string     `json:"avatar"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses maps a page of users.
func NewUserResponses(users []domain.User) []UserResponse {
	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, NewUserResponse(&users[i]))
	}
	return items
}

// ProfileResponse is the public view of an account.
type ProfileResponse struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	AvatarURL  *string     `json:"avatar"`
	IsActive   bool        `json:"is_active"`
	PhotoCount int         `json:"photo_count"`
	CreatedAt  time.Time   `json:"created_at"`
}

func NewProfileResponse(p *domain.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID,
		Username:   p.Username,
		Email:      p.Email,
		Role:       p.Role,
		AvatarURL:  p.AvatarURL,
		IsActive:   p.IsActive,
		PhotoCount: p.PhotoCount,
		CreatedAt:  p.CreatedAt,
	}
}

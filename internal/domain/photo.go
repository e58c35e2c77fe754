package domain

import (
	"errors"
	"time"
)

// MaxPhotoTags caps the number of tags attached to a single photo.
const MaxPhotoTags = 5

var (
	ErrPhotoNotFound  = errors.New("photo not found")
	ErrTooManyTags    = errors.New("too many tags")
	ErrNotTransformed = errors.New("photo has no transformation")
)

// Photo is an uploaded image and its metadata.
type Photo struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	PhotoURL       string    `db:"photo_url"`
	PublicID       string    `db:"public_id"`
	TransformedURL *string   `db:"transformed_url"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	Tags           []Tag     `db:"-"`
}

// OwnedBy reports whether userID uploaded the photo.
func (p *Photo) OwnedBy(userID string) bool {
	return p != nil && p.UserID == userID
}

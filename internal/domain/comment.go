package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment is a text note left on a photo.
type Comment struct {
	ID        string    `db:"id"`
	Text      string    `db:"text"`
	PhotoID   string    `db:"photo_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

package domain

import (
	"errors"
	"time"
)

var ErrTagNotFound = errors.New("tag not found")

// Tag labels photos. Titles are unique across the service.
type Tag struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

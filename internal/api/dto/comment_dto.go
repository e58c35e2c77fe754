package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

// CommentRequest creates or edits a comment.
type CommentRequest struct {
	Text string `json:"text"`
}

func (r CommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, 500)),
	)
}

// CommentResponse is the API view of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	PhotoID   string    `json:"photo_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		PhotoID:   c.PhotoID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCommentResponses(comments []domain.Comment) []CommentResponse {
	items := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, NewCommentResponse(&comments[i]))
	}
	return items
}

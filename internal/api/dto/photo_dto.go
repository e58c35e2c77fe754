package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

const (
	maxTitleLen       = 69
	maxDescriptionLen = 777
	maxTagLen         = 25
)

// PhotoCreateRequest holds the text fields of the multipart upload form.
type PhotoCreateRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Tags        string `form:"tags"`
}

func (r PhotoCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, maxTitleLen)),
		validation.Field(&r.Description, validation.Length(0, maxDescriptionLen)),
	)
}

// PhotoUpdateRequest replaces title, description and tags.
type PhotoUpdateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (r PhotoUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, maxTitleLen)),
		validation.Field(&r.Description, validation.Length(0, maxDescriptionLen)),
		validation.Field(&r.Tags, validation.Length(0, domain.MaxPhotoTags),
			validation.Each(validation.Length(1, maxTagLen))),
	)
}

// PhotoTitleRequest updates only the title.
type PhotoTitleRequest struct {
	Title string `json:"title"`
}

func (r PhotoTitleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxTitleLen)),
	)
}

// PhotoDescriptionRequest updates only the description.
type PhotoDescriptionRequest struct {
	Description string `json:"description"`
}

func (r PhotoDescriptionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Description, validation.Length(0, maxDescriptionLen)),
	)
}

// PhotoResponse is the API view of a photo.
type PhotoResponse struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	PhotoURL       string        `json:"photo_url"`
	TransformedURL *string       `json:"transformed_url"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Tags           []TagResponse `json:"tags"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewPhotoResponse maps a domain photo.
func NewPhotoResponse(p *domain.Photo) PhotoResponse {
	tags := make([]TagResponse, 0, len(p.Tags))
	for i := range p.Tags {
		tags = append(tags, NewTagResponse(&p.Tags[i]))
	}
	return PhotoResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		PhotoURL:       p.PhotoURL,
		TransformedURL: p.TransformedURL,
		Title:          p.Title,
		Description:    p.Description,
		Tags:           tags,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// NewPhotoResponses maps a page of photos.
func NewPhotoResponses(photos []domain.Photo) []PhotoResponse {
	items := make([]PhotoResponse, 0, len(photos))
	for i := range photos {
		items = append(items, NewPhotoResponse(&photos[i]))
	}
	return items
}

// TagRequest creates or renames a tag.
type TagRequest struct {
	Title string `json:"title"`
}

func (r TagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxTagLen)),
	)
}

// TagResponse is the API view of a tag.
type TagResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func NewTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Title: t.Title}
}

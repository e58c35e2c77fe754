package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPhotoDeleted     EventType = "photo_deleted"
	EventUserBanned       EventType = "user_banned"
	EventUserRoleChanged  EventType = "user_role_changed"
	EventPhotoTransformed EventType = "photo_transformed"
)

// Actor is the user whose request caused the event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string             `json:"id"`
	Type        EventType          `json:"type"`
	SubjectType domain.SubjectType `json:"subject_type"`
	SubjectID   string             `json:"subject_id"`
	Actor       Actor              `json:"actor"`
	Timestamp   time.Time          `json:"timestamp"`
	Payload     interface{}        `json:"payload"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, subjectType domain.SubjectType, subjectID string, actor *domain.User, payload interface{}) Event {
	event := Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Timestamp:   time.Now().UTC(),
		Payload:     payload,
	}
	if actor != nil {
		event.Actor = Actor{UserID: actor.ID, Role: actor.Role}
	}
	return event
}

// PhotoDeletedPayload lists the stored objects that belonged to the photo.
type PhotoDeletedPayload struct {
	PublicID  string `json:"public_id"`
	QRCodeKey string `json:"qr_code_key"`
}

// UserBannedPayload payload.
type UserBannedPayload struct {
	Email string `json:"email"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	Email   string      `json:"email"`
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// PhotoTransformedPayload payload.
type PhotoTransformedPayload struct {
	TransformedURL string `json:"transformed_url"`
}

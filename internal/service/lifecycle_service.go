package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/photoshare-service/internal/events"
	"github.com/spec-kit/photoshare-service/internal/repository"
)

// ObjectDeleter removes stored objects.
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

// LifecycleService reacts to domain events by cleaning up stored objects and
// refresh-token records.
type LifecycleService struct {
	dispatcher events.Dispatcher
	objects    ObjectDeleter
	refresh    repository.RefreshTokenStore
	logger     *zap.Logger
}

// NewLifecycleService creates the service.
func NewLifecycleService(dispatcher events.Dispatcher, objects ObjectDeleter, refresh repository.RefreshTokenStore, logger *zap.Logger) *LifecycleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		dispatcher: dispatcher,
		objects:    objects,
		refresh:    refresh,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (l *LifecycleService) RegisterHandlers() {
	if l.dispatcher == nil {
		return
	}
	l.dispatcher.Subscribe(events.EventPhotoDeleted, l.handlePhotoDeleted)
	l.dispatcher.Subscribe(events.EventPhotoTransformed, l.handlePhotoTransformed)
	l.dispatcher.Subscribe(events.EventUserBanned, l.handleUserBanned)
	l.dispatcher.Subscribe(events.EventUserRoleChanged, l.handleUserRoleChanged)
}

func (l *LifecycleService) handlePhotoDeleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PhotoDeletedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	l.logger.Info("PhotoDeleted", zap.String("photo_id", event.SubjectID))

	var errs []error
	for _, key := range []string{payload.PublicID, payload.QRCodeKey} {
		if key == "" {
			continue
		}
		if err := l.objects.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// A new transformation makes the old QR code point at a stale URL.
func (l *LifecycleService) handlePhotoTransformed(ctx context.Context, event events.Event) error {
	l.logger.Info("PhotoTransformed", zap.String("photo_id", event.SubjectID))
	return l.objects.Delete(ctx, QRCodeKey(event.SubjectID))
}

func (l *LifecycleService) handleUserBanned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserBannedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	l.logger.Info("UserBanned", zap.String("user_id", event.SubjectID))
	return l.refresh.Revoke(ctx, payload.Email)
}

func (l *LifecycleService) handleUserRoleChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRoleChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	l.logger.Info("UserRoleChanged",
		zap.String("user_id", event.SubjectID),
		zap.String("old_role", string(payload.OldRole)),
		zap.String("new_role", string(payload.NewRole)),
	)
	return l.refresh.Revoke(ctx, payload.Email)
}

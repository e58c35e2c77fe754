package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingRecorder struct {
	mu     sync.Mutex
	ok     int
	failed int
}

func (r *countingRecorder) RecordEvent(_ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failed++
		return
	}
	r.ok++
}

func TestPublishInvokesAllHandlers(t *testing.T) {
	recorder := &countingRecorder{}
	d := NewInMemoryDispatcher(zap.NewNop(), recorder)

	var got []string
	boom := errors.New("boom")
	d.Subscribe(EventUserBanned, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.SubjectID)
		return boom
	})
	d.Subscribe(EventUserBanned, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventPhotoDeleted, func(context.Context, Event) error {
		t.Fatal("unexpected handler")
		return nil
	})

	actor := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	event := New(EventUserBanned, domain.SubjectTypeUser, "user-1", actor, UserBannedPayload{Email: "a@example.com"})
	err := d.Publish(context.Background(), event)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first:user-1", "second:user-1"}, got)
	assert.Equal(t, 1, recorder.ok)
	assert.Equal(t, 1, recorder.failed)
	assert.Equal(t, "admin-1", event.Actor.UserID)
	assert.NotEmpty(t, event.ID)
}

func TestPublishWithoutHandlers(t *testing.T) {
	d := NewInMemoryDispatcher(nil, nil)
	assert.NoError(t, d.Publish(context.Background(), New(EventPhotoDeleted, domain.SubjectTypePhoto, "p", nil, nil)))
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	d := NewInMemoryDispatcher(nil, nil)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Subscribe(EventUserRoleChanged, func(context.Context, Event) error { return nil })
		}()
		go func() {
			defer wg.Done()
			_ = d.Publish(context.Background(), New(EventUserRoleChanged, domain.SubjectTypeUser, "u", nil, nil))
		}()
	}
	wg.Wait()
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"eventbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionService_Subscribe(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	tests := []struct {
		name        string
		setup       func() (*fakeSubscriberRepo, *fakeEventRepo, string)
		phone       string
		wantErr     error
		wantErrAny  bool
		assert      func(t *testing.T, subs *fakeSubscriberRepo, event *domain.Event)
	}{
		{
			name: "new subscription creates active row",
			setup: func() (*fakeSubscriberRepo, *fakeEventRepo, string) {
				er := newFakeEventRepo()
				ev := er.addEvent("Congreso de Sistemas", true)
				return newFakeSubscriberRepo(), er, ev.ID
			},
			phone: "3001234567",
			assert: func(t *testing.T, subs *fakeSubscriberRepo, event *domain.Event) {
				require.Len(t, subs.rows, 1)
				assert.True(t, subs.rows[0].IsActive)
				assert.Equal(t, "3001234567", subs.rows[0].PhoneNumber)
				assert.Equal(t, "Congreso de Sistemas", event.Name)
			},
		},
		{
			name: "already active returns ErrAlreadySubscribed without mutation",
			setup: func() (*fakeSubscriberRepo, *fakeEventRepo, string) {
				er := newFakeEventRepo()
				ev := er.addEvent("Congreso", true)
				sr := newFakeSubscriberRepo()
				_, _ = sr.Upsert(context.Background(), "3001234567", ev.ID, time.Now())
				return sr, er, ev.ID
			},
			phone:   "3001234567",
			wantErr: domain.ErrAlreadySubscribed,
			assert: func(t *testing.T, subs *fakeSubscriberRepo, _ *domain.Event) {
				require.Len(t, subs.rows, 1)
				assert.True(t, subs.rows[0].IsActive)
			},
		},
		{
			name: "inactive row is reactivated, not duplicated",
			setup: func() (*fakeSubscriberRepo, *fakeEventRepo, string) {
				er := newFakeEventRepo()
				ev := er.addEvent("Congreso", true)
				sr := newFakeSubscriberRepo()
				_, _ = sr.Upsert(context.Background(), "3001234567", ev.ID, time.Now())
				_ = sr.SetActive(context.Background(), "3001234567", ev.ID, false)
				return sr, er, ev.ID
			},
			phone: "3001234567",
			assert: func(t *testing.T, subs *fakeSubscriberRepo, _ *domain.Event) {
				require.Len(t, subs.rows, 1)
				assert.True(t, subs.rows[0].IsActive)
				assert.Equal(t, "sub-1", subs.rows[0].ID)
			},
		},
		{
			name: "event not found",
			setup: func() (*fakeSubscriberRepo, *fakeEventRepo, string) {
				return newFakeSubscriberRepo(), newFakeEventRepo(), "ev-missing"
			},
			phone:   "3001234567",
			wantErr: domain.ErrNotFound,
		},
		{
			name: "repo error propagates",
			setup: func() (*fakeSubscriberRepo, *fakeEventRepo, string) {
				er := newFakeEventRepo()
				ev := er.addEvent("Congreso", true)
				sr := newFakeSubscriberRepo()
				sr.getErr = errors.New("db down")
				return sr, er, ev.ID
			},
			phone:      "3001234567",
			wantErrAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs, events, eventID := tt.setup()
			svc := NewSubscriptionService(subs, events, timeout)
			event, err := svc.Subscribe(ctx, tt.phone, eventID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrAny {
				require.Error(t, err)
				return
			} else {
				require.NoError(t, err)
				require.NotNil(t, event)
			}
			if tt.assert != nil {
				tt.assert(t, subs, event)
			}
		})
	}
}

func TestSubscriptionService_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	tests := []struct {
		name    string
		setup   func() (*fakeSubscriberRepo, *fakeEventRepo, string)
		phone   string
		wantErr error
		assert  func(t *testing.T, subs *fakeSubscriberRepo)
	}{
		{
			name: "active subscription is deactivated",
			setup: func() (*fakeSubscriberRepo, *fakeEventRepo, string) {
				er := newFakeEventRepo()
				ev := er.addEvent("Congreso", true)
				sr := newFakeSubscriberRepo()
				_, _ = sr.Upsert(context.Background(), "3001234567", ev.ID, time.Now())
				return sr, er, ev.ID
			},
			phone: "3001234567",
			assert: func(t *testing.T, subs *fakeSubscriberRepo) {
				require.Len(t, subs.rows, 1)
				assert.False(t, subs.rows[0].IsActive, "row should be deactivated, not deleted")
			},
		},
		{
			name: "absent subscription returns ErrNotSubscribed",
			setup: func() (*fakeSubscriberRepo, *fakeEventRepo, string) {
				er := newFakeEventRepo()
				ev := er.addEvent("Congreso", true)
				return newFakeSubscriberRepo(), er, ev.ID
			},
			phone:   "3009999999",
			wantErr: domain.ErrNotSubscribed,
		},
		{
			name: "inactive subscription returns ErrNotSubscribed",
			setup: func() (*fakeSubscriberRepo, *fakeEventRepo, string) {
				er := newFakeEventRepo()
				ev := er.addEvent("Congreso", true)
				sr := newFakeSubscriberRepo()
				_, _ = sr.Upsert(context.Background(), "3001234567", ev.ID, time.Now())
				_ = sr.SetActive(context.Background(), "3001234567", ev.ID, false)
				return sr, er, ev.ID
			},
			phone:   "3001234567",
			wantErr: domain.ErrNotSubscribed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs, events, eventID := tt.setup()
			svc := NewSubscriptionService(subs, events, timeout)
			err := svc.Unsubscribe(ctx, tt.phone, eventID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.assert != nil {
				tt.assert(t, subs)
			}
		})
	}
}

func TestSubscriptionService_SubscribeUnsubscribeCycle(t *testing.T) {
	ctx := context.Background()
	er := newFakeEventRepo()
	ev := er.addEvent("Congreso", true)
	sr := newFakeSubscriberRepo()
	svc := NewSubscriptionService(sr, er, 5*time.Second)

	_, err := svc.Subscribe(ctx, "3001234567", ev.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, "3001234567", ev.ID))
	_, err = svc.Subscribe(ctx, "3001234567", ev.ID)
	require.NoError(t, err)

	// The full cycle reuses the original row and ends active.
	require.Len(t, sr.rows, 1)
	assert.Equal(t, "sub-1", sr.rows[0].ID)
	assert.True(t, sr.rows[0].IsActive)
}

func TestSubscriptionService_SubscribeSamePhoneDifferentEvents(t *testing.T) {
	ctx := context.Background()
	er := newFakeEventRepo()
	ev1 := er.addEvent("Congreso A", true)
	ev2 := er.addEvent("Congreso B", true)
	sr := newFakeSubscriberRepo()
	svc := NewSubscriptionService(sr, er, 5*time.Second)

	_, err := svc.Subscribe(ctx, "3001234567", ev1.ID)
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, "3001234567", ev2.ID)
	require.NoError(t, err)

	require.Len(t, sr.rows, 2)
}

func TestSubscriptionService_ConcurrentSubscribeSameKey(t *testing.T) {
	ctx := context.Background()
	er := newFakeEventRepo()
	ev := er.addEvent("Congreso", true)
	sr := newFakeSubscriberRepo()
	svc := NewSubscriptionService(sr, er, 5*time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Subscribe(ctx, "3001234567", ev.ID)
		}()
	}
	wg.Wait()

	// Exactly one row regardless of interleaving.
	require.Len(t, sr.rows, 1)
	assert.True(t, sr.rows[0].IsActive)
}

func TestSubscriptionService_LockMapPrunedAfterUse(t *testing.T) {
	ctx := context.Background()
	er := newFakeEventRepo()
	ev1 := er.addEvent("Congreso A", true)
	ev2 := er.addEvent("Congreso B", true)
	sr := newFakeSubscriberRepo()
	svc := NewSubscriptionService(sr, er, 5*time.Second)
	impl, ok := svc.(*subscriptionService)
	require.True(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Subscribe(ctx, "3001234567", ev1.ID)
		}()
	}
	wg.Wait()
	_, err := svc.Subscribe(ctx, "3007654321", ev2.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, "3007654321", ev2.ID))

	// Lock entries only live while a call is in flight.
	impl.mu.Lock()
	remaining := len(impl.locks)
	impl.mu.Unlock()
	assert.Zero(t, remaining)
}

func TestSubscriptionService_ListActiveSubscribers(t *testing.T) {
	ctx := context.Background()
	er := newFakeEventRepo()
	ev := er.addEvent("Congreso", true)
	sr := newFakeSubscriberRepo()
	_, _ = sr.Upsert(ctx, "3001111111", ev.ID, time.Now())
	_, _ = sr.Upsert(ctx, "3002222222", ev.ID, time.Now())
	_ = sr.SetActive(ctx, "3002222222", ev.ID, false)
	_, _ = sr.Upsert(ctx, "3003333333", "ev-other", time.Now())

	svc := NewSubscriptionService(sr, er, 5*time.Second)
	subs, err := svc.ListActiveSubscribers(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "3001111111", subs[0].PhoneNumber)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"eventbot/internal/domain"
)

type keyLock struct {
	mu   sync.Mutex
	refs int
}

type subscriptionService struct {
	subscriberRepo domain.SubscriberRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration

	mu    sync.Mutex
	locks map[string]*keyLock
}

// NewSubscriptionService returns a SubscriptionService backed by the given repositories.
func NewSubscriptionService(subscriberRepo domain.SubscriberRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.SubscriptionService {
	return &subscriptionService{
		subscriberRepo: subscriberRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
		locks:          make(map[string]*keyLock),
	}
}

// lockKey serializes the read-then-write in Subscribe and Unsubscribe for one
// (phone, event) pair and returns the matching unlock. Entries are
// reference-counted and removed once the last holder releases, so the map
// only holds keys with calls in flight. The repository's unique constraint
// covers racing creates from other processes.
func (s *subscriptionService) lockKey(phoneNumber, eventID string) func() {
	key := phoneNumber + "|" + eventID

	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, phoneNumber, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if phoneNumber == "" || eventID == "" {
		return nil, domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	unlock := s.lockKey(phoneNumber, eventID)
	defer unlock()

	sub, err := s.subscriberRepo.GetByPhoneAndEvent(ctx, phoneNumber, eventID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	if sub != nil && sub.IsActive {
		return nil, domain.ErrAlreadySubscribed
	}
	if sub != nil {
		// Inactive row: reactivate it, never insert a duplicate.
		if err := s.subscriberRepo.SetActive(ctx, phoneNumber, eventID, true); err != nil {
			return nil, fmt.Errorf("reactivate subscription: %w", err)
		}
		return event, nil
	}
	if _, err := s.subscriberRepo.Upsert(ctx, phoneNumber, eventID, time.Now()); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return event, nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, phoneNumber, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if phoneNumber == "" || eventID == "" {
		return domain.ErrInvalidInput
	}

	unlock := s.lockKey(phoneNumber, eventID)
	defer unlock()

	sub, err := s.subscriberRepo.GetByPhoneAndEvent(ctx, phoneNumber, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotSubscribed
		}
		return fmt.Errorf("get subscription: %w", err)
	}
	if !sub.IsActive {
		return domain.ErrNotSubscribed
	}
	if err := s.subscriberRepo.SetActive(ctx, phoneNumber, eventID, false); err != nil {
		return fmt.Errorf("deactivate subscription: %w", err)
	}
	return nil
}

func (s *subscriptionService) ListActiveSubscribers(ctx context.Context, eventID string) ([]*domain.Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	subs, err := s.subscriberRepo.ListActiveByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	if subs == nil {
		subs = []*domain.Subscriber{}
	}
	return subs, nil
}

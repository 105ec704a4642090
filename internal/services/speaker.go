package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbot/internal/domain"
)

type speakerService struct {
	speakerRepo    domain.SpeakerRepository
	contextTimeout time.Duration
}

// NewSpeakerService returns a SpeakerService backed by the given repository.
func NewSpeakerService(speakerRepo domain.SpeakerRepository, timeout time.Duration) domain.SpeakerService {
	return &speakerService{
		speakerRepo:    speakerRepo,
		contextTimeout: timeout,
	}
}

func (s *speakerService) CreateSpeaker(ctx context.Context, speaker *domain.Speaker) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if speaker.Name == "" || speaker.Topic == "" {
		return domain.ErrInvalidInput
	}

	speaker.CreatedAt = time.Now()
	speaker.UpdatedAt = time.Now()

	if err := s.speakerRepo.Create(ctx, speaker); err != nil {
		return fmt.Errorf("create speaker: %w", err)
	}
	return nil
}

func (s *speakerService) ListSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speakers, err := s.speakerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}

func (s *speakerService) UpdateSpeaker(ctx context.Context, speakerID string, name, topic, bio *string) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if name != nil && *name == "" {
		return nil, domain.ErrInvalidInput
	}
	if topic != nil && *topic == "" {
		return nil, domain.ErrInvalidInput
	}

	updated, err := s.speakerRepo.Update(ctx, speakerID, name, topic, bio)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	return updated, nil
}

func (s *speakerService) DeleteSpeaker(ctx context.Context, speakerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.speakerRepo.Delete(ctx, speakerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete speaker: %w", err)
	}
	return nil
}

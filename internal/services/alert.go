package services

import (
	"context"
	"fmt"
	"log"

	"eventbot/internal/domain"
)

type alertService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	to       string
}

// NewAlertService returns an AlertService that emails the organizer address.
func NewAlertService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, to string) domain.AlertService {
	return &alertService{mailer: mailer, renderer: renderer, to: to}
}

// SendMissedReminderAlert sends the "missed_reminder" template to the organizer.
func (s *alertService) SendMissedReminderAlert(ctx context.Context, data *domain.MissedReminderEmailData) error {
	if data == nil {
		return fmt.Errorf("missed reminder data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("missed_reminder", data)
	if err != nil {
		return fmt.Errorf("failed to render missed_reminder template: %w", err)
	}
	if err := s.mailer.Send(s.to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send missed reminder alert: %w", err)
	}
	log.Printf("[EMAIL] Missed reminder alert sent to %s", s.to)
	return nil
}

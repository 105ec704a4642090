package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// MissedReminderEmailData holds data for the missed-reminder alert email.
type MissedReminderEmailData struct {
	EventName   string
	SpeakerName string
	Topic       string
	StartTime   string
}

// AlertService notifies the organizer about operational incidents.
type AlertService interface {
	SendMissedReminderAlert(ctx context.Context, data *MissedReminderEmailData) error
}

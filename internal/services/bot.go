package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventbot/internal/domain"
)

// Bot reply texts. The bot speaks Spanish; texts are fixed so replies stay
// byte-identical across restarts.
const (
	menuMessage = `¡Hola! 👋 Soy CarlBot, tu asistente para eventos académicos.

*Menú de opciones:*

1️⃣ Ver información del evento
2️⃣ Ver horario de ponencias
3️⃣ Ver ubicación del evento
4️⃣ Suscribirse al evento
5️⃣ Desuscribirse del evento

*Responde con el número de la opción que deseas.*`

	unknownCommandMessage = `No entiendo tu mensaje. Escribe "menu" para ver las opciones disponibles.`

	noActiveEventsInfoMessage      = "No hay eventos activos en este momento. ¡Mantente atento a nuestras actualizaciones! 📅"
	noActiveEventsMessage          = "No hay eventos activos en este momento."
	noActiveEventsSubscribeMessage = "No hay eventos activos para suscribirse en este momento."
	noActiveEventsShortMessage     = "No hay eventos activos."
	noSchedulesMessage             = "Aún no hay ponencias programadas para este evento. ¡Mantente atento! 📋"

	eventMissingMessage      = "El evento no existe."
	alreadySubscribedMessage = "Ya estás suscrito a este evento."
	unsubscribedMessage      = "Te has desuscrito del evento exitosamente."
	notSubscribedMessage     = "No estás suscrito a este evento o el evento no existe."
)

type botService struct {
	eventRepo      domain.EventRepository
	scheduleRepo   domain.ScheduleRepository
	subscriptions  domain.SubscriptionService
	contextTimeout time.Duration
}

// NewBotService returns the BotService that routes inbound chat commands.
func NewBotService(eventRepo domain.EventRepository, scheduleRepo domain.ScheduleRepository, subscriptions domain.SubscriptionService, timeout time.Duration) domain.BotService {
	return &botService{
		eventRepo:      eventRepo,
		scheduleRepo:   scheduleRepo,
		subscriptions:  subscriptions,
		contextTimeout: timeout,
	}
}

// selectPrimaryEvent picks the event the bot acts on: the first active event in
// insertion order. Storage permits several active events; this policy keeps the
// choice in one place so it can later become per-subscriber selection.
func selectPrimaryEvent(events []*domain.Event) *domain.Event {
	if len(events) == 0 {
		return nil
	}
	return events[0]
}

// ProcessMessage is stateless: each message is routed on its own, with no
// conversation memory.
func (s *botService) ProcessMessage(ctx context.Context, fromPhone, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	switch strings.ToLower(strings.TrimSpace(text)) {
	case "hola", "hi", "menu":
		return menuMessage, nil
	case "1":
		return s.eventInfo(ctx)
	case "2":
		return s.eventSchedule(ctx)
	case "3":
		return s.eventLocation(ctx)
	case "4":
		return s.subscribe(ctx, fromPhone)
	case "5":
		return s.unsubscribe(ctx, fromPhone)
	default:
		return unknownCommandMessage, nil
	}
}

func (s *botService) primaryEvent(ctx context.Context) (*domain.Event, error) {
	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	return selectPrimaryEvent(events), nil
}

func (s *botService) eventInfo(ctx context.Context) (string, error) {
	event, err := s.primaryEvent(ctx)
	if err != nil {
		return "", err
	}
	if event == nil {
		return noActiveEventsInfoMessage, nil
	}

	var b strings.Builder
	b.WriteString("📅 *Información del Evento*\n\n")
	fmt.Fprintf(&b, "*Nombre:* %s\n", event.Name)
	fmt.Fprintf(&b, "*Fecha:* %s\n", formatDateES(event.Date))
	fmt.Fprintf(&b, "*Lugar:* %s\n", event.Location)
	if event.Description != nil && *event.Description != "" {
		fmt.Fprintf(&b, "*Descripción:* %s\n", *event.Description)
	}
	b.WriteString("\n¡Esperamos verte ahí! 🎉")
	return b.String(), nil
}

func (s *botService) eventSchedule(ctx context.Context) (string, error) {
	event, err := s.primaryEvent(ctx)
	if err != nil {
		return "", err
	}
	if event == nil {
		return noActiveEventsMessage, nil
	}

	details, err := s.scheduleRepo.ListDetailsByEventID(ctx, event.ID)
	if err != nil {
		return "", fmt.Errorf("list schedules: %w", err)
	}
	if len(details) == 0 {
		return noSchedulesMessage, nil
	}

	var b strings.Builder
	b.WriteString("📋 *Horario de Ponencias*\n\n")
	for i, d := range details {
		fmt.Fprintf(&b, "%d. *%s - %s*\n", i+1,
			d.Schedule.StartTime.Format("15:04"), d.Schedule.EndTime.Format("15:04"))
		fmt.Fprintf(&b, "   👨‍🏫 %s\n", d.Speaker.Name)
		fmt.Fprintf(&b, "   📝 %s\n\n", d.Speaker.Topic)
	}
	return b.String(), nil
}

func (s *botService) eventLocation(ctx context.Context) (string, error) {
	event, err := s.primaryEvent(ctx)
	if err != nil {
		return "", err
	}
	if event == nil {
		return noActiveEventsMessage, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📍 *Ubicación del Evento*\n\n*%s*\n📌 %s", event.Name, event.Location)
	if event.MapsLink != nil && *event.MapsLink != "" {
		fmt.Fprintf(&b, "\n\n🗺️ Ver en Google Maps: %s", *event.MapsLink)
	}
	return b.String(), nil
}

func (s *botService) subscribe(ctx context.Context, fromPhone string) (string, error) {
	event, err := s.primaryEvent(ctx)
	if err != nil {
		return "", err
	}
	if event == nil {
		return noActiveEventsSubscribeMessage, nil
	}

	subscribed, err := s.subscriptions.Subscribe(ctx, fromPhone, event.ID)
	switch {
	case err == nil:
		return fmt.Sprintf("¡Te has suscrito exitosamente al evento \"%s\"! Recibirás recordatorios antes de cada ponencia.", subscribed.Name), nil
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return alreadySubscribedMessage, nil
	case errors.Is(err, domain.ErrNotFound):
		return eventMissingMessage, nil
	default:
		return "", fmt.Errorf("subscribe: %w", err)
	}
}

func (s *botService) unsubscribe(ctx context.Context, fromPhone string) (string, error) {
	event, err := s.primaryEvent(ctx)
	if err != nil {
		return "", err
	}
	if event == nil {
		return noActiveEventsShortMessage, nil
	}

	err = s.subscriptions.Unsubscribe(ctx, fromPhone, event.ID)
	switch {
	case err == nil:
		return unsubscribedMessage, nil
	case errors.Is(err, domain.ErrNotSubscribed):
		return notSubscribedMessage, nil
	default:
		return "", fmt.Errorf("unsubscribe: %w", err)
	}
}

var spanishWeekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var spanishMonths = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}

// formatDateES renders a date the way the bot announces it, e.g.
// "viernes, 14 de marzo de 2025".
func formatDateES(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1], t.Year())
}

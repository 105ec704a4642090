package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventbot/internal/delivery/http/controllers"
	"eventbot/internal/delivery/http/middleware"
	"eventbot/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Admin routes require a Bearer token; /auth/login and the gateway
// webhook /bot/incoming are open.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	speakerController *controllers.SpeakerController,
	scheduleController *controllers.ScheduleController,
	subscriberController *controllers.SubscriberController,
	dashboardController *controllers.DashboardController,
	botController *controllers.BotController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", requireAuth(eventController.ListEvents))
	mux.HandleFunc("GET /events/active", requireAuth(eventController.ListActiveEvents))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(eventController.GetEventByID))
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/subscribers", requireAuth(eventController.ListEventSubscribers))
	mux.HandleFunc("GET /events/{eventID}/schedules", requireAuth(scheduleController.ListEventSchedules))

	// Speakers
	mux.HandleFunc("POST /speakers", requireAuth(speakerController.CreateSpeaker))
	mux.HandleFunc("GET /speakers", requireAuth(speakerController.ListSpeakers))
	mux.HandleFunc("PATCH /speakers/{speakerID}", requireAuth(speakerController.UpdateSpeaker))
	mux.HandleFunc("DELETE /speakers/{speakerID}", requireAuth(speakerController.DeleteSpeaker))

	// Schedules
	mux.HandleFunc("POST /schedules", requireAuth(scheduleController.CreateSchedule))
	mux.HandleFunc("GET /schedules/upcoming", requireAuth(scheduleController.ListUpcomingSchedules))
	mux.HandleFunc("DELETE /schedules/{scheduleID}", requireAuth(scheduleController.DeleteSchedule))

	// Subscribers
	mux.HandleFunc("POST /subscribers/subscribe", requireAuth(subscriberController.Subscribe))
	mux.HandleFunc("POST /subscribers/unsubscribe", requireAuth(subscriberController.Unsubscribe))

	// Dashboard
	mux.HandleFunc("GET /dashboard", requireAuth(dashboardController.GetDashboard))

	// Bot
	mux.HandleFunc("GET /bot/status", requireAuth(botController.Status))
	mux.HandleFunc("PUT /bot/phone", requireAuth(botController.UpdatePhone))
	mux.HandleFunc("POST /bot/test-message", requireAuth(botController.SendTestMessage))
	mux.HandleFunc("POST /bot/incoming", botController.HandleIncoming)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

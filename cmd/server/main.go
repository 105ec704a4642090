package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventbot/config"
	"eventbot/internal/adapters/auth"
	"eventbot/internal/adapters/email"
	"eventbot/internal/adapters/whatsapp"
	delivery "eventbot/internal/delivery/http"
	"eventbot/internal/delivery/http/controllers"
	"eventbot/internal/delivery/http/middleware"
	"eventbot/internal/domain"
	"eventbot/internal/repository/postgres"
	"eventbot/internal/scheduler"
	"eventbot/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Event Reminder Bot API
// @version 1.0
// @description Admin API for the academic event WhatsApp reminder bot.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	subscriberRepo := postgres.NewSubscriberRepository(db)
	settingsRepo := postgres.NewBotSettingsRepository(db)

	// Adapters
	messenger, err := whatsapp.NewMessenger(whatsapp.Config{
		Provider: cfg.WhatsApp.Provider,
		BaseURL:  cfg.WhatsApp.BaseURL,
		APIToken: cfg.WhatsApp.APIToken,
		Timeout:  cfg.WhatsApp.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize messenger", "err", err)
		os.Exit(1)
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to initialize mailer", "err", err)
		os.Exit(1)
	}
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(0)

	// Services
	var alerts domain.AlertService
	if cfg.Email.AlertAddress != "" {
		alerts = services.NewAlertService(mailer, email.NewTemplateRenderer(), cfg.Email.AlertAddress)
	}
	subscriptionService := services.NewSubscriptionService(subscriberRepo, eventRepo, serviceTimeout)
	eventService := services.NewEventService(eventRepo, serviceTimeout)
	speakerService := services.NewSpeakerService(speakerRepo, serviceTimeout)
	scheduleService := services.NewScheduleService(scheduleRepo, eventRepo, speakerRepo, serviceTimeout)
	botService := services.NewBotService(eventRepo, scheduleRepo, subscriptionService, serviceTimeout)
	authService := services.NewAuthService(settingsRepo, hasher, issuer, serviceTimeout)
	dashboardService := services.NewDashboardService(eventRepo, subscriberRepo, scheduleRepo, serviceTimeout)
	reminderService := services.NewReminderService(scheduleRepo, subscriptionService, messenger, alerts, logger, cfg.ReminderLead)

	// Reminder dispatch loop
	reminderScheduler := scheduler.New(reminderService, logger, cfg.TickInterval)
	reminderScheduler.Start()

	// HTTP delivery
	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService, subscriptionService)
	speakerController := controllers.NewSpeakerController(logger, speakerService)
	scheduleController := controllers.NewScheduleController(logger, scheduleService)
	subscriberController := controllers.NewSubscriberController(logger, subscriptionService)
	dashboardController := controllers.NewDashboardController(logger, dashboardService)
	botController := controllers.NewBotController(logger, botService, messenger, settingsRepo)

	mux := delivery.NewRouter(logger, verifier, authController, eventController, speakerController, scheduleController, subscriberController, dashboardController, botController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	reminderScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}

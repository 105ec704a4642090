package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventbot/internal/delivery/http/helpers"
	"eventbot/internal/domain"
)

type BotController struct {
	Logger    *slog.Logger
	Bot       domain.BotService
	Messenger domain.Messenger
	Settings  domain.BotSettingsRepository
}

func NewBotController(logger *slog.Logger, bot domain.BotService, messenger domain.Messenger, settings domain.BotSettingsRepository) *BotController {
	return &BotController{
		Logger:    logger,
		Bot:       bot,
		Messenger: messenger,
		Settings:  settings,
	}
}

// BotStatusResponse is the data payload for GET /bot/status.
type BotStatusResponse struct {
	Connected   bool   `json:"connected"`
	PhoneNumber string `json:"phone_number"`
}

// BotStatusSuccessResponse is the success response envelope for GET /bot/status (200).
type BotStatusSuccessResponse struct {
	Data  BotStatusResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Status godoc
// @Summary Bot connection status
// @Description Reports whether the WhatsApp gateway is reachable and which phone number the bot runs on. Requires authentication.
// @Tags bot
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.BotStatusSuccessResponse "data contains connection state"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bot/status [get]
func (c *BotController) Status(w http.ResponseWriter, r *http.Request) {
	settings, err := c.Settings.GetActive(r.Context())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	resp := BotStatusResponse{Connected: c.Messenger.IsConnected(r.Context())}
	if settings != nil {
		resp.PhoneNumber = settings.PhoneNumber
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// UpdatePhoneRequest is the request body for PUT /bot/phone.
type UpdatePhoneRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// Validate implements Validator.
func (u UpdatePhoneRequest) Validate() []string {
	var errs []string
	if u.PhoneNumber == "" {
		errs = append(errs, "phone_number is required")
	}
	return errs
}

// UpdatePhoneSuccessResponse is the success response envelope for PUT /bot/phone (200).
type UpdatePhoneSuccessResponse struct {
	Data  *domain.BotSettings `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// UpdatePhone godoc
// @Summary Update the bot's phone number
// @Description Changes the phone number the bot runs on. Requires authentication.
// @Tags bot
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdatePhoneRequest true "New phone number"
// @Success 200 {object} controllers.UpdatePhoneSuccessResponse "data contains the updated settings"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bot/phone [put]
func (c *BotController) UpdatePhone(w http.ResponseWriter, r *http.Request) {
	var req UpdatePhoneRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	settings, err := c.Settings.UpdatePhoneNumber(r.Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "bot settings not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, settings)
}

// TestMessageRequest is the request body for POST /bot/test-message.
type TestMessageRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

// Validate implements Validator.
func (t TestMessageRequest) Validate() []string {
	var errs []string
	if t.PhoneNumber == "" {
		errs = append(errs, "phone_number is required")
	}
	if t.Message == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// TestMessageResponse is the data payload for POST /bot/test-message.
type TestMessageResponse struct {
	Status string `json:"status"`
}

// TestMessageSuccessResponse is the success response envelope for POST /bot/test-message (200).
type TestMessageSuccessResponse struct {
	Data  TestMessageResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SendTestMessage godoc
// @Summary Send a test WhatsApp message
// @Description Sends a one-off message through the gateway to verify delivery. Requires authentication.
// @Tags bot
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TestMessageRequest true "Recipient and message"
// @Success 200 {object} controllers.TestMessageSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bot/test-message [post]
func (c *BotController) SendTestMessage(w http.ResponseWriter, r *http.Request) {
	var req TestMessageRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Messenger.Send(r.Context(), req.PhoneNumber, req.Message); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TestMessageResponse{Status: "sent"})
}

// IncomingMessageRequest is the webhook body the WhatsApp gateway posts for each received message.
type IncomingMessageRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

// Validate implements Validator.
func (i IncomingMessageRequest) Validate() []string {
	var errs []string
	if i.PhoneNumber == "" {
		errs = append(errs, "phone_number is required")
	}
	return errs
}

// IncomingMessageResponse is the data payload for POST /bot/incoming.
type IncomingMessageResponse struct {
	Reply string `json:"reply"`
}

// IncomingMessageSuccessResponse is the success response envelope for POST /bot/incoming (200).
type IncomingMessageSuccessResponse struct {
	Data  IncomingMessageResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// HandleIncoming godoc
// @Summary WhatsApp gateway webhook
// @Description Receives an inbound message, routes it through the conversational commands, and sends the reply back to the sender.
// @Tags bot
// @Accept json
// @Produce json
// @Param body body IncomingMessageRequest true "Inbound message"
// @Success 200 {object} controllers.IncomingMessageSuccessResponse "data contains the reply text"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bot/incoming [post]
func (c *BotController) HandleIncoming(w http.ResponseWriter, r *http.Request) {
	var req IncomingMessageRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reply, err := c.Bot.ProcessMessage(r.Context(), req.PhoneNumber, req.Message)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if err := c.Messenger.Send(r.Context(), req.PhoneNumber, reply); err != nil {
		c.Logger.ErrorContext(r.Context(), "reply send failed", "path", r.URL.Path, "phone", req.PhoneNumber, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, IncomingMessageResponse{Reply: reply})
}

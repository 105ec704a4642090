package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventbot/internal/delivery/http/helpers"
	"eventbot/internal/domain"
)

// SubscriptionRequest is the request body for POST /subscribers/subscribe and
// POST /subscribers/unsubscribe.
type SubscriptionRequest struct {
	PhoneNumber string `json:"phone_number"`
	EventID     string `json:"event_id"`
}

// Validate implements Validator.
func (s SubscriptionRequest) Validate() []string {
	var errs []string
	if s.PhoneNumber == "" {
		errs = append(errs, "phone_number is required")
	}
	if s.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	return errs
}

// SubscribeResponse is the data payload for POST /subscribers/subscribe.
type SubscribeResponse struct {
	Status string        `json:"status"`
	Event  *domain.Event `json:"event"`
}

// SubscribeSuccessResponse is the success response envelope for POST /subscribers/subscribe (200).
type SubscribeSuccessResponse struct {
	Data  SubscribeResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UnsubscribeResponse is the data payload for POST /subscribers/unsubscribe.
type UnsubscribeResponse struct {
	Status string `json:"status"`
}

// UnsubscribeSuccessResponse is the success response envelope for POST /subscribers/unsubscribe (200).
type UnsubscribeSuccessResponse struct {
	Data  UnsubscribeResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type SubscriberController struct {
	Logger  *slog.Logger
	Service domain.SubscriptionService
}

func NewSubscriberController(logger *slog.Logger, svc domain.SubscriptionService) *SubscriberController {
	return &SubscriberController{Logger: logger, Service: svc}
}

// Subscribe godoc
// @Summary Subscribe a phone number to an event
// @Description Activates the (phone, event) subscription outside the chat flow. Idempotence conflicts are reported as 409. Requires authentication.
// @Tags subscribers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubscriptionRequest true "Phone number and event"
// @Success 200 {object} controllers.SubscribeSuccessResponse "data contains status and the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /subscribers/subscribe [post]
func (c *SubscriberController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscriptionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Subscribe(r.Context(), req.PhoneNumber, req.EventID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrAlreadySubscribed):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already subscribed")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SubscribeResponse{Status: "subscribed", Event: event})
}

// Unsubscribe godoc
// @Summary Unsubscribe a phone number from an event
// @Description Deactivates the (phone, event) subscription; the row is kept. Requires authentication.
// @Tags subscribers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubscriptionRequest true "Phone number and event"
// @Success 200 {object} controllers.UnsubscribeSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /subscribers/unsubscribe [post]
func (c *SubscriberController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscriptionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Unsubscribe(r.Context(), req.PhoneNumber, req.EventID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotSubscribed):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "not subscribed")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UnsubscribeResponse{Status: "unsubscribed"})
}

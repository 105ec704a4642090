package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventbot/internal/delivery/http/helpers"
	"eventbot/internal/domain"
)

// CreateScheduleRequest is the request body for POST /schedules.
type CreateScheduleRequest struct {
	EventID   string    `json:"event_id"`
	SpeakerID string    `json:"speaker_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Validate implements Validator.
func (c CreateScheduleRequest) Validate() []string {
	var errs []string
	if c.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	if c.SpeakerID == "" {
		errs = append(errs, "speaker_id is required")
	}
	if c.StartTime.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if c.EndTime.IsZero() {
		errs = append(errs, "end_time is required")
	}
	return errs
}

// CreateScheduleSuccessResponse is the success response envelope for POST /schedules (201).
type CreateScheduleSuccessResponse struct {
	Data  *domain.Schedule  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService) *ScheduleController {
	return &ScheduleController{Logger: logger, Service: svc}
}

// CreateSchedule godoc
// @Summary Create a schedule slot
// @Description Creates a talk slot for a speaker inside an event. Requires authentication.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schedule body CreateScheduleRequest true "Schedule data"
// @Success 201 {object} controllers.CreateScheduleSuccessResponse "data contains the created schedule"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules [post]
func (c *ScheduleController) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	schedule := domain.NewSchedule(req.EventID, req.SpeakerID, req.StartTime, req.EndTime, now, now)
	if err := c.Service.CreateSchedule(r.Context(), schedule); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event or speaker not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, schedule)
}

// ListSchedulesSuccessResponse is the success response envelope for GET /events/{eventID}/schedules (200).
type ListSchedulesSuccessResponse struct {
	Data  []*domain.Schedule `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListEventSchedules godoc
// @Summary List an event's schedules
// @Description Returns the event's schedule slots ordered by start time. Requires authentication.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListSchedulesSuccessResponse "data is an array of schedules"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/schedules [get]
func (c *ScheduleController) ListEventSchedules(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	schedules, err := c.Service.ListEventSchedules(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, schedules)
}

// ListUpcomingSuccessResponse is the success response envelope for GET /schedules/upcoming (200).
type ListUpcomingSuccessResponse struct {
	Data  []*domain.ScheduleDetail `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ListUpcomingSchedules godoc
// @Summary List upcoming schedules across active events
// @Description Returns schedules starting after now, with event and speaker detail, ordered by start time. Requires authentication.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListUpcomingSuccessResponse "data is an array of schedule details"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/upcoming [get]
func (c *ScheduleController) ListUpcomingSchedules(w http.ResponseWriter, r *http.Request) {
	details, err := c.Service.ListUpcomingSchedules(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// DeleteScheduleResponse is the data payload for DELETE /schedules/{scheduleID} (200).
type DeleteScheduleResponse struct {
	Status string `json:"status"`
}

// DeleteScheduleSuccessResponse is the success response envelope for DELETE /schedules/{scheduleID} (200).
type DeleteScheduleSuccessResponse struct {
	Data  DeleteScheduleResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// DeleteSchedule godoc
// @Summary Delete a schedule slot
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param scheduleID path string true "Schedule ID"
// @Success 200 {object} controllers.DeleteScheduleSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/{scheduleID} [delete]
func (c *ScheduleController) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := r.PathValue("scheduleID")
	if scheduleID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing scheduleID")
		return
	}
	if err := c.Service.DeleteSchedule(r.Context(), scheduleID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "schedule not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteScheduleResponse{Status: "deleted"})
}

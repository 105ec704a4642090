package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventbot/internal/delivery/http/helpers"
	"eventbot/internal/domain"
)

// CreateSpeakerRequest is the request body for POST /speakers.
type CreateSpeakerRequest struct {
	Name  string  `json:"name"`
	Topic string  `json:"topic"`
	Bio   *string `json:"bio"`
}

// Validate implements Validator.
func (c CreateSpeakerRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Topic == "" {
		errs = append(errs, "topic is required")
	}
	return errs
}

// CreateSpeakerSuccessResponse is the success response envelope for POST /speakers (201).
type CreateSpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{Logger: logger, Service: svc}
}

// CreateSpeaker godoc
// @Summary Create a speaker
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speaker body CreateSpeakerRequest true "Speaker data"
// @Success 201 {object} controllers.CreateSpeakerSuccessResponse "data contains the created speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [post]
func (c *SpeakerController) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	var req CreateSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	speaker := domain.NewSpeaker(req.Name, req.Topic, now, now)
	speaker.Bio = req.Bio
	if err := c.Service.CreateSpeaker(r.Context(), speaker); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// ListSpeakersSuccessResponse is the success response envelope for GET /speakers (200).
type ListSpeakersSuccessResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSpeakers godoc
// @Summary List all speakers
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSpeakersSuccessResponse "data is an array of speakers"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [get]
func (c *SpeakerController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Service.ListSpeakers(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// UpdateSpeakerRequest is the request body for PATCH /speakers/{speakerID}. All fields optional.
type UpdateSpeakerRequest struct {
	Name  *string `json:"name"`
	Topic *string `json:"topic"`
	Bio   *string `json:"bio"`
}

// Validate implements Validator.
func (u UpdateSpeakerRequest) Validate() []string {
	var errs []string
	if u.Name != nil && *u.Name == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Topic != nil && *u.Topic == "" {
		errs = append(errs, "topic cannot be empty")
	}
	return errs
}

// UpdateSpeakerSuccessResponse is the success response envelope for PATCH /speakers/{speakerID} (200).
type UpdateSpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateSpeaker godoc
// @Summary Update speaker details
// @Description Updates speaker fields. Omitted fields are unchanged. Requires authentication.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID"
// @Param body body UpdateSpeakerRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UpdateSpeakerSuccessResponse "data contains the updated speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{speakerID} [patch]
func (c *SpeakerController) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID := r.PathValue("speakerID")
	if speakerID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speakerID")
		return
	}
	var req UpdateSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := c.Service.UpdateSpeaker(r.Context(), speakerID, req.Name, req.Topic, req.Bio)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "speaker not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// DeleteSpeakerResponse is the data payload for DELETE /speakers/{speakerID} (200).
type DeleteSpeakerResponse struct {
	Status string `json:"status"`
}

// DeleteSpeakerSuccessResponse is the success response envelope for DELETE /speakers/{speakerID} (200).
type DeleteSpeakerSuccessResponse struct {
	Data  DeleteSpeakerResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// DeleteSpeaker godoc
// @Summary Delete a speaker
// @Description Deletes a speaker and their schedules. Requires authentication.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID"
// @Success 200 {object} controllers.DeleteSpeakerSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{speakerID} [delete]
func (c *SpeakerController) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID := r.PathValue("speakerID")
	if speakerID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speakerID")
		return
	}
	if err := c.Service.DeleteSpeaker(r.Context(), speakerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "speaker not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteSpeakerResponse{Status: "deleted"})
}

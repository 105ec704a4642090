package controllers

import (
	"log/slog"
	"net/http"

	"eventbot/internal/delivery/http/helpers"
	"eventbot/internal/domain"
)

// DashboardSuccessResponse is the success response envelope for GET /dashboard (200).
type DashboardSuccessResponse struct {
	Data  *domain.Dashboard `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type DashboardController struct {
	Logger  *slog.Logger
	Service domain.DashboardService
}

func NewDashboardController(logger *slog.Logger, svc domain.DashboardService) *DashboardController {
	return &DashboardController{Logger: logger, Service: svc}
}

// GetDashboard godoc
// @Summary Admin dashboard overview
// @Description Returns active events with their subscriber counts and the upcoming schedule slots. Requires authentication.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.DashboardSuccessResponse "data contains the dashboard"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := c.Service.GetDashboard(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dashboard)
}

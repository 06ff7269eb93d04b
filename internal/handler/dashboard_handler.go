package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/middleware"
	"github.com/stemsi/gamesurvey-backend/internal/response"
	"github.com/stemsi/gamesurvey-backend/internal/service"
)

// DashboardHandler serves the logged-in account's own page.
type DashboardHandler struct {
	surveyService *service.SurveyService
	log           zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(surveyService *service.SurveyService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		surveyService: surveyService,
		log:           log.With().Str("component", "dashboard_handler").Logger(),
	}
}

// GetDashboard godoc
// GET /dashboard
// Returns the account profile and its results, newest first.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	account := middleware.GetAccount(c)
	if account == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	results, err := h.surveyService.Results(c.Request.Context(), account.ID)
	if err != nil {
		h.log.Error().Err(err).Int("account_id", account.ID).Msg("Failed to list results")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"account":              account,
		"results":              results,
		"can_view_admin_panel": service.CanViewAdminPanel(account),
	})
}

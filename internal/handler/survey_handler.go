package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/middleware"
	"github.com/stemsi/gamesurvey-backend/internal/model"
	"github.com/stemsi/gamesurvey-backend/internal/response"
	"github.com/stemsi/gamesurvey-backend/internal/service"
	"github.com/stemsi/gamesurvey-backend/internal/validator"
)

// SurveyHandler drives the setup and question pages.
type SurveyHandler struct {
	surveyService *service.SurveyService
	log           zerolog.Logger
}

// NewSurveyHandler creates a new SurveyHandler.
func NewSurveyHandler(surveyService *service.SurveyService, log zerolog.Logger) *SurveyHandler {
	return &SurveyHandler{
		surveyService: surveyService,
		log:           log.With().Str("component", "survey_handler").Logger(),
	}
}

// SetupForm godoc
// GET /setup_survey
// Lists the gaming-time categories a survey can be started with.
func (h *SurveyHandler) SetupForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"action":       "/setup_survey",
		"gaming_times": model.AllGamingTimes,
	})
}

// Setup godoc
// POST /setup_survey
// Picks the tier from gaming_time and starts a fresh survey for the session.
// A missing gaming_time, or no body at all, means low_time.
func (h *SurveyHandler) Setup(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SetupSurveyRequest
	if fields := validator.BindOptional(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.surveyService.Setup(c.Request.Context(), claims.SessionID(), req.GamingTime); err != nil {
		h.log.Error().Err(err).Int("account_id", claims.AccountID).Msg("Failed to start survey")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Redirect(c, "/survey", nil)
}

// Show godoc
// GET /survey
// Returns the current question with its position, the tier and the start time.
func (h *SurveyHandler) Show(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.surveyService.CurrentQuestion(c.Request.Context(), claims.SessionID())
	if err != nil {
		h.handleFlowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Submit godoc
// POST /survey
// Records the option for the current question. Finishing the last question
// stores the result and sends the client to the dashboard.
func (h *SurveyHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	res, err := h.surveyService.SubmitAnswer(c.Request.Context(), claims.SessionID(), claims.AccountID, readOption(c))
	if err != nil {
		h.handleFlowError(c, err)
		return
	}

	if res.Completed() {
		msg := fmt.Sprintf("Survey Complete! Score: %d/%d", res.Result.Score, res.Result.MaxScore)
		response.Redirect(c, "/dashboard", response.NewNotice(response.NoticeSuccess, msg))
		return
	}

	response.Redirect(c, "/survey", nil)
}

func (h *SurveyHandler) handleFlowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoSurvey):
		response.Redirect(c, "/setup_survey", response.NewNotice(response.NoticeInfo, "Choose your gaming time to start a survey."))
	case errors.Is(err, service.ErrSurveyComplete):
		response.Redirect(c, "/dashboard", nil)
	default:
		h.log.Error().Err(err).Msg("Survey flow failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// readOption returns the submitted option as raw text. JSON bodies may send
// it as a number or a string; anything else reads as a form field. Parsing and
// normalizing bad input is left to the survey engine.
func readOption(c *gin.Context) string {
	if c.ContentType() != binding.MIMEJSON {
		return c.PostForm("option")
	}

	var body struct {
		Option json.RawMessage `json:"option"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.Option) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Option, &s); err == nil {
		return s
	}
	raw := strings.TrimSpace(string(body.Option))
	if raw == "null" {
		return ""
	}
	return raw
}

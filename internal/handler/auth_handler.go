package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/config"
	"github.com/stemsi/gamesurvey-backend/internal/middleware"
	"github.com/stemsi/gamesurvey-backend/internal/model"
	"github.com/stemsi/gamesurvey-backend/internal/response"
	"github.com/stemsi/gamesurvey-backend/internal/service"
	"github.com/stemsi/gamesurvey-backend/internal/validator"
)

// formField describes one input of a form-backed page.
type formField struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Required  bool   `json:"required"`
	MaxLength int    `json:"max_length,omitempty"`
}

var credentialFields = []formField{
	{Name: "username", Type: "text", Required: true, MaxLength: 150},
	{Name: "password", Type: "password", Required: true, MaxLength: service.MaxPasswordBytes},
}

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService    *service.AuthService
	accountService *service.AccountService
	cfg            *config.Config
	log            zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	accountService *service.AccountService,
	cfg *config.Config,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
		cfg:            cfg,
		log:            log.With().Str("component", "auth_handler").Logger(),
	}
}

// Index godoc
// GET /
// Sends logged-in visitors to their dashboard and everyone else to login.
func (h *AuthHandler) Index(c *gin.Context) {
	if middleware.GetAccount(c) != nil {
		response.Redirect(c, "/dashboard", nil)
		return
	}
	response.Redirect(c, "/login", nil)
}

// RegisterForm godoc
// GET /register
// Describes the registration form.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"action": "/register",
		"fields": credentialFields,
	})
}

// Register godoc
// POST /register
// Creates an account. The first account ever registered becomes super-admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.accountService.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Redirect(c, "/register", response.NewNotice(response.NoticeDanger, "Username exists."))
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
				"password": "password must be at most 72 bytes",
			})
			return
		}
		h.log.Error().Err(err).Msg("Registration failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Redirect(c, "/login", nil)
}

// LoginForm godoc
// GET /login
// Describes the login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"action": "/login",
		"fields": credentialFields,
	})
}

// Login godoc
// POST /login
// Verifies credentials, opens a session and returns its token. The token is
// also set as the session cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()
	account, err := h.accountService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		h.log.Error().Err(err).Msg("Login lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, claims, err := h.authService.IssueSession(ctx, account.ID)
	if err != nil {
		h.log.Error().Err(err).Int("account_id", account.ID).Msg("Failed to issue session")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	middleware.SetSessionCookie(c, token, h.cfg.SessionTTL, h.cfg.CookieSecure)
	response.Success(c, http.StatusOK, model.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Account:   *account,
	})
}

// Logout godoc
// GET /logout
// Ends the session, discarding any survey in progress.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.EndSession(c.Request.Context(), claims.SessionID()); err != nil {
		h.log.Error().Err(err).Str("session_id", claims.SessionID()).Msg("Failed to end session")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	middleware.ClearSessionCookie(c, h.cfg.CookieSecure)
	response.Redirect(c, "/login", nil)
}

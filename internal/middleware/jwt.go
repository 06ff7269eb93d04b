package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/gamesurvey-backend/internal/model"
	"github.com/stemsi/gamesurvey-backend/internal/repository"
	"github.com/stemsi/gamesurvey-backend/internal/response"
	"github.com/stemsi/gamesurvey-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
	// ContextKeyAccount is the Gin context key for the logged-in account.
	ContextKeyAccount = "account"
)

var errTokenMissing = errors.New("authorization header, session cookie or token query required")

// storeError marks failures of the session or account store, as opposed to a
// bad token.
type storeError struct{ err error }

func (e *storeError) Error() string { return e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }

// RequireAccount validates the session token, checks the server-side session
// is still alive and loads the account behind it.
func RequireAccount(authService *service.AuthService, accountService *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, account, err := authenticate(c, authService, accountService)
		if err != nil {
			abortAuth(c, err)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyAccount, account)
		c.Next()
	}
}

// OptionalAccount behaves like RequireAccount but lets anonymous requests
// through with no account in the context.
func OptionalAccount(authService *service.AuthService, accountService *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, account, err := authenticate(c, authService, accountService)
		if err == nil {
			c.Set(ContextKeyClaims, claims)
			c.Set(ContextKeyAccount, account)
		}
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetAccount retrieves the logged-in account from the Gin context.
func GetAccount(c *gin.Context) *model.Account {
	val, exists := c.Get(ContextKeyAccount)
	if !exists {
		return nil
	}
	account, ok := val.(*model.Account)
	if !ok {
		return nil
	}
	return account
}

func authenticate(c *gin.Context, authService *service.AuthService, accountService *service.AccountService) (*service.Claims, *model.Account, error) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return nil, nil, errTokenMissing
	}

	claims, err := authService.ValidateToken(tokenStr)
	if err != nil {
		return nil, nil, err
	}

	ctx := c.Request.Context()
	if err := authService.ValidateSession(ctx, claims); err != nil {
		if errors.Is(err, service.ErrSessionInvalidated) {
			return nil, nil, err
		}
		return nil, nil, &storeError{err}
	}

	account, err := accountService.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, service.ErrSessionInvalidated
		}
		return nil, nil, &storeError{fmt.Errorf("load account: %w", err)}
	}

	return claims, account, nil
}

func abortAuth(c *gin.Context, err error) {
	var se *storeError
	switch {
	case errors.Is(err, errTokenMissing):
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
	case errors.Is(err, service.ErrSessionInvalidated):
		response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
	case errors.As(err, &se):
		_ = c.Error(err)
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	default:
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
	}
}

// extractToken looks at the Authorization header, then the session cookie,
// then the token query parameter (browsers cannot set headers on WebSocket upgrades).
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	return c.Query("token")
}

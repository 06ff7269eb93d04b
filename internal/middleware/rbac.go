package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/stemsi/gamesurvey-backend/internal/response"
	"github.com/stemsi/gamesurvey-backend/internal/service"
)

// RequireAdmin lets admins through and sends everyone else back to their
// dashboard. Must run after RequireAccount.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service.CanViewAdminPanel(GetAccount(c)) {
			response.AbortRedirect(c, "/dashboard", nil)
			return
		}
		c.Next()
	}
}

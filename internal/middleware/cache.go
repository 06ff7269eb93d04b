package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoStore marks responses as private to the caller. Dashboards and survey
// pages are per-session and must not be cached by intermediaries.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

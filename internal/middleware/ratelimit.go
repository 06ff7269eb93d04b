package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/config"
	"github.com/stemsi/gamesurvey-backend/internal/response"
)

// Counter increments a windowed counter and returns its new value.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter is a per-IP fixed-window limiter backed by a shared counter,
// so every server instance sees the same budget.
type RateLimiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewRateLimiter allows limit requests per window per client IP.
// A limit of zero or less disables limiting.
func NewRateLimiter(counter Counter, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		limit:   int64(limit),
		window:  window,
		now:     time.Now,
		log:     log.With().Str("component", "rate_limiter").Logger(),
	}
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		bucket := rl.now().UnixNano() / int64(rl.window)
		key := config.CacheKey.AuthRateLimitKey(c.ClientIP(), bucket)

		n, err := rl.counter.Incr(c.Request.Context(), key, rl.window)
		if err != nil {
			// Fail open.
			rl.log.Warn().Err(err).Str("key", key).Msg("Rate limit counter unavailable")
			c.Next()
			return
		}

		if n > rl.limit {
			c.Header("Retry-After", rl.retryAfter(bucket))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) retryAfter(bucket int64) string {
	end := time.Unix(0, (bucket+1)*int64(rl.window))
	secs := int(end.Sub(rl.now()).Seconds()) + 1
	return strconv.Itoa(secs)
}

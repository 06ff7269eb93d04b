package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("AUTH_RATE_LIMIT", "")

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v, want 12h", cfg.SessionTTL)
	}
	if cfg.AuthRateLimit != 30 {
		t.Errorf("AuthRateLimit = %d, want 30", cfg.AuthRateLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v, want 2h", cfg.SessionTTL)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure = false, want true")
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want fallback 10", cfg.BcryptCost)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "http://a.test" || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := CacheKey.SessionKey("abc"); got != "session:abc" {
		t.Errorf("SessionKey = %q", got)
	}
	if got := CacheKey.SurveyProgressKey("abc"); got != "session:abc:survey_progress" {
		t.Errorf("SurveyProgressKey = %q", got)
	}
	if got := CacheKey.AuthRateLimitKey("10.0.0.1", 42); got != "ratelimit:auth:10.0.0.1:42" {
		t.Errorf("AuthRateLimitKey = %q", got)
	}
}

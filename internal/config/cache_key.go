package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key holding the account id bound to a session.
func (r *CacheKeyStruct) SessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// SurveyProgressKey returns the cache key for the in-flight survey of a session.
func (r *CacheKeyStruct) SurveyProgressKey(sessionID string) string {
	return fmt.Sprintf("session:%s:survey_progress", sessionID)
}

// AuthRateLimitKey returns the fixed-window counter key for an IP on the auth routes.
func (r *CacheKeyStruct) AuthRateLimitKey(ip string, window int64) string {
	return fmt.Sprintf("ratelimit:auth:%s:%d", ip, window)
}

// ResultFeedChannel returns the Redis PubSub channel name for newly persisted results.
func (r *CacheKeyStruct) ResultFeedChannel() string {
	return "results:feed"
}

var CacheKey = NewCacheKeyStruct()

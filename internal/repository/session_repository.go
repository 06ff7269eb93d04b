package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/gamesurvey-backend/internal/config"
)

// SessionRepository binds session ids to account ids in Redis.
type SessionRepository struct {
	rdb *redis.Client
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

// Create stores a session that expires after ttl.
func (r *SessionRepository) Create(ctx context.Context, sessionID string, accountID int, ttl time.Duration) error {
	return r.rdb.Set(ctx, config.CacheKey.SessionKey(sessionID), accountID, ttl).Err()
}

// AccountID returns the account bound to a session, or ErrNotFound.
func (r *SessionRepository) AccountID(ctx context.Context, sessionID string) (int, error) {
	val, err := r.rdb.Get(ctx, config.CacheKey.SessionKey(sessionID)).Result()
	if err != nil {
		return 0, translate(err)
	}
	return strconv.Atoi(val)
}

// Delete removes the session together with any survey it was holding.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx,
		config.CacheKey.SessionKey(sessionID),
		config.CacheKey.SurveyProgressKey(sessionID),
	).Err()
}

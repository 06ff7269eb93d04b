package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/gamesurvey-backend/internal/config"
	"github.com/stemsi/gamesurvey-backend/internal/model"
)

// ProgressRepository keeps in-flight survey progress in Redis as JSON,
// keyed by session id.
type ProgressRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProgressRepository creates a new ProgressRepository. Progress keys expire
// after ttl, which should match the session lifetime.
func NewProgressRepository(rdb *redis.Client, ttl time.Duration) *ProgressRepository {
	return &ProgressRepository{rdb: rdb, ttl: ttl}
}

// Get loads the progress of a session, or ErrNotFound.
func (r *ProgressRepository) Get(ctx context.Context, sessionID string) (*model.SurveyProgress, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.SurveyProgressKey(sessionID)).Bytes()
	if err != nil {
		return nil, translate(err)
	}

	var p model.SurveyProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode survey progress: %w", err)
	}
	return &p, nil
}

// Save overwrites the progress of a session.
func (r *ProgressRepository) Save(ctx context.Context, sessionID string, p *model.SurveyProgress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode survey progress: %w", err)
	}
	return r.rdb.Set(ctx, config.CacheKey.SurveyProgressKey(sessionID), raw, r.ttl).Err()
}

// Delete discards the progress of a session.
func (r *ProgressRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, config.CacheKey.SurveyProgressKey(sessionID)).Err()
}

package repository

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/gamesurvey-backend/internal/config"
	"github.com/stemsi/gamesurvey-backend/internal/model"
)

// ResultFeed broadcasts newly persisted results over Redis PubSub so every
// server instance can push them to connected admin panels.
type ResultFeed struct {
	rdb *redis.Client
}

// NewResultFeed creates a new ResultFeed.
func NewResultFeed(rdb *redis.Client) *ResultFeed {
	return &ResultFeed{rdb: rdb}
}

// Publish announces a result on the feed channel.
func (f *ResultFeed) Publish(ctx context.Context, res *model.Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return f.rdb.Publish(ctx, config.CacheKey.ResultFeedChannel(), raw).Err()
}

// Listen subscribes to the feed channel and delivers decoded results until
// ctx is cancelled. The returned channel is closed when the subscription ends.
func (f *ResultFeed) Listen(ctx context.Context) (<-chan model.Result, error) {
	pubsub := f.rdb.Subscribe(ctx, config.CacheKey.ResultFeedChannel())
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan model.Result, 16)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var res model.Result
				if err := json.Unmarshal([]byte(msg.Payload), &res); err != nil {
					continue
				}
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

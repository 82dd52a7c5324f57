package quota

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type InterfaceRepository interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type Repository struct {
	Client *redis.Client
}

func NewQuotaRepository(client *redis.Client) *Repository {
	return &Repository{Client: client}
}

// Increment counts one hit on key and returns the new count with the time left
// in the current window. The window starts on the first hit.
func (r *Repository) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	left := ttl.Val()
	if left < 0 {
		if err := r.Client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		left = window
	}
	return incr.Val(), left, nil
}

package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisStore shares counters between server instances. Each window gets its
// own key that expires with the window.
type RedisStore struct {
	client rueidis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(client rueidis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (r *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	windowKey := r.windowKey(key, window)

	count, err := r.client.Do(ctx, r.client.B().Incr().Key(windowKey).Build()).AsInt64()
	if err != nil {
		return false, err
	}

	if count == 1 {
		expire := r.client.B().Pexpire().Key(windowKey).Milliseconds(window.Milliseconds()).Build()
		if err := r.client.Do(ctx, expire).Error(); err != nil {
			return false, err
		}
	}

	return count <= int64(limit), nil
}

func (r *RedisStore) windowKey(key string, window time.Duration) string {
	slot := r.now().UnixMilli() / window.Milliseconds()
	return fmt.Sprintf("%s:%s:%d", r.prefix, key, slot)
}

package gate

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
)

const retryInterval = 250 * time.Millisecond

// RedisGate coordinates store mutations across instances with a Redis lock.
type RedisGate struct {
	locker  *redislock.Client
	key     string
	ttl     time.Duration
	timeout time.Duration
}

// NewRedis builds a distributed gate on the given Redis client. The TTL
// bounds how long a crashed holder can keep the store locked.
func NewRedis(client *redis.Client, key string, ttl, timeout time.Duration) *RedisGate {
	return &RedisGate{
		locker:  redislock.New(client),
		key:     key,
		ttl:     ttl,
		timeout: timeout,
	}
}

// Acquire obtains the lock, retrying until the acquire timeout elapses.
func (g *RedisGate) Acquire(ctx context.Context) (Release, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	lock, err := g.locker.Obtain(acquireCtx, g.key, g.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryInterval),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.ErrLockBusy
		}
		return nil, err
	}

	return func() {
		releaseCtx, cancelRelease := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelRelease()
		// A lock lost to TTL expiry is already released.
		_ = lock.Release(releaseCtx)
	}, nil
}

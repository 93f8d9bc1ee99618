package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisRetryInterval  = 25 * time.Millisecond
	redisReleaseTimeout = 2 * time.Second
)

// releaseScript удаляет ключ только если он принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker распределенная блокировка для нескольких экземпляров сервиса.
// Ключ живет не дольше ttl, поэтому упавший владелец не блокирует слот навсегда.
type RedisLocker struct {
	client  redis.UniversalClient
	ttl     time.Duration
	timeout time.Duration
	logger  Logger
}

// NewRedisLocker создает блокировщик поверх redis клиента
func NewRedisLocker(client redis.UniversalClient, ttl, timeout time.Duration, logger Logger) *RedisLocker {
	return &RedisLocker{
		client:  client,
		ttl:     ttl,
		timeout: timeout,
		logger:  logger,
	}
}

// Acquire выполняет SET NX PX с повторами до таймаута или отмены ctx
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Unlock, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.timeout)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("lock: redis setnx %s: %w", key, err)
		}
		if ok {
			break
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(redisRetryInterval):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, token) })
	}, nil
}

func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisReleaseTimeout)
	defer cancel()

	deleted, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
	if err != nil {
		l.logger.Error("RedisLocker: failed to release %s: %v", key, err)
		return
	}
	if deleted == 0 {
		l.logger.Warn("RedisLocker: lock %s expired before release", key)
	}
}

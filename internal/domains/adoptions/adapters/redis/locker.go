package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
)

var _ ports.Locker = (*Locker)(nil)

// ErrLockLost is returned on release when the lease expired and the key was taken over.
var ErrLockLost = errors.New("lock expired before release")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a lease-based distributed lock: SET NX PX to acquire, compare-and-delete to release.
type Locker struct {
	client redis.UniversalClient
	ttl    time.Duration
	retry  time.Duration
}

type Option func(*Locker)

// WithRetryInterval sets the pause between acquisition attempts.
func WithRetryInterval(d time.Duration) Option {
	return func(l *Locker) {
		if d > 0 {
			l.retry = d
		}
	}
}

// NewLocker builds a locker whose leases expire after ttl.
func NewLocker(client redis.UniversalClient, ttl time.Duration, opts ...Option) *Locker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	l := &Locker{client: client, ttl: ttl, retry: 25 * time.Millisecond}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Lock retries until the key is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (ports.Unlock, error) {
	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", ports.ErrLockHeld, ctx.Err())
			}
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return l.unlocker(key, token), nil
		}
		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %w", ports.ErrLockHeld, ctx.Err())
		case <-timer.C:
		}
	}
}

func (l *Locker) unlocker(key, token string) ports.Unlock {
	return func(ctx context.Context) error {
		released, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
		if err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		if released == 0 {
			return ErrLockLost
		}
		return nil
	}
}

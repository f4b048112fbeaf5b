package ports

import (
	"context"
	"errors"
)

// ErrLockHeld reports that the key stayed locked until the context expired.
var ErrLockHeld = errors.New("lock held by another request")

// Unlock releases a previously acquired lock.
type Unlock func(ctx context.Context) error

// Locker serialises work per key across requests.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
)

func TestLockerTimesOutWhileHeld(t *testing.T) {
	locker := NewLocker()
	unlock, err := locker.Lock(context.Background(), "adoption:pet:p-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "adoption:pet:p-1")
	assert.ErrorIs(t, err, ports.ErrLockHeld)

	other, err := locker.Lock(context.Background(), "adoption:pet:p-2")
	require.NoError(t, err)
	require.NoError(t, other(context.Background()))

	require.NoError(t, unlock(context.Background()))
	again, err := locker.Lock(context.Background(), "adoption:pet:p-1")
	require.NoError(t, err)
	require.NoError(t, again(context.Background()))
	assert.Empty(t, locker.slots)
}

func TestLockerSerialisesHolders(t *testing.T) {
	locker := NewLocker()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "k")
			if err != nil {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			_ = unlock(context.Background())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

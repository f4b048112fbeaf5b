//go:build integration
// +build integration

package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	adoptionsredis "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/redis"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/redis/redistest"
)

type LockerSuite struct {
	suite.Suite
	client *goredis.Client
}

func TestLockerSuite(t *testing.T) {
	suite.Run(t, new(LockerSuite))
}

func (s *LockerSuite) SetupSuite() {
	s.client = redistest.Start(s.T())
}

func (s *LockerSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *LockerSuite) TestLockBlocksSecondHolder() {
	locker := adoptionsredis.NewLocker(s.client, time.Second, adoptionsredis.WithRetryInterval(5*time.Millisecond))
	unlock, err := locker.Lock(context.Background(), "adoption:pet:p-1")
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "adoption:pet:p-1")
	s.ErrorIs(err, ports.ErrLockHeld)

	s.Require().NoError(unlock(context.Background()))
	again, err := locker.Lock(context.Background(), "adoption:pet:p-1")
	s.Require().NoError(err)
	s.NoError(again(context.Background()))
}

func (s *LockerSuite) TestExpiredLeaseIsNotReleasedByOldHolder() {
	locker := adoptionsredis.NewLocker(s.client, 30*time.Millisecond, adoptionsredis.WithRetryInterval(5*time.Millisecond))
	stale, err := locker.Lock(context.Background(), "k")
	s.Require().NoError(err)

	time.Sleep(60 * time.Millisecond)
	fresh, err := locker.Lock(context.Background(), "k")
	s.Require().NoError(err)

	s.ErrorIs(stale(context.Background()), adoptionsredis.ErrLockLost)
	exists, err := s.client.Exists(context.Background(), "k").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), exists)
	s.NoError(fresh(context.Background()))
}

func (s *LockerSuite) TestMutualExclusion() {
	locker := adoptionsredis.NewLocker(s.client, 5*time.Second, adoptionsredis.WithRetryInterval(2*time.Millisecond))
	var inside, maxSeen int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "shared")
			if err != nil {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			_ = unlock(context.Background())
		}()
	}
	wg.Wait()
	s.Equal(int32(1), maxSeen)
}

package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
)

func seed(t *testing.T, repo *Repository, id, name string) {
	t.Helper()
	user, err := domain.NewUser(id, name)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), user)
	require.NoError(t, err)
}

func TestSaveKeepsPetReferences(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	seed(t, repo, "u-1", "Ana")
	require.NoError(t, repo.AttachPet(ctx, "u-1", "p-1"))

	saved, err := repo.Save(ctx, &domain.User{ID: "u-1", Name: "Ana B", CanAdopt: true})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", saved.Entity.Name)
	assert.True(t, saved.Entity.CanAdopt)
	assert.Equal(t, []string{"p-1"}, saved.Entity.Pets)

	_, err = repo.Save(ctx, &domain.User{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAttachDetachPet(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	seed(t, repo, "u-1", "Ana")

	require.NoError(t, repo.AttachPet(ctx, "u-1", "p-1"))
	assert.ErrorIs(t, repo.AttachPet(ctx, "u-1", "p-1"), ports.ErrPetAlreadyAttached)
	assert.ErrorIs(t, repo.AttachPet(ctx, "missing", "p-1"), ports.ErrNotFound)

	require.NoError(t, repo.DetachPet(ctx, "u-1", "p-1"))
	assert.ErrorIs(t, repo.DetachPet(ctx, "u-1", "p-1"), ports.ErrPetNotAttached)
}

func TestAttachPetConcurrentSingleWinner(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, "u-1", "Ana")

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.AttachPet(context.Background(), "u-1", "p-1") == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)

	user, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1"}, user.Entity.Pets)
}

func TestListInCreationOrder(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo := NewRepository(WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}))
	seed(t, repo, "u-b", "Bea")
	seed(t, repo, "u-a", "Ana")

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u-b", users[0].Entity.ID)
	assert.Equal(t, "u-a", users[1].Entity.ID)
}

//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userspostgres "github.com/Apurer/go-gin-adoption-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/postgres/postgrestest"
)

func seedUser(t *testing.T, repo *userspostgres.Repository, id, name string) {
	t.Helper()
	user, err := domain.NewUser(id, name)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), user)
	require.NoError(t, err)
}

func TestPostgresUsersRepository_CRUD(t *testing.T) {
	repo := userspostgres.NewRepository(postgrestest.Start(t))
	ctx := context.Background()
	seedUser(t, repo, "u-1", "Ana")

	found, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.Entity.Name)
	assert.False(t, found.Entity.CanAdopt)
	assert.Empty(t, found.Entity.Pets)

	found.Entity.Verify(true)
	saved, err := repo.Save(ctx, found.Entity)
	require.NoError(t, err)
	assert.True(t, saved.Entity.CanAdopt)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, "u-1"))
	_, err = repo.GetByID(ctx, "u-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresUsersRepository_PetReferences(t *testing.T) {
	repo := userspostgres.NewRepository(postgrestest.Start(t))
	ctx := context.Background()
	seedUser(t, repo, "u-1", "Ana")

	require.NoError(t, repo.AttachPet(ctx, "u-1", "p-1"))
	require.NoError(t, repo.AttachPet(ctx, "u-1", "p-2"))
	assert.ErrorIs(t, repo.AttachPet(ctx, "u-1", "p-1"), ports.ErrPetAlreadyAttached)
	assert.ErrorIs(t, repo.AttachPet(ctx, "missing", "p-1"), ports.ErrNotFound)

	found, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1", "p-2"}, found.Entity.Pets)

	require.NoError(t, repo.DetachPet(ctx, "u-1", "p-1"))
	assert.ErrorIs(t, repo.DetachPet(ctx, "u-1", "p-1"), ports.ErrPetNotAttached)

	found, err = repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-2"}, found.Entity.Pets)
}

func TestPostgresUsersRepository_AttachPetConcurrent(t *testing.T) {
	repo := userspostgres.NewRepository(postgrestest.Start(t))
	seedUser(t, repo, "u-1", "Ana")

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
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
}

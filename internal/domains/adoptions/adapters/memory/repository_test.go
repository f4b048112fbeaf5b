package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
)

func TestInsertSameAdoptionTwiceReturnsStoredRecord(t *testing.T) {
	stamps := []time.Time{time.Unix(100, 0), time.Unix(200, 0)}
	repo := NewRepository(WithClock(func() time.Time {
		ts := stamps[0]
		stamps = stamps[1:]
		return ts
	}))
	ctx := context.Background()
	adoption, err := domain.NewAdoption("a-1", "U1", "P1", time.Unix(50, 0))
	require.NoError(t, err)

	first, err := repo.Insert(ctx, adoption)
	require.NoError(t, err)
	again, err := repo.Insert(ctx, adoption)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInsertRejectsReusedIDForAnotherPet(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	first, err := domain.NewAdoption("a-1", "U1", "P1", time.Now())
	require.NoError(t, err)
	_, err = repo.Insert(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewAdoption("a-1", "U1", "P2", time.Now())
	require.NoError(t, err)
	_, err = repo.Insert(ctx, second)
	assert.ErrorIs(t, err, ports.ErrIDTaken)
}

func TestListByPet(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, a := range []struct{ id, pet string }{{"a-1", "P1"}, {"a-2", "P2"}, {"a-3", "P1"}} {
		adoption, err := domain.NewAdoption(a.id, "U1", a.pet, time.Unix(int64(len(a.id)), 0))
		require.NoError(t, err)
		_, err = repo.Insert(ctx, adoption)
		require.NoError(t, err)
	}

	found, err := repo.ListByPet(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "a-1", found[0].Entity.ID)
	assert.Equal(t, "a-3", found[1].Entity.ID)

	none, err := repo.ListByPet(ctx, "P9")
	require.NoError(t, err)
	assert.Empty(t, none)
}

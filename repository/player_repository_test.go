package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
)

func TestPlayerRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository()

	player, err := repo.Create(ctx, 1, "dex", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), player.Balance)

	t.Run("duplicate ID", func(t *testing.T) {
		_, err := repo.Create(ctx, 1, "dex again", 500)
		assert.Error(t, err)
	})
}

func TestPlayerRepository_GetByID_AbsentReturnsNil(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository()

	player, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, player)
}

func TestPlayerRepository_CopyIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository()
	created, err := repo.Create(ctx, 1, "dex", 1000)
	require.NoError(t, err)

	created.Items = append(created.Items, &entities.LoreItem{ID: "trophy"})
	require.NoError(t, repo.Save(ctx, created))

	// Mutating a read copy must not leak into the store.
	read, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	read.Balance = 0
	read.Items[0].ID = "tampered"

	fresh, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), fresh.Balance)
	assert.Equal(t, "trophy", fresh.Items[0].ID)
}

func TestPlayerRepository_UpdateBalance(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository()
	_, err := repo.Create(ctx, 1, "dex", 1000)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateBalance(ctx, 1, 250))
	player, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(250), player.Balance)

	t.Run("unknown player", func(t *testing.T) {
		err := repo.UpdateBalance(ctx, 99, 100)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestPlayerRepository_Save_UnknownPlayer(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository()

	err := repo.Save(ctx, &entities.PlayerAccount{ID: 5, Name: "ghost"})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestPlayerRepository_GetTopBalances(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository()
	for _, p := range []struct {
		id      int64
		balance int64
	}{{1, 500}, {2, 900}, {3, 900}, {4, 100}} {
		_, err := repo.Create(ctx, p.id, "player", p.balance)
		require.NoError(t, err)
	}

	top, err := repo.GetTopBalances(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	// Descending balance; the 900 tie breaks toward the lower ID.
	assert.Equal(t, int64(2), top[0].ID)
	assert.Equal(t, int64(3), top[1].ID)
	assert.Equal(t, int64(1), top[2].ID)

	t.Run("zero limit returns everyone", func(t *testing.T) {
		all, err := repo.GetTopBalances(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
)

func makeOffer(id string, status entities.TradeStatus, listedAt time.Time) *entities.TradeOffer {
	return &entities.TradeOffer{
		ID:       id,
		SellerID: 1,
		Item:     &entities.LoreItem{ID: "item-" + id, Rarity: entities.RarityCommon, Remaining: 1},
		Price:    100,
		Status:   status,
		ListedAt: listedAt,
	}
}

func TestTradeRepository_GetActive(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, makeOffer("b", entities.TradeStatusActive, now)))
	require.NoError(t, repo.Create(ctx, makeOffer("a", entities.TradeStatusActive, now.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, makeOffer("sold", entities.TradeStatusSold, now.Add(-2*time.Hour))))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// Oldest listing first.
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "b", active[1].ID)
}

func TestTradeRepository_GetActiveOlderThan(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRepository()
	cutoff := time.Now().Add(-72 * time.Hour)

	require.NoError(t, repo.Create(ctx, makeOffer("stale", entities.TradeStatusActive, cutoff.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, makeOffer("exact", entities.TradeStatusActive, cutoff)))
	require.NoError(t, repo.Create(ctx, makeOffer("fresh", entities.TradeStatusActive, cutoff.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, makeOffer("expired", entities.TradeStatusExpired, cutoff.Add(-time.Hour))))

	stale, err := repo.GetActiveOlderThan(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, "stale", stale[0].ID)
	assert.Equal(t, "exact", stale[1].ID) // listed exactly at the cutoff counts
}

func TestTradeRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRepository()
	offer := makeOffer("a", entities.TradeStatusActive, time.Now())
	require.NoError(t, repo.Create(ctx, offer))

	offer.Status = entities.TradeStatusSold
	require.NoError(t, repo.Update(ctx, offer))

	stored, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entities.TradeStatusSold, stored.Status)

	t.Run("unknown offer", func(t *testing.T) {
		err := repo.Update(ctx, makeOffer("ghost", entities.TradeStatusActive, time.Now()))
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestTradeRepository_CopyIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRepository()
	require.NoError(t, repo.Create(ctx, makeOffer("a", entities.TradeStatusActive, time.Now())))

	read, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	read.Status = entities.TradeStatusCancelled
	read.Item.ID = "tampered"

	fresh, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entities.TradeStatusActive, fresh.Status)
	assert.Equal(t, "item-a", fresh.Item.ID)
}

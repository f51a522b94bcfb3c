package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
)

func makeAmbush(id string, bettorID, targetID int64, status entities.BetStatus, createdAt time.Time) *entities.AmbushBet {
	return &entities.AmbushBet{
		Bet: entities.Bet{
			ID:        id,
			Kind:      entities.BetKindAmbush,
			BettorID:  bettorID,
			Stake:     100,
			Odds:      150,
			Status:    status,
			CreatedAt: createdAt,
		},
		TargetID: targetID,
		Category: "flake",
	}
}

func TestAmbushRepository_GetOpenByTarget(t *testing.T) {
	ctx := context.Background()
	repo := NewAmbushRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, makeAmbush("second", 1, 9, entities.BetStatusOpen, now)))
	require.NoError(t, repo.Create(ctx, makeAmbush("first", 2, 9, entities.BetStatusOpen, now.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, makeAmbush("settled", 3, 9, entities.BetStatusWon, now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, makeAmbush("other-target", 1, 5, entities.BetStatusOpen, now)))

	open, err := repo.GetOpenByTarget(ctx, 9)
	require.NoError(t, err)
	require.Len(t, open, 2)
	// Oldest bet first.
	assert.Equal(t, "first", open[0].ID)
	assert.Equal(t, "second", open[1].ID)
}

func TestAmbushRepository_GetByBettorAndTarget(t *testing.T) {
	ctx := context.Background()
	repo := NewAmbushRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, makeAmbush("mine", 1, 9, entities.BetStatusOpen, now)))
	require.NoError(t, repo.Create(ctx, makeAmbush("mine-settled", 1, 5, entities.BetStatusLost, now.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, makeAmbush("theirs", 2, 9, entities.BetStatusOpen, now)))

	byBettor, err := repo.GetByBettor(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byBettor, 2) // any status

	byTarget, err := repo.GetByTarget(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, byTarget, 2)
}

func TestAmbushRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewAmbushRepository()
	bet := makeAmbush("a", 1, 9, entities.BetStatusOpen, time.Now())
	require.NoError(t, repo.Create(ctx, bet))

	require.NoError(t, bet.Resolve(entities.BetStatusWon, time.Now()))
	require.NoError(t, repo.Update(ctx, bet))

	stored, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entities.BetStatusWon, stored.Status)
	assert.NotNil(t, stored.ResolvedAt)

	t.Run("unknown bet", func(t *testing.T) {
		err := repo.Update(ctx, makeAmbush("ghost", 1, 9, entities.BetStatusOpen, time.Now()))
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestAmbushRepository_CopyIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewAmbushRepository()
	require.NoError(t, repo.Create(ctx, makeAmbush("a", 1, 9, entities.BetStatusOpen, time.Now())))

	read, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	read.Stake = 0
	read.AddEvidence("tampered")

	fresh, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(100), fresh.Stake)
	assert.Empty(t, fresh.Evidence)
}

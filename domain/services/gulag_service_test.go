package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/config"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/testhelpers"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/infrastructure"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/repository"
)

type gulagFixture struct {
	service     interfaces.GulagService
	playerRepo  *repository.PlayerRepository
	gulagRepo   *repository.GulagRepository
	historyRepo *repository.GritHistoryRepository
	oracle      *testhelpers.MockOracle
}

func newGulagFixture(rand interfaces.Rand) *gulagFixture {
	f := &gulagFixture{
		playerRepo:  repository.NewPlayerRepository(),
		gulagRepo:   repository.NewGulagRepository(),
		historyRepo: repository.NewGritHistoryRepository(),
		oracle:      new(testhelpers.MockOracle),
	}
	f.service = NewGulagService(
		f.playerRepo,
		f.gulagRepo,
		f.historyRepo,
		f.oracle,
		rand,
		infrastructure.NewNoopEventPublisher(),
	)
	return f
}

// seedLocked plants a locked state with a pending even-money redemption.
func (f *gulagFixture) seedLocked(t *testing.T, playerID int64, priorBankruptcies int) {
	t.Helper()
	require.NoError(t, f.gulagRepo.Save(context.Background(), &entities.GulagState{
		PlayerID:     playerID,
		Phase:        entities.GulagPhaseLocked,
		Bankruptcies: priorBankruptcies,
		Redemption: &entities.RedemptionBet{
			Description: "double or nothing on a coin flip",
			Odds:        100,
			Stake:       100,
			Reward:      500,
			CreatedAt:   time.Now(),
		},
	}))
}

func TestGulagService_CheckAndLock(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newGulagFixture(&testhelpers.SequenceRand{})
	_, err := f.playerRepo.Create(ctx, 1, "broke", 0)
	require.NoError(t, err)

	f.oracle.On("RedemptionBet", ctx, int64(1)).Return(&entities.RedemptionBet{
		Description: "names every board game on the shelf in 60 seconds",
		Odds:        5000,
	}, nil)

	state, err := f.service.CheckAndLock(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, entities.GulagPhaseLocked, state.Phase)
	require.NotNil(t, state.Redemption)
	assert.Equal(t, 1000, state.Redemption.Odds) // clamped to the band ceiling
	assert.Equal(t, int64(100), state.Redemption.Stake)
	assert.Equal(t, int64(500), state.Redemption.Reward)

	t.Run("second call is a no-op", func(t *testing.T) {
		again, err := f.service.CheckAndLock(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, entities.GulagPhaseLocked, again.Phase)
		assert.Len(t, again.RapSheet, 1)
	})
}

func TestGulagService_CheckAndLock_SolventPlayer(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newGulagFixture(&testhelpers.SequenceRand{})
	_, err := f.playerRepo.Create(ctx, 1, "solvent", 500)
	require.NoError(t, err)

	state, err := f.service.CheckAndLock(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, entities.GulagPhaseFree, state.Phase)

	stored, err := f.gulagRepo.GetByPlayer(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored) // nothing persisted for a solvent player
}

func TestGulagService_CheckAndLock_OracleFallback(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newGulagFixture(&testhelpers.SequenceRand{})
	_, err := f.playerRepo.Create(ctx, 1, "broke", 0)
	require.NoError(t, err)

	f.oracle.On("RedemptionBet", ctx, int64(1)).Return(nil, assert.AnError)

	state, err := f.service.CheckAndLock(ctx, 1)

	require.NoError(t, err)
	require.NotNil(t, state.Redemption)
	assert.Equal(t, "double or nothing on a coin flip", state.Redemption.Description)
	assert.Equal(t, 100, state.Redemption.Odds)
}

func TestGulagService_AttemptRedemption_Win(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	// 0.0 lands under the 50% implied probability of +100: a win.
	f := newGulagFixture(&testhelpers.SequenceRand{Samples: []float64{0.0}})
	_, err := f.playerRepo.Create(ctx, 1, "redeemer", 0)
	require.NoError(t, err)
	f.seedLocked(t, 1, 0)

	state, err := f.service.AttemptRedemption(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, entities.GulagPhaseFree, state.Phase)
	assert.Equal(t, 1, state.Bankruptcies)

	player, err := f.playerRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), player.Balance)

	history, err := f.historyRepo.GetByPlayer(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entities.TransactionTypeRedemptionWin, history[0].TransactionType)
	assert.Equal(t, int64(500), history[0].ChangeAmount)
}

func TestGulagService_AttemptRedemption_Loss(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newGulagFixture(&testhelpers.SequenceRand{Samples: []float64{0.99}})
	_, err := f.playerRepo.Create(ctx, 1, "unlucky", 0)
	require.NoError(t, err)
	f.seedLocked(t, 1, 0)

	before := time.Now()
	state, err := f.service.AttemptRedemption(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, entities.GulagPhaseBanned, state.Phase)
	assert.Equal(t, 1, state.Bankruptcies)
	require.NotNil(t, state.BanExpiresAt)
	assert.WithinDuration(t, before.Add(24*time.Hour), *state.BanExpiresAt, time.Minute)
}

func TestGulagService_AttemptRedemption_BanTiers(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()

	t.Run("second bankruptcy adds a snack penalty", func(t *testing.T) {
		f := newGulagFixture(&testhelpers.SequenceRand{Samples: []float64{0.99}})
		_, err := f.playerRepo.Create(ctx, 1, "repeat", 0)
		require.NoError(t, err)
		f.seedLocked(t, 1, 1)

		state, err := f.service.AttemptRedemption(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, 2, state.Bankruptcies)
		require.NotEmpty(t, state.RapSheet)
		assert.Contains(t, state.RapSheet[len(state.RapSheet)-1], "buys the next round of snacks")
	})

	t.Run("third bankruptcy doubles the ban and demands an apology", func(t *testing.T) {
		f := newGulagFixture(&testhelpers.SequenceRand{Samples: []float64{0.99}})
		_, err := f.playerRepo.Create(ctx, 1, "hardened", 0)
		require.NoError(t, err)
		f.seedLocked(t, 1, 2)

		before := time.Now()
		state, err := f.service.AttemptRedemption(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, 3, state.Bankruptcies)
		require.NotNil(t, state.BanExpiresAt)
		assert.WithinDuration(t, before.Add(48*time.Hour), *state.BanExpiresAt, time.Minute)
		assert.Contains(t, state.RapSheet[len(state.RapSheet)-1], "writes a public apology in the group chat")
	})
}

func TestGulagService_AttemptRedemption_NoPendingBet(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newGulagFixture(&testhelpers.SequenceRand{})

	t.Run("never bankrupt", func(t *testing.T) {
		_, err := f.service.AttemptRedemption(ctx, 1)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("already released", func(t *testing.T) {
		require.NoError(t, f.gulagRepo.Save(ctx, &entities.GulagState{
			PlayerID: 2,
			Phase:    entities.GulagPhaseFree,
		}))
		_, err := f.service.AttemptRedemption(ctx, 2)
		assert.ErrorIs(t, err, entities.ErrNoActiveBets)
	})

	t.Run("serving a ban", func(t *testing.T) {
		until := time.Now().Add(12 * time.Hour)
		require.NoError(t, f.gulagRepo.Save(ctx, &entities.GulagState{
			PlayerID:     3,
			Phase:        entities.GulagPhaseBanned,
			BanExpiresAt: &until,
		}))
		_, err := f.service.AttemptRedemption(ctx, 3)
		assert.ErrorIs(t, err, entities.ErrWindowClosed)
	})
}

func TestGulagService_Status(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()

	t.Run("clean record can play", func(t *testing.T) {
		f := newGulagFixture(&testhelpers.SequenceRand{})
		status, err := f.service.Status(ctx, 1)
		require.NoError(t, err)
		assert.True(t, status.CanPlay)
		assert.False(t, status.Released)
	})

	t.Run("locked cannot play", func(t *testing.T) {
		f := newGulagFixture(&testhelpers.SequenceRand{})
		f.seedLocked(t, 1, 0)
		status, err := f.service.Status(ctx, 1)
		require.NoError(t, err)
		assert.False(t, status.CanPlay)
	})

	t.Run("elapsed ban releases with reset balance", func(t *testing.T) {
		f := newGulagFixture(&testhelpers.SequenceRand{})
		_, err := f.playerRepo.Create(ctx, 1, "served", 0)
		require.NoError(t, err)
		past := time.Now().Add(-time.Hour)
		require.NoError(t, f.gulagRepo.Save(ctx, &entities.GulagState{
			PlayerID:     1,
			Phase:        entities.GulagPhaseBanned,
			Bankruptcies: 1,
			BanExpiresAt: &past,
		}))

		status, err := f.service.Status(ctx, 1)

		require.NoError(t, err)
		assert.True(t, status.Released)
		assert.True(t, status.CanPlay)

		player, err := f.playerRepo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(50), player.Balance)

		history, err := f.historyRepo.GetByPlayer(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, entities.TransactionTypeGulagRelease, history[0].TransactionType)
	})

	t.Run("active ban stays closed", func(t *testing.T) {
		f := newGulagFixture(&testhelpers.SequenceRand{})
		future := time.Now().Add(time.Hour)
		require.NoError(t, f.gulagRepo.Save(ctx, &entities.GulagState{
			PlayerID:     1,
			Phase:        entities.GulagPhaseBanned,
			Bankruptcies: 1,
			BanExpiresAt: &future,
		}))
		status, err := f.service.Status(ctx, 1)
		require.NoError(t, err)
		assert.False(t, status.CanPlay)
		assert.False(t, status.Released)
	})
}

func TestGulagService_Roster(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newGulagFixture(&testhelpers.SequenceRand{})
	f.seedLocked(t, 5, 0)
	f.seedLocked(t, 2, 1)
	require.NoError(t, f.gulagRepo.Save(ctx, &entities.GulagState{
		PlayerID: 9,
		Phase:    entities.GulagPhaseFree,
	}))

	roster, err := f.service.Roster(ctx)

	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, int64(2), roster[0].PlayerID)
	assert.Equal(t, int64(5), roster[1].PlayerID)
}

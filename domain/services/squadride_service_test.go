package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/config"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/testhelpers"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/infrastructure"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/repository"
)

type squadRideFixture struct {
	service     interfaces.SquadRideService
	playerRepo  *repository.PlayerRepository
	rideRepo    *repository.SquadRideRepository
	historyRepo *repository.GritHistoryRepository
}

func newSquadRideFixture(phase interfaces.Phase) *squadRideFixture {
	f := &squadRideFixture{
		playerRepo:  repository.NewPlayerRepository(),
		rideRepo:    repository.NewSquadRideRepository(),
		historyRepo: repository.NewGritHistoryRepository(),
	}
	f.service = NewSquadRideService(
		f.playerRepo,
		f.rideRepo,
		f.historyRepo,
		testhelpers.FixedPhaseClock{Phase: phase},
		infrastructure.NewNoopEventPublisher(),
	)
	return f
}

func (f *squadRideFixture) createPlayer(t *testing.T, id, balance int64) {
	t.Helper()
	_, err := f.playerRepo.Create(context.Background(), id, "rider", balance)
	require.NoError(t, err)
}

func twoLegs() []entities.SquadRideLeg {
	return []entities.SquadRideLeg{
		{Description: "Dex shows up late", Odds: 100},
		{Description: "Marco posts a food pic", Odds: 100},
	}
}

func TestSquadRideService_Create(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSquadRideFixture(interfaces.PhaseBetting)
	f.createPlayer(t, 1, 1000)

	ride, err := f.service.Create(ctx, 1, twoLegs())

	require.NoError(t, err)
	assert.Equal(t, 300, ride.TotalOdds) // two even-money legs
	assert.Equal(t, entities.SquadRideStateOpen, ride.State)
	require.Len(t, ride.Legs, 2)
	for _, leg := range ride.Legs {
		assert.NotEmpty(t, leg.ID)
		assert.Nil(t, leg.Result)
	}
}

func TestSquadRideService_Create_Rejections(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()

	t.Run("single leg", func(t *testing.T) {
		f := newSquadRideFixture(interfaces.PhaseBetting)
		f.createPlayer(t, 1, 1000)
		_, err := f.service.Create(ctx, 1, []entities.SquadRideLeg{{Description: "solo", Odds: 100}})
		assert.ErrorIs(t, err, entities.ErrOutOfRange)
	})

	t.Run("combined odds below the band", func(t *testing.T) {
		f := newSquadRideFixture(interfaces.PhaseBetting)
		f.createPlayer(t, 1, 1000)
		_, err := f.service.Create(ctx, 1, []entities.SquadRideLeg{
			{Description: "heavy favorite", Odds: -300},
			{Description: "another favorite", Odds: -300},
		})
		assert.ErrorIs(t, err, entities.ErrOutOfRange)
	})

	t.Run("outside betting phase", func(t *testing.T) {
		f := newSquadRideFixture(interfaces.PhaseResolution)
		f.createPlayer(t, 1, 1000)
		_, err := f.service.Create(ctx, 1, twoLegs())
		assert.ErrorIs(t, err, entities.ErrWindowClosed)
	})
}

func TestSquadRideService_Join(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSquadRideFixture(interfaces.PhaseBetting)
	f.createPlayer(t, 1, 1000)
	f.createPlayer(t, 2, 1000)
	ride, err := f.service.Create(ctx, 1, twoLegs())
	require.NoError(t, err)

	first, err := f.service.Join(ctx, ride.ID, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, first.JoinOrder)
	assert.InDelta(t, 1.0, first.Multiplier(), 0.0001)

	second, err := f.service.Join(ctx, ride.ID, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, second.JoinOrder)
	assert.InDelta(t, 1.1, second.Multiplier(), 0.0001)

	player, err := f.playerRepo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(900), player.Balance)

	t.Run("duplicate rider", func(t *testing.T) {
		_, err := f.service.Join(ctx, ride.ID, 1, 50)
		assert.ErrorIs(t, err, entities.ErrInvalidTarget)
	})

	t.Run("unknown ride", func(t *testing.T) {
		_, err := f.service.Join(ctx, "no-such-ride", 2, 50)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestSquadRideService_Resolve_AllLegsWin(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSquadRideFixture(interfaces.PhaseBetting)
	f.createPlayer(t, 1, 1000)
	f.createPlayer(t, 2, 1000)
	f.createPlayer(t, 3, 1000)

	ride, err := f.service.Create(ctx, 1, twoLegs())
	require.NoError(t, err)
	for _, id := range []int64{1, 2, 3} {
		_, err := f.service.Join(ctx, ride.ID, id, 100)
		require.NoError(t, err)
	}

	results := map[string]bool{}
	for _, leg := range ride.Legs {
		results[leg.ID] = true
	}
	resolved, err := f.service.Resolve(ctx, ride.ID, results)

	require.NoError(t, err)
	assert.Equal(t, entities.SquadRideStateWon, resolved.State)

	// Base payout is 400 (100 at +300); loyalty multipliers scale it by
	// join order: 1.0, 1.1, 1.2.
	require.Len(t, resolved.Riders, 3)
	assert.Equal(t, int64(400), *resolved.Riders[0].Payout)
	assert.Equal(t, int64(440), *resolved.Riders[1].Payout)
	assert.Equal(t, int64(480), *resolved.Riders[2].Payout)

	for id, want := range map[int64]int64{1: 1300, 2: 1340, 3: 1380} {
		player, err := f.playerRepo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, player.Balance)
		assert.Equal(t, 1, player.Stats.BetsWon)
	}

	t.Run("second resolve fails", func(t *testing.T) {
		_, err := f.service.Resolve(ctx, ride.ID, results)
		assert.ErrorIs(t, err, entities.ErrAlreadyResolved)
	})
}

func TestSquadRideService_Resolve_AnyLegLosesTheRide(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSquadRideFixture(interfaces.PhaseBetting)
	f.createPlayer(t, 1, 1000)
	ride, err := f.service.Create(ctx, 1, twoLegs())
	require.NoError(t, err)
	_, err = f.service.Join(ctx, ride.ID, 1, 100)
	require.NoError(t, err)

	results := map[string]bool{ride.Legs[0].ID: true, ride.Legs[1].ID: false}
	resolved, err := f.service.Resolve(ctx, ride.ID, results)

	require.NoError(t, err)
	assert.Equal(t, entities.SquadRideStateLost, resolved.State)
	require.NotNil(t, resolved.Riders[0].Payout)
	assert.Equal(t, int64(0), *resolved.Riders[0].Payout)

	player, err := f.playerRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(900), player.Balance) // stake stays forfeited
	assert.Equal(t, 1, player.Stats.BetsLost)
}

func TestSquadRideService_Resolve_MissingLegResult(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSquadRideFixture(interfaces.PhaseBetting)
	f.createPlayer(t, 1, 1000)
	ride, err := f.service.Create(ctx, 1, twoLegs())
	require.NoError(t, err)

	_, err = f.service.Resolve(ctx, ride.ID, map[string]bool{ride.Legs[0].ID: true})
	assert.ErrorIs(t, err, entities.ErrOutOfRange)
}

func TestSquadRideService_Resolve_UnknownLeg(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSquadRideFixture(interfaces.PhaseBetting)
	f.createPlayer(t, 1, 1000)
	ride, err := f.service.Create(ctx, 1, twoLegs())
	require.NoError(t, err)

	results := map[string]bool{
		ride.Legs[0].ID: true,
		ride.Legs[1].ID: true,
		"not-a-leg":     false,
	}
	_, err = f.service.Resolve(ctx, ride.ID, results)
	assert.ErrorIs(t, err, entities.ErrOutOfRange)
}

package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/events"
)

// MockPlayerRepository is a mock implementation of PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, playerID int64) (*entities.PlayerAccount, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlayerAccount), args.Error(1)
}

func (m *MockPlayerRepository) Create(ctx context.Context, playerID int64, name string, initialBalance int64) (*entities.PlayerAccount, error) {
	args := m.Called(ctx, playerID, name, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlayerAccount), args.Error(1)
}

func (m *MockPlayerRepository) UpdateBalance(ctx context.Context, playerID int64, newBalance int64) error {
	args := m.Called(ctx, playerID, newBalance)
	return args.Error(0)
}

func (m *MockPlayerRepository) Save(ctx context.Context, player *entities.PlayerAccount) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetAll(ctx context.Context) ([]*entities.PlayerAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PlayerAccount), args.Error(1)
}

func (m *MockPlayerRepository) GetTopBalances(ctx context.Context, limit int) ([]*entities.PlayerAccount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PlayerAccount), args.Error(1)
}

// MockGritHistoryRepository is a mock implementation of GritHistoryRepository
type MockGritHistoryRepository struct {
	mock.Mock
}

func (m *MockGritHistoryRepository) Record(ctx context.Context, history *entities.GritHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockGritHistoryRepository) GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*entities.GritHistory, error) {
	args := m.Called(ctx, playerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GritHistory), args.Error(1)
}

// MockAmbushRepository is a mock implementation of AmbushRepository
type MockAmbushRepository struct {
	mock.Mock
}

func (m *MockAmbushRepository) Create(ctx context.Context, bet *entities.AmbushBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockAmbushRepository) GetByID(ctx context.Context, betID string) (*entities.AmbushBet, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AmbushBet), args.Error(1)
}

func (m *MockAmbushRepository) Update(ctx context.Context, bet *entities.AmbushBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockAmbushRepository) GetOpenByTarget(ctx context.Context, targetID int64) ([]*entities.AmbushBet, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AmbushBet), args.Error(1)
}

func (m *MockAmbushRepository) GetByBettor(ctx context.Context, bettorID int64) ([]*entities.AmbushBet, error) {
	args := m.Called(ctx, bettorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AmbushBet), args.Error(1)
}

func (m *MockAmbushRepository) GetByTarget(ctx context.Context, targetID int64) ([]*entities.AmbushBet, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AmbushBet), args.Error(1)
}

// MockSuperlativeRepository is a mock implementation of SuperlativeRepository
type MockSuperlativeRepository struct {
	mock.Mock
}

func (m *MockSuperlativeRepository) Create(ctx context.Context, superlative *entities.Superlative) error {
	args := m.Called(ctx, superlative)
	return args.Error(0)
}

func (m *MockSuperlativeRepository) GetByID(ctx context.Context, superlativeID string) (*entities.Superlative, error) {
	args := m.Called(ctx, superlativeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Superlative), args.Error(1)
}

func (m *MockSuperlativeRepository) Update(ctx context.Context, superlative *entities.Superlative) error {
	args := m.Called(ctx, superlative)
	return args.Error(0)
}

func (m *MockSuperlativeRepository) CreateBet(ctx context.Context, bet *entities.TribunalBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockSuperlativeRepository) GetBets(ctx context.Context, superlativeID string) ([]*entities.TribunalBet, error) {
	args := m.Called(ctx, superlativeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TribunalBet), args.Error(1)
}

func (m *MockSuperlativeRepository) UpdateBet(ctx context.Context, bet *entities.TribunalBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

// MockSquadRideRepository is a mock implementation of SquadRideRepository
type MockSquadRideRepository struct {
	mock.Mock
}

func (m *MockSquadRideRepository) Create(ctx context.Context, ride *entities.SquadRide) error {
	args := m.Called(ctx, ride)
	return args.Error(0)
}

func (m *MockSquadRideRepository) GetByID(ctx context.Context, rideID string) (*entities.SquadRide, error) {
	args := m.Called(ctx, rideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SquadRide), args.Error(1)
}

func (m *MockSquadRideRepository) Update(ctx context.Context, ride *entities.SquadRide) error {
	args := m.Called(ctx, ride)
	return args.Error(0)
}

func (m *MockSquadRideRepository) GetOpen(ctx context.Context) ([]*entities.SquadRide, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SquadRide), args.Error(1)
}

// MockSingleBetRepository is a mock implementation of SingleBetRepository
type MockSingleBetRepository struct {
	mock.Mock
}

func (m *MockSingleBetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockSingleBetRepository) GetByID(ctx context.Context, betID string) (*entities.Bet, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bet), args.Error(1)
}

func (m *MockSingleBetRepository) Update(ctx context.Context, bet *entities.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockSingleBetRepository) GetByBettor(ctx context.Context, bettorID int64) ([]*entities.Bet, error) {
	args := m.Called(ctx, bettorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

// MockBaselineRepository is a mock implementation of BaselineRepository
type MockBaselineRepository struct {
	mock.Mock
}

func (m *MockBaselineRepository) Set(ctx context.Context, baseline *entities.ActivityBaseline) error {
	args := m.Called(ctx, baseline)
	return args.Error(0)
}

func (m *MockBaselineRepository) GetByTarget(ctx context.Context, targetID int64) (*entities.ActivityBaseline, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ActivityBaseline), args.Error(1)
}

// MockGulagRepository is a mock implementation of GulagRepository
type MockGulagRepository struct {
	mock.Mock
}

func (m *MockGulagRepository) GetByPlayer(ctx context.Context, playerID int64) (*entities.GulagState, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GulagState), args.Error(1)
}

func (m *MockGulagRepository) Save(ctx context.Context, state *entities.GulagState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockGulagRepository) GetLocked(ctx context.Context) ([]*entities.GulagState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GulagState), args.Error(1)
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetByID(ctx context.Context, itemID string) (*entities.LoreItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoreItem), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *entities.LoreItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetAll(ctx context.Context) ([]*entities.LoreItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoreItem), args.Error(1)
}

func (m *MockItemRepository) GetBox(ctx context.Context, boxID string) (*entities.MysteryBox, error) {
	args := m.Called(ctx, boxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MysteryBox), args.Error(1)
}

func (m *MockItemRepository) SaveBox(ctx context.Context, box *entities.MysteryBox) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

// MockTradeRepository is a mock implementation of TradeRepository
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) Create(ctx context.Context, offer *entities.TradeOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockTradeRepository) GetByID(ctx context.Context, offerID string) (*entities.TradeOffer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TradeOffer), args.Error(1)
}

func (m *MockTradeRepository) Update(ctx context.Context, offer *entities.TradeOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockTradeRepository) GetActive(ctx context.Context) ([]*entities.TradeOffer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TradeOffer), args.Error(1)
}

func (m *MockTradeRepository) GetActiveOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.TradeOffer, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TradeOffer), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

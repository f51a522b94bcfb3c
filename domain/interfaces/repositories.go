package interfaces

import (
	"context"
	"time"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/events"
)

// PlayerRepository defines the interface for player account access
type PlayerRepository interface {
	// GetByID retrieves a player by ID
	GetByID(ctx context.Context, playerID int64) (*entities.PlayerAccount, error)

	// Create creates a new player with the initial balance
	Create(ctx context.Context, playerID int64, name string, initialBalance int64) (*entities.PlayerAccount, error)

	// UpdateBalance updates a player's balance
	UpdateBalance(ctx context.Context, playerID int64, newBalance int64) error

	// Save persists the full account state (items, equips, stats)
	Save(ctx context.Context, player *entities.PlayerAccount) error

	// GetAll returns all players
	GetAll(ctx context.Context) ([]*entities.PlayerAccount, error)

	// GetTopBalances returns players ordered by balance, highest first
	GetTopBalances(ctx context.Context, limit int) ([]*entities.PlayerAccount, error)
}

// GritHistoryRepository defines the interface for grit ledger history
type GritHistoryRepository interface {
	// Record creates a new history entry
	Record(ctx context.Context, history *entities.GritHistory) error

	// GetByPlayer returns history for a specific player, newest first
	GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*entities.GritHistory, error)
}

// AmbushRepository defines the interface for ambush bet access
type AmbushRepository interface {
	// Create stores a new ambush bet
	Create(ctx context.Context, bet *entities.AmbushBet) error

	// GetByID retrieves an ambush bet by ID
	GetByID(ctx context.Context, betID string) (*entities.AmbushBet, error)

	// Update persists changes to a bet
	Update(ctx context.Context, bet *entities.AmbushBet) error

	// GetOpenByTarget returns all open bets against a target
	GetOpenByTarget(ctx context.Context, targetID int64) ([]*entities.AmbushBet, error)

	// GetByBettor returns all bets placed by a bettor
	GetByBettor(ctx context.Context, bettorID int64) ([]*entities.AmbushBet, error)

	// GetByTarget returns all bets against a target, any status
	GetByTarget(ctx context.Context, targetID int64) ([]*entities.AmbushBet, error)
}

// SuperlativeRepository defines the interface for tribunal superlative access
type SuperlativeRepository interface {
	// Create stores a new superlative
	Create(ctx context.Context, superlative *entities.Superlative) error

	// GetByID retrieves a superlative by ID
	GetByID(ctx context.Context, superlativeID string) (*entities.Superlative, error)

	// Update persists changes to a superlative
	Update(ctx context.Context, superlative *entities.Superlative) error

	// CreateBet stores a wager on a nominee
	CreateBet(ctx context.Context, bet *entities.TribunalBet) error

	// GetBets returns all wagers on a superlative
	GetBets(ctx context.Context, superlativeID string) ([]*entities.TribunalBet, error)

	// UpdateBet persists changes to a wager
	UpdateBet(ctx context.Context, bet *entities.TribunalBet) error
}

// SquadRideRepository defines the interface for squad ride parlay access
type SquadRideRepository interface {
	// Create stores a new squad ride
	Create(ctx context.Context, ride *entities.SquadRide) error

	// GetByID retrieves a squad ride by ID
	GetByID(ctx context.Context, rideID string) (*entities.SquadRide, error)

	// Update persists changes to a ride
	Update(ctx context.Context, ride *entities.SquadRide) error

	// GetOpen returns all rides still accepting riders
	GetOpen(ctx context.Context) ([]*entities.SquadRide, error)
}

// SingleBetRepository defines the interface for standard single bet access
type SingleBetRepository interface {
	// Create stores a new single bet
	Create(ctx context.Context, bet *entities.Bet) error

	// GetByID retrieves a single bet by ID
	GetByID(ctx context.Context, betID string) (*entities.Bet, error)

	// Update persists changes to a bet
	Update(ctx context.Context, bet *entities.Bet) error

	// GetByBettor returns a bettor's single bets
	GetByBettor(ctx context.Context, bettorID int64) ([]*entities.Bet, error)
}

// BaselineRepository defines the interface for activity baseline storage
type BaselineRepository interface {
	// Set stores the single active baseline for a target, superseding any prior one
	Set(ctx context.Context, baseline *entities.ActivityBaseline) error

	// GetByTarget returns the active baseline for a target, nil when absent
	GetByTarget(ctx context.Context, targetID int64) (*entities.ActivityBaseline, error)
}

// GulagRepository defines the interface for bankruptcy state access
type GulagRepository interface {
	// GetByPlayer returns a player's gulag state, nil if they never went bankrupt
	GetByPlayer(ctx context.Context, playerID int64) (*entities.GulagState, error)

	// Save persists a gulag state
	Save(ctx context.Context, state *entities.GulagState) error

	// GetLocked returns all players currently locked out
	GetLocked(ctx context.Context) ([]*entities.GulagState, error)
}

// ItemRepository defines the interface for the lore item pool and box catalog
type ItemRepository interface {
	// GetByID retrieves a pool item by ID
	GetByID(ctx context.Context, itemID string) (*entities.LoreItem, error)

	// Save persists a pool item (supply changes, restocks)
	Save(ctx context.Context, item *entities.LoreItem) error

	// GetAll returns every item in the pool
	GetAll(ctx context.Context) ([]*entities.LoreItem, error)

	// GetBox retrieves a mystery box definition by ID
	GetBox(ctx context.Context, boxID string) (*entities.MysteryBox, error)

	// SaveBox persists a box definition
	SaveBox(ctx context.Context, box *entities.MysteryBox) error
}

// TradeRepository defines the interface for trading floor listings
type TradeRepository interface {
	// Create stores a new offer
	Create(ctx context.Context, offer *entities.TradeOffer) error

	// GetByID retrieves an offer by ID
	GetByID(ctx context.Context, offerID string) (*entities.TradeOffer, error)

	// Update persists changes to an offer
	Update(ctx context.Context, offer *entities.TradeOffer) error

	// GetActive returns all active listings
	GetActive(ctx context.Context) ([]*entities.TradeOffer, error)

	// GetActiveOlderThan returns active listings listed at or before the cutoff
	GetActiveOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.TradeOffer, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

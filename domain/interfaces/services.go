package interfaces

import (
	"context"
	"time"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
)

// PlayerService manages account lifecycle and roster queries
type PlayerService interface {
	// GetOrCreate returns the account, creating it with the starting balance
	GetOrCreate(ctx context.Context, playerID int64, name string) (*entities.PlayerAccount, error)

	// Leaderboard returns accounts ordered by balance, highest first
	Leaderboard(ctx context.Context, limit int) ([]*entities.PlayerAccount, error)

	// History returns a player's grit ledger entries, newest first
	History(ctx context.Context, playerID int64, limit int) ([]*entities.GritHistory, error)

	// ResetWeeklyStats clears every player's weekly wager counters
	ResetWeeklyStats(ctx context.Context) error
}

// AmbushService manages the asymmetric ambush bet lifecycle and the
// Subject-Takes-All resolver
type AmbushService interface {
	// PlaceAmbush creates an open ambush bet, escrowing the stake
	PlaceAmbush(ctx context.Context, bettorID, targetID int64, category, description string, stake int64, odds int) (*entities.AmbushBet, error)

	// SuggestProp asks the oracle for a proposition about the target
	SuggestProp(ctx context.Context, targetID int64, windowStart, windowEnd time.Time) (*SuggestedProp, error)

	// ViewFor partitions all ambush bets into the caller's dual projection
	ViewFor(ctx context.Context, playerID int64) (*entities.AmbushView, error)

	// CancelAmbush voids a still-open bet and refunds its escrow. Only the
	// bettor may cancel, and only while the betting window is open.
	CancelAmbush(ctx context.Context, betID string, bettorID int64) error

	// TotalStakedAgainst returns the live open pot against a target
	TotalStakedAgainst(ctx context.Context, targetID int64) (int64, error)

	// ResolveTarget settles every open bet against one target in a single
	// atomic pass: ghosting void, bettors win, or subject takes all.
	ResolveTarget(ctx context.Context, targetID int64, behaviorConfirmed bool, windowStart, windowEnd time.Time) (*entities.AmbushResolution, error)
}

// ActivityService is the activity baseline monitor
type ActivityService interface {
	// EstablishBaseline counts target-authored messages in the window and
	// stores the result as the target's single active baseline
	EstablishBaseline(ctx context.Context, targetID int64, windowStart, windowEnd time.Time) (*entities.ActivityBaseline, error)

	// CheckForGhosting compares a later window against the baseline
	CheckForGhosting(ctx context.Context, targetID int64, windowStart, windowEnd time.Time) (*entities.GhostingReport, error)

	// TrendReport summarizes chat activity in the window into trend strings
	TrendReport(ctx context.Context, windowStart, windowEnd time.Time) ([]string, error)
}

// TribunalService manages voted superlatives and their wagers
type TribunalService interface {
	// OpenSuperlative curates a superlative via the oracle and opens it for
	// voting until the given cutoff
	OpenSuperlative(ctx context.Context, windowStart, windowEnd time.Time, votingClosesAt time.Time) (*entities.Superlative, error)

	// Vote records or replaces a player's vote for a nominee
	Vote(ctx context.Context, superlativeID string, voterID int64, nomineeID string) error

	// PlaceWager stakes grit on a nominee at the nominee's odds
	PlaceWager(ctx context.Context, superlativeID string, bettorID int64, nomineeID string, stake int64) (*entities.TribunalBet, error)

	// Resolve decides the winner by vote tally and settles every wager
	Resolve(ctx context.Context, superlativeID string) (*entities.Nominee, error)
}

// SquadRideService manages cooperative parlays
type SquadRideService interface {
	// Create proposes a parlay whose combined odds must fall inside the
	// configured band
	Create(ctx context.Context, creatorID int64, legs []entities.SquadRideLeg) (*entities.SquadRide, error)

	// Join stakes a rider into an open ride
	Join(ctx context.Context, rideID string, playerID int64, stake int64) (*entities.SquadRideRider, error)

	// Resolve settles the ride given a result per leg, keyed by leg ID
	Resolve(ctx context.Context, rideID string, legResults map[string]bool) (*entities.SquadRide, error)
}

// SingleBetService manages standard stake-at-odds bets
type SingleBetService interface {
	// Place creates an open single bet, escrowing the stake
	Place(ctx context.Context, bettorID int64, description string, stake int64, odds int) (*entities.Bet, error)

	// Resolve settles a bet won or lost
	Resolve(ctx context.Context, betID string, won bool) (*entities.Bet, error)

	// Void cancels an open bet and refunds the stake
	Void(ctx context.Context, betID string) error
}

// GulagStatus reports a player's bankruptcy position after lazy expiry
type GulagStatus struct {
	State    *entities.GulagState
	CanPlay  bool
	Released bool // true when this read released an expired ban
}

// GulagService runs the bankruptcy/redemption state machine
type GulagService interface {
	// CheckAndLock locks out a player whose balance reached zero and
	// brokers their redemption bet via the oracle
	CheckAndLock(ctx context.Context, playerID int64) (*entities.GulagState, error)

	// AttemptRedemption plays the single redemption wager
	AttemptRedemption(ctx context.Context, playerID int64) (*entities.GulagState, error)

	// Status reports the player's position, applying lazy ban expiry
	Status(ctx context.Context, playerID int64) (*GulagStatus, error)

	// RapSheet returns the player's punishment log
	RapSheet(ctx context.Context, playerID int64) ([]string, error)

	// Roster lists every player currently locked out awaiting redemption
	Roster(ctx context.Context) ([]*entities.GulagState, error)
}

// BoxDraw reports the result of opening a mystery box
type BoxDraw struct {
	Rarity entities.Rarity
	Item   *entities.LoreItem // nil when the box has nothing in stock
}

// MysteryBoxService issues weighted-random rewards from the item pool
type MysteryBoxService interface {
	// Open draws one item from the box into the player's collection
	Open(ctx context.Context, playerID int64, boxID string) (*BoxDraw, error)

	// Restock raises a finite item's remaining supply
	Restock(ctx context.Context, itemID string, count int) error
}

// TradingService runs the taxed peer marketplace
type TradingService interface {
	// List escrows a player's item into a new offer
	List(ctx context.Context, sellerID int64, itemID string, price int64) (*entities.TradeOffer, error)

	// Purchase buys an active offer, debiting price plus tax from the buyer
	// and crediting the seller's proceeds in the same atomic step
	Purchase(ctx context.Context, offerID string, buyerID int64) (*entities.TradeReceipt, error)

	// Cancel withdraws an active offer; seller only
	Cancel(ctx context.Context, offerID string, sellerID int64) error

	// SweepExpired prunes listings inactive beyond the configured duration
	SweepExpired(ctx context.Context) (int, error)
}

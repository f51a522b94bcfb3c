package events

import "github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"

// EventType represents different types of events in the settlement core
type EventType string

const (
	EventTypeGritChange       EventType = "grit_change"
	EventTypePlayerCreated    EventType = "player_created"
	EventTypeBetPlaced        EventType = "bet_placed"
	EventTypeAmbushResolved   EventType = "ambush_resolved"
	EventTypeGulagStateChange EventType = "gulag_state_change"
	EventTypeTradeCompleted   EventType = "trade_completed"
	EventTypeBoxOpened        EventType = "box_opened"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GritChangeEvent represents a balance change that occurred
type GritChangeEvent struct {
	PlayerID        int64
	OldBalance      int64
	NewBalance      int64
	TransactionType entities.TransactionType
	ChangeAmount    int64
}

func (e GritChangeEvent) Type() EventType {
	return EventTypeGritChange
}

// PlayerCreatedEvent represents a new player account creation
type PlayerCreatedEvent struct {
	PlayerID       int64
	Name           string
	InitialBalance int64
}

func (e PlayerCreatedEvent) Type() EventType {
	return EventTypePlayerCreated
}

// BetPlacedEvent represents a bet of any kind that was placed
type BetPlacedEvent struct {
	BetID    string
	Kind     entities.BetKind
	BettorID int64
	Stake    int64
	Odds     int
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// AmbushResolvedEvent represents a completed Subject-Takes-All settlement
type AmbushResolvedEvent struct {
	TargetID int64
	Outcome  entities.AmbushOutcome
	TotalPot int64
}

func (e AmbushResolvedEvent) Type() EventType {
	return EventTypeAmbushResolved
}

// GulagStateChangeEvent represents a bankruptcy state machine transition
type GulagStateChangeEvent struct {
	PlayerID int64
	OldPhase entities.GulagPhase
	NewPhase entities.GulagPhase
}

func (e GulagStateChangeEvent) Type() EventType {
	return EventTypeGulagStateChange
}

// TradeCompletedEvent represents a finished trading floor purchase
type TradeCompletedEvent struct {
	OfferID  string
	BuyerID  int64
	SellerID int64
	Price    int64
	Tax      int64
}

func (e TradeCompletedEvent) Type() EventType {
	return EventTypeTradeCompleted
}

// BoxOpenedEvent represents a mystery box draw
type BoxOpenedEvent struct {
	PlayerID int64
	BoxID    string
	ItemID   string
	Rarity   entities.Rarity
}

func (e BoxOpenedEvent) Type() EventType {
	return EventTypeBoxOpened
}

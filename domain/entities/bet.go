package entities

import (
	"time"
)

// BetKind tags the variant of a bet
type BetKind string

const (
	BetKindAmbush    BetKind = "ambush"
	BetKindTribunal  BetKind = "tribunal"
	BetKindSquadRide BetKind = "squad_ride"
	BetKindSingle    BetKind = "single"
)

// BetStatus represents the resolution status of a bet
type BetStatus string

const (
	BetStatusOpen   BetStatus = "open"
	BetStatusWon    BetStatus = "won"
	BetStatusLost   BetStatus = "lost"
	BetStatusVoided BetStatus = "voided"
)

// IsTerminal returns true for statuses a bet can never leave
func (s BetStatus) IsTerminal() bool {
	return s == BetStatusWon || s == BetStatusLost || s == BetStatusVoided
}

// Bet is the shared shape of every bet variant. Kind-specific payloads
// (target, nominee, legs) live on the wrapping variant structs; the stake,
// odds, status, evidence and timestamps are common so settlement logic
// never drifts between kinds.
type Bet struct {
	ID         string
	Kind       BetKind
	BettorID   int64
	Stake      int64
	Odds       int // American odds, never zero
	Status     BetStatus
	Evidence   []string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// IsOpen checks whether the bet is still unresolved
func (b *Bet) IsOpen() bool {
	return b.Status == BetStatusOpen
}

// Resolve transitions the bet open -> terminal exactly once.
// A second call fails with ErrAlreadyResolved.
func (b *Bet) Resolve(status BetStatus, at time.Time) error {
	if !b.IsOpen() {
		return ErrAlreadyResolved
	}
	if !status.IsTerminal() {
		return ErrOutOfRange
	}
	b.Status = status
	b.ResolvedAt = &at
	return nil
}

// AddEvidence appends an explanatory note to the bet's evidence list
func (b *Bet) AddEvidence(note string) {
	b.Evidence = append(b.Evidence, note)
}

// NetProfit returns the net result of a settled bet given its payout
func (b *Bet) NetProfit(payout int64) int64 {
	switch b.Status {
	case BetStatusWon:
		return payout - b.Stake
	case BetStatusLost:
		return -b.Stake
	default:
		return 0
	}
}

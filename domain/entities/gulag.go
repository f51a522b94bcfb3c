package entities

import (
	"fmt"
	"time"
)

// GulagPhase represents the bankruptcy state machine position
type GulagPhase string

const (
	GulagPhaseFree   GulagPhase = "free"
	GulagPhaseLocked GulagPhase = "locked"
	GulagPhaseBanned GulagPhase = "banned"
)

// RedemptionBet is the single high-variance wager offered to a locked-out
// player. Generated by the oracle collaborator, odds clamped into the
// configured band, with a deterministic built-in fallback.
type RedemptionBet struct {
	Description string
	Odds        int
	Stake       int64
	Reward      int64
	CreatedAt   time.Time
}

// GulagState tracks a player's bankruptcy lockout. It exists only once a
// player has ever gone bankrupt and survives release for historical counting.
type GulagState struct {
	PlayerID     int64
	Phase        GulagPhase
	Bankruptcies int
	Redemption   *RedemptionBet
	LockedAt     *time.Time
	BanExpiresAt *time.Time
	RapSheet     []string
}

// IsLocked checks whether the player is currently locked out awaiting redemption
func (g *GulagState) IsLocked() bool {
	return g.Phase == GulagPhaseLocked
}

// IsBanned checks whether the player is serving a ban at the given time.
// Expiry is checked lazily on read, never via a timer.
func (g *GulagState) IsBanned(now time.Time) bool {
	return g.Phase == GulagPhaseBanned && g.BanExpiresAt != nil && now.Before(*g.BanExpiresAt)
}

// BanExpired checks whether a ban has lapsed at the given time
func (g *GulagState) BanExpired(now time.Time) bool {
	return g.Phase == GulagPhaseBanned && g.BanExpiresAt != nil && !now.Before(*g.BanExpiresAt)
}

// Lock transitions the player into the locked-out phase
func (g *GulagState) Lock(now time.Time) {
	g.Phase = GulagPhaseLocked
	g.LockedAt = &now
	g.BanExpiresAt = nil
	g.Redemption = nil
	g.AddRapSheetEntry(fmt.Sprintf("bankrupt #%d, locked out", g.Bankruptcies+1))
}

// Ban transitions a locked player into a timed ban
func (g *GulagState) Ban(until time.Time, penalty string) {
	g.Phase = GulagPhaseBanned
	g.BanExpiresAt = &until
	g.Redemption = nil
	entry := fmt.Sprintf("redemption failed, banned until %s", until.Format(time.RFC3339))
	if penalty != "" {
		entry += ", penalty: " + penalty
	}
	g.AddRapSheetEntry(entry)
}

// Release returns the player to the free phase
func (g *GulagState) Release(note string) {
	g.Phase = GulagPhaseFree
	g.BanExpiresAt = nil
	g.Redemption = nil
	if note != "" {
		g.AddRapSheetEntry(note)
	}
}

// AddRapSheetEntry appends a free-text punishment log line
func (g *GulagState) AddRapSheetEntry(entry string) {
	g.RapSheet = append(g.RapSheet, entry)
}

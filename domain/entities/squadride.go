package entities

import "time"

// SquadRideState represents the lifecycle of a squad ride parlay
type SquadRideState string

const (
	SquadRideStateOpen     SquadRideState = "open"
	SquadRideStateWon      SquadRideState = "won"
	SquadRideStateLost     SquadRideState = "lost"
	SquadRideStateResolved SquadRideState = "resolved"
)

// SquadRideLeg is one proposition inside the parlay
type SquadRideLeg struct {
	ID          string
	Description string
	Odds        int
	Result      *bool // nil until resolution supplies a result
}

// SquadRideRider is one participant's stake in the parlay. JoinOrder is the
// zero-based position the rider joined at; the payout multiplier is
// 1 + 0.1*JoinOrder, so later joiners carry a larger bonus.
type SquadRideRider struct {
	PlayerID  int64
	Stake     int64
	JoinOrder int
	Payout    *int64
	JoinedAt  time.Time
}

// Multiplier returns the rider's payout multiplier
func (r *SquadRideRider) Multiplier() float64 {
	return 1.0 + 0.1*float64(r.JoinOrder)
}

// SquadRide is a cooperative parlay: one creator proposes the legs, other
// players ride by staking into it.
type SquadRide struct {
	ID         string
	CreatorID  int64
	Legs       []*SquadRideLeg
	Riders     []*SquadRideRider
	TotalOdds  int // combined American odds across all legs
	State      SquadRideState
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// IsOpen checks whether the ride still accepts riders
func (sr *SquadRide) IsOpen() bool {
	return sr.State == SquadRideStateOpen
}

// HasRider checks whether the player already joined
func (sr *SquadRide) HasRider(playerID int64) bool {
	for _, r := range sr.Riders {
		if r.PlayerID == playerID {
			return true
		}
	}
	return false
}

// TotalStaked sums all rider stakes
func (sr *SquadRide) TotalStaked() int64 {
	var total int64
	for _, r := range sr.Riders {
		total += r.Stake
	}
	return total
}

// LegByID finds a leg, or nil
func (sr *SquadRide) LegByID(legID string) *SquadRideLeg {
	for _, leg := range sr.Legs {
		if leg.ID == legID {
			return leg
		}
	}
	return nil
}

// AllLegsDecided checks that every leg has a result
func (sr *SquadRide) AllLegsDecided() bool {
	for _, leg := range sr.Legs {
		if leg.Result == nil {
			return false
		}
	}
	return true
}

// AllLegsWon checks that every leg succeeded. Only meaningful once
// AllLegsDecided is true.
func (sr *SquadRide) AllLegsWon() bool {
	for _, leg := range sr.Legs {
		if leg.Result == nil || !*leg.Result {
			return false
		}
	}
	return true
}

package entities

import "time"

// Nominee is one candidate within a superlative, with the oracle's evidence
// quotes and suggested odds (clamped into the configured band before use).
type Nominee struct {
	ID       string
	PlayerID int64
	Odds     int
	Evidence []string
	// Order is the nomination position; it is the documented tie-break for
	// resolution (lowest order wins an exact vote tie).
	Order int
}

// Superlative is an AI-curated award category the group votes and wagers on.
// Voting and wagering are independent: voting closes at VotingClosesAt,
// wagers settle when the superlative is resolved.
type Superlative struct {
	ID             string
	Title          string
	Nominees       []*Nominee
	Votes          map[int64]string // voter ID -> nominee ID
	WinnerID       *string
	VotingClosesAt time.Time
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// IsResolved checks whether a winner has been decided
func (s *Superlative) IsResolved() bool {
	return s.ResolvedAt != nil
}

// VotingOpen checks whether votes are still accepted at the given time
func (s *Superlative) VotingOpen(now time.Time) bool {
	return now.Before(s.VotingClosesAt)
}

// NomineeByID finds a nominee, or nil
func (s *Superlative) NomineeByID(nomineeID string) *Nominee {
	for _, n := range s.Nominees {
		if n.ID == nomineeID {
			return n
		}
	}
	return nil
}

// TallyVotes counts votes per nominee ID
func (s *Superlative) TallyVotes() map[string]int {
	tally := make(map[string]int)
	for _, nomineeID := range s.Votes {
		tally[nomineeID]++
	}
	return tally
}

// DecideWinner picks the nominee with the most votes. An exact tie is broken
// by the lowest nomination order, an explicit policy rather than map
// iteration order. Returns nil when there are no nominees.
func (s *Superlative) DecideWinner() *Nominee {
	tally := s.TallyVotes()
	var winner *Nominee
	for _, n := range s.Nominees {
		if winner == nil {
			winner = n
			continue
		}
		if tally[n.ID] > tally[winner.ID] {
			winner = n
		} else if tally[n.ID] == tally[winner.ID] && n.Order < winner.Order {
			winner = n
		}
	}
	return winner
}

// TribunalBet is a wager on one nominee within a superlative.
type TribunalBet struct {
	Bet
	SuperlativeID string
	NomineeID     string
}

package interfaces

import (
	"context"
	"time"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
)

// Phase represents the current stage of the weekly cycle, owned by the
// external phase clock. The core only consults it to gate operations.
type Phase string

const (
	PhaseBetting    Phase = "betting"
	PhaseVoting     Phase = "voting"
	PhaseResolution Phase = "resolution"
	PhaseIdle       Phase = "idle"
)

// PhaseClock is the external scheduler collaborator. The core rejects
// operations attempted outside their permitted phase but does not itself
// track time.
type PhaseClock interface {
	// CurrentPhase returns the phase in effect right now
	CurrentPhase() Phase

	// PhaseEnd returns when the given phase closes
	PhaseEnd(phase Phase) time.Time
}

// ChatStore is the read-only message store collaborator: an append-only
// sequence of timestamped, sender-attributed messages.
type ChatStore interface {
	// MessagesBetween returns messages with timestamps in [start, end]
	MessagesBetween(ctx context.Context, start, end time.Time) ([]entities.ChatMessage, error)
}

// SuggestedProp is a single oracle-proposed ambush proposition
type SuggestedProp struct {
	Description string
	Odds        int
}

// SuggestedSuperlative is an oracle-proposed award category with nominees
type SuggestedSuperlative struct {
	Title    string
	Nominees []SuggestedNominee
}

// SuggestedNominee is one oracle-proposed candidate with evidence quotes
type SuggestedNominee struct {
	PlayerID int64
	Odds     int
	Evidence []string
}

// Oracle is the AI content generator collaborator. All odds it returns are
// clamped into the configured band before use; implementations degrade to
// deterministic built-in defaults on malformed output, never failing the
// caller.
type Oracle interface {
	// ChatTrends analyzes a transcript excerpt into observed trend strings
	ChatTrends(ctx context.Context, transcript []entities.ChatMessage) ([]string, error)

	// AmbushProp suggests a proposition about the target's behavior
	AmbushProp(ctx context.Context, targetID int64, transcript []entities.ChatMessage) (*SuggestedProp, error)

	// Superlative curates an award category with nominees and evidence
	Superlative(ctx context.Context, transcript []entities.ChatMessage) (*SuggestedSuperlative, error)

	// RedemptionBet generates the single gulag redemption wager
	RedemptionBet(ctx context.Context, playerID int64) (*entities.RedemptionBet, error)
}

// Rand abstracts the randomness used by mystery box draws and redemption
// outcomes so tests can supply deterministic sequences.
type Rand interface {
	// Float64 returns a sample in [0, 1)
	Float64() float64
}

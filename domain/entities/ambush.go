package entities

// AmbushBet is a wager by one player on another player's future observable
// chat behavior. The description, odds and stake are visible in full only to
// the bettor; the target sees a redacted projection (AmbushIncomingView).
type AmbushBet struct {
	Bet
	TargetID    int64
	Category    string
	Description string
}

// AmbushPlacedView is the bettor-side projection: full fidelity.
type AmbushPlacedView struct {
	BetID       string
	TargetID    int64
	Category    string
	Description string
	Stake       int64
	Odds        int
	Payout      int64
	Status      BetStatus
}

// AmbushIncomingView is the target-side projection. Identities aside, only
// the aggregate staked against the target, a count, and per-bet resolution
// statuses are exposed. Descriptions, odds, stakes and bettor identities on
// individual bets are never included.
type AmbushIncomingView struct {
	TargetID    int64
	TotalStaked int64
	Count       int
	Statuses    []BetStatus
}

// AmbushView partitions all ambush bets relevant to one player.
type AmbushView struct {
	Placed   []AmbushPlacedView
	Incoming AmbushIncomingView
}

// AmbushOutcome tags the exclusive settlement branch applied to a target.
type AmbushOutcome string

const (
	AmbushOutcomeGhostingVoid AmbushOutcome = "ghosting_void"
	AmbushOutcomeBettorsWin   AmbushOutcome = "bettors_win"
	AmbushOutcomeSubjectWins  AmbushOutcome = "subject_wins"
)

// AmbushResolution reports the settlement of every open bet against one target.
type AmbushResolution struct {
	TargetID   int64
	Outcome    AmbushOutcome
	TotalPot   int64
	CommishCut int64
	// Payouts maps bettor ID to the amount credited back (winnings or
	// pro-rata ghosting refund). Zero entries mean the bettor lost.
	Payouts map[int64]int64
	// TargetCredit is the amount transferred to the target (subject wins),
	// TargetPenalty the amount debited (ghosting), never both nonzero.
	TargetCredit  int64
	TargetPenalty int64
	Ghosting      *GhostingReport
	Resolved      []*AmbushBet
}

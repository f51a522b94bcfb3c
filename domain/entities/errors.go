package entities

import "errors"

// Domain errors returned by services and repositories. Callers match with
// errors.Is; services wrap these with call-site context via fmt.Errorf("%w").
var (
	// ErrInsufficientFunds indicates a stake or price exceeds the player's balance.
	ErrInsufficientFunds = errors.New("insufficient grit")

	// ErrInvalidTarget indicates a bet targeting the bettor themselves.
	ErrInvalidTarget = errors.New("invalid bet target")

	// ErrAlreadyResolved indicates a second resolution attempt on a settled bet.
	ErrAlreadyResolved = errors.New("already resolved")

	// ErrNotFound indicates an unknown bet, offer, item, player or baseline.
	ErrNotFound = errors.New("not found")

	// ErrPrecedentMissing indicates a ghosting check without an established baseline.
	ErrPrecedentMissing = errors.New("no activity baseline established")

	// ErrOutOfRange indicates odds or a price outside the configured band.
	ErrOutOfRange = errors.New("value outside configured band")

	// ErrWindowClosed indicates a vote or bet attempted after its cutoff.
	ErrWindowClosed = errors.New("window closed")

	// ErrNoActiveBets indicates resolution attempted with nothing open.
	ErrNoActiveBets = errors.New("no active bets")
)

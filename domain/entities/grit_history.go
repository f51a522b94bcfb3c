package entities

import (
	"errors"
	"time"
)

// GritHistory represents one historical grit balance change. Every mutation
// of a player's balance produces exactly one entry.
type GritHistory struct {
	ID              string
	PlayerID        int64
	BalanceBefore   int64
	BalanceAfter    int64
	ChangeAmount    int64
	TransactionType TransactionType
	Metadata        map[string]any
	RelatedID       string // bet, offer or superlative ID when applicable
	CreatedAt       time.Time
}

// IsPositiveChange returns true if the change amount is positive
func (gh *GritHistory) IsPositiveChange() bool {
	return gh.ChangeAmount > 0
}

// Validate performs basic consistency checks on the entry
func (gh *GritHistory) Validate() error {
	if gh.ChangeAmount == 0 {
		return errors.New("change amount cannot be zero")
	}
	if gh.BalanceAfter != gh.BalanceBefore+gh.ChangeAmount {
		return errors.New("balance calculation is inconsistent")
	}
	if gh.BalanceAfter < 0 {
		return errors.New("balance cannot be recorded negative")
	}
	return nil
}

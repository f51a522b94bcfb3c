package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// SingleBetRepository is the in-memory store for standard single bets.
type SingleBetRepository struct {
	mu   sync.RWMutex
	bets map[string]*entities.Bet
}

// NewSingleBetRepository creates a new single bet repository
func NewSingleBetRepository() *SingleBetRepository {
	return &SingleBetRepository{
		bets: make(map[string]*entities.Bet),
	}
}

var _ interfaces.SingleBetRepository = (*SingleBetRepository)(nil)

func copyBet(b *entities.Bet) *entities.Bet {
	out := *b
	out.Evidence = append([]string(nil), b.Evidence...)
	if b.ResolvedAt != nil {
		at := *b.ResolvedAt
		out.ResolvedAt = &at
	}
	return &out
}

// Create stores a new single bet
func (r *SingleBetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bets[bet.ID]; exists {
		return fmt.Errorf("bet %s already exists", bet.ID)
	}
	r.bets[bet.ID] = copyBet(bet)
	return nil
}

// GetByID retrieves a single bet by ID. Returns nil without error when absent.
func (r *SingleBetRepository) GetByID(ctx context.Context, betID string) (*entities.Bet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bet, ok := r.bets[betID]
	if !ok {
		return nil, nil
	}
	return copyBet(bet), nil
}

// Update persists changes to a bet
func (r *SingleBetRepository) Update(ctx context.Context, bet *entities.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bets[bet.ID]; !ok {
		return fmt.Errorf("bet %s: %w", bet.ID, entities.ErrNotFound)
	}
	r.bets[bet.ID] = copyBet(bet)
	return nil
}

// GetByBettor returns a bettor's single bets, oldest first
func (r *SingleBetRepository) GetByBettor(ctx context.Context, bettorID int64) ([]*entities.Bet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Bet
	for _, bet := range r.bets {
		if bet.BettorID == bettorID {
			out = append(out, copyBet(bet))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

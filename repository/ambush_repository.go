package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// AmbushRepository is the in-memory store for ambush bets.
type AmbushRepository struct {
	mu   sync.RWMutex
	bets map[string]*entities.AmbushBet
}

// NewAmbushRepository creates a new ambush repository
func NewAmbushRepository() *AmbushRepository {
	return &AmbushRepository{
		bets: make(map[string]*entities.AmbushBet),
	}
}

var _ interfaces.AmbushRepository = (*AmbushRepository)(nil)

func copyAmbush(b *entities.AmbushBet) *entities.AmbushBet {
	out := *b
	out.Evidence = append([]string(nil), b.Evidence...)
	if b.ResolvedAt != nil {
		at := *b.ResolvedAt
		out.ResolvedAt = &at
	}
	return &out
}

// Create stores a new ambush bet
func (r *AmbushRepository) Create(ctx context.Context, bet *entities.AmbushBet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bets[bet.ID]; exists {
		return fmt.Errorf("ambush bet %s already exists", bet.ID)
	}
	r.bets[bet.ID] = copyAmbush(bet)
	return nil
}

// GetByID retrieves an ambush bet by ID. Returns nil without error when absent.
func (r *AmbushRepository) GetByID(ctx context.Context, betID string) (*entities.AmbushBet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bet, ok := r.bets[betID]
	if !ok {
		return nil, nil
	}
	return copyAmbush(bet), nil
}

// Update persists changes to a bet
func (r *AmbushRepository) Update(ctx context.Context, bet *entities.AmbushBet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bets[bet.ID]; !ok {
		return fmt.Errorf("ambush bet %s: %w", bet.ID, entities.ErrNotFound)
	}
	r.bets[bet.ID] = copyAmbush(bet)
	return nil
}

func (r *AmbushRepository) filter(keep func(*entities.AmbushBet) bool) []*entities.AmbushBet {
	var out []*entities.AmbushBet
	for _, bet := range r.bets {
		if keep(bet) {
			out = append(out, copyAmbush(bet))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// GetOpenByTarget returns all open bets against a target
func (r *AmbushRepository) GetOpenByTarget(ctx context.Context, targetID int64) ([]*entities.AmbushBet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(b *entities.AmbushBet) bool {
		return b.TargetID == targetID && b.Status == entities.BetStatusOpen
	}), nil
}

// GetByBettor returns all bets placed by a bettor
func (r *AmbushRepository) GetByBettor(ctx context.Context, bettorID int64) ([]*entities.AmbushBet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(b *entities.AmbushBet) bool {
		return b.BettorID == bettorID
	}), nil
}

// GetByTarget returns all bets against a target, any status
func (r *AmbushRepository) GetByTarget(ctx context.Context, targetID int64) ([]*entities.AmbushBet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(b *entities.AmbushBet) bool {
		return b.TargetID == targetID
	}), nil
}

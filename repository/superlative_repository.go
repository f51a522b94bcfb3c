package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// SuperlativeRepository is the in-memory store for tribunal superlatives and
// their wagers.
type SuperlativeRepository struct {
	mu           sync.RWMutex
	superlatives map[string]*entities.Superlative
	bets         map[string]*entities.TribunalBet
}

// NewSuperlativeRepository creates a new superlative repository
func NewSuperlativeRepository() *SuperlativeRepository {
	return &SuperlativeRepository{
		superlatives: make(map[string]*entities.Superlative),
		bets:         make(map[string]*entities.TribunalBet),
	}
}

var _ interfaces.SuperlativeRepository = (*SuperlativeRepository)(nil)

func copySuperlative(s *entities.Superlative) *entities.Superlative {
	out := *s
	out.Nominees = make([]*entities.Nominee, len(s.Nominees))
	for i, n := range s.Nominees {
		dup := *n
		dup.Evidence = append([]string(nil), n.Evidence...)
		out.Nominees[i] = &dup
	}
	out.Votes = make(map[int64]string, len(s.Votes))
	for voter, nominee := range s.Votes {
		out.Votes[voter] = nominee
	}
	if s.WinnerID != nil {
		id := *s.WinnerID
		out.WinnerID = &id
	}
	if s.ResolvedAt != nil {
		at := *s.ResolvedAt
		out.ResolvedAt = &at
	}
	return &out
}

func copyTribunalBet(b *entities.TribunalBet) *entities.TribunalBet {
	out := *b
	out.Evidence = append([]string(nil), b.Evidence...)
	if b.ResolvedAt != nil {
		at := *b.ResolvedAt
		out.ResolvedAt = &at
	}
	return &out
}

// Create stores a new superlative
func (r *SuperlativeRepository) Create(ctx context.Context, superlative *entities.Superlative) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.superlatives[superlative.ID]; exists {
		return fmt.Errorf("superlative %s already exists", superlative.ID)
	}
	r.superlatives[superlative.ID] = copySuperlative(superlative)
	return nil
}

// GetByID retrieves a superlative by ID. Returns nil without error when absent.
func (r *SuperlativeRepository) GetByID(ctx context.Context, superlativeID string) (*entities.Superlative, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.superlatives[superlativeID]
	if !ok {
		return nil, nil
	}
	return copySuperlative(s), nil
}

// Update persists changes to a superlative
func (r *SuperlativeRepository) Update(ctx context.Context, superlative *entities.Superlative) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.superlatives[superlative.ID]; !ok {
		return fmt.Errorf("superlative %s: %w", superlative.ID, entities.ErrNotFound)
	}
	r.superlatives[superlative.ID] = copySuperlative(superlative)
	return nil
}

// CreateBet stores a wager on a nominee
func (r *SuperlativeRepository) CreateBet(ctx context.Context, bet *entities.TribunalBet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bets[bet.ID]; exists {
		return fmt.Errorf("tribunal bet %s already exists", bet.ID)
	}
	r.bets[bet.ID] = copyTribunalBet(bet)
	return nil
}

// GetBets returns all wagers on a superlative, oldest first
func (r *SuperlativeRepository) GetBets(ctx context.Context, superlativeID string) ([]*entities.TribunalBet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.TribunalBet
	for _, bet := range r.bets {
		if bet.SuperlativeID == superlativeID {
			out = append(out, copyTribunalBet(bet))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpdateBet persists changes to a wager
func (r *SuperlativeRepository) UpdateBet(ctx context.Context, bet *entities.TribunalBet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bets[bet.ID]; !ok {
		return fmt.Errorf("tribunal bet %s: %w", bet.ID, entities.ErrNotFound)
	}
	r.bets[bet.ID] = copyTribunalBet(bet)
	return nil
}

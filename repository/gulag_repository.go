package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// GulagRepository is the in-memory store for bankruptcy state.
type GulagRepository struct {
	mu     sync.RWMutex
	states map[int64]*entities.GulagState
}

// NewGulagRepository creates a new gulag repository
func NewGulagRepository() *GulagRepository {
	return &GulagRepository{
		states: make(map[int64]*entities.GulagState),
	}
}

var _ interfaces.GulagRepository = (*GulagRepository)(nil)

func copyGulagState(g *entities.GulagState) *entities.GulagState {
	out := *g
	if g.Redemption != nil {
		bet := *g.Redemption
		out.Redemption = &bet
	}
	if g.LockedAt != nil {
		at := *g.LockedAt
		out.LockedAt = &at
	}
	if g.BanExpiresAt != nil {
		at := *g.BanExpiresAt
		out.BanExpiresAt = &at
	}
	out.RapSheet = append([]string(nil), g.RapSheet...)
	return &out
}

// GetByPlayer returns a player's gulag state, nil if they never went bankrupt
func (r *GulagRepository) GetByPlayer(ctx context.Context, playerID int64) (*entities.GulagState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[playerID]
	if !ok {
		return nil, nil
	}
	return copyGulagState(state), nil
}

// Save persists a gulag state
func (r *GulagRepository) Save(ctx context.Context, state *entities.GulagState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states[state.PlayerID] = copyGulagState(state)
	return nil
}

// GetLocked returns all players currently locked out
func (r *GulagRepository) GetLocked(ctx context.Context) ([]*entities.GulagState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.GulagState
	for _, state := range r.states {
		if state.IsLocked() {
			out = append(out, copyGulagState(state))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

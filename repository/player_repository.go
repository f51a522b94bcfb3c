package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// PlayerRepository is the in-memory implementation of the player store.
// Entities are copied on every read and write so callers never share state
// with the store.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[int64]*entities.PlayerAccount
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		players: make(map[int64]*entities.PlayerAccount),
	}
}

var _ interfaces.PlayerRepository = (*PlayerRepository)(nil)

func copyPlayer(p *entities.PlayerAccount) *entities.PlayerAccount {
	out := *p
	out.Items = make([]*entities.LoreItem, len(p.Items))
	for i, item := range p.Items {
		dup := *item
		if item.Bonus != nil {
			bonus := *item.Bonus
			dup.Bonus = &bonus
		}
		out.Items[i] = &dup
	}
	out.Equipped = append([]string(nil), p.Equipped...)
	return &out
}

// GetByID retrieves a player by ID. Returns nil without error when absent.
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (*entities.PlayerAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.players[playerID]
	if !ok {
		return nil, nil
	}
	return copyPlayer(player), nil
}

// Create creates a new player with the initial balance
func (r *PlayerRepository) Create(ctx context.Context, playerID int64, name string, initialBalance int64) (*entities.PlayerAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[playerID]; exists {
		return nil, fmt.Errorf("player %d already exists", playerID)
	}

	now := time.Now()
	player := &entities.PlayerAccount{
		ID:        playerID,
		Name:      name,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.players[playerID] = player
	return copyPlayer(player), nil
}

// UpdateBalance updates a player's balance
func (r *PlayerRepository) UpdateBalance(ctx context.Context, playerID int64, newBalance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[playerID]
	if !ok {
		return fmt.Errorf("player %d: %w", playerID, entities.ErrNotFound)
	}
	player.Balance = newBalance
	player.UpdatedAt = time.Now()
	return nil
}

// Save persists the full account state
func (r *PlayerRepository) Save(ctx context.Context, player *entities.PlayerAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[player.ID]; !ok {
		return fmt.Errorf("player %d: %w", player.ID, entities.ErrNotFound)
	}
	stored := copyPlayer(player)
	stored.UpdatedAt = time.Now()
	r.players[player.ID] = stored
	return nil
}

// GetAll returns all players
func (r *PlayerRepository) GetAll(ctx context.Context) ([]*entities.PlayerAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.PlayerAccount, 0, len(r.players))
	for _, player := range r.players {
		out = append(out, copyPlayer(player))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetTopBalances returns players ordered by balance, highest first. Ties are
// broken by lowest player ID for a stable leaderboard.
func (r *PlayerRepository) GetTopBalances(ctx context.Context, limit int) ([]*entities.PlayerAccount, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Balance != all[j].Balance {
			return all[i].Balance > all[j].Balance
		}
		return all[i].ID < all[j].ID
	})
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

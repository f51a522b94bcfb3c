package repository

import (
	"context"
	"sync"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// GritHistoryRepository is the in-memory append-only grit ledger.
type GritHistoryRepository struct {
	mu      sync.RWMutex
	entries []*entities.GritHistory
}

// NewGritHistoryRepository creates a new grit history repository
func NewGritHistoryRepository() *GritHistoryRepository {
	return &GritHistoryRepository{}
}

var _ interfaces.GritHistoryRepository = (*GritHistoryRepository)(nil)

func copyHistory(h *entities.GritHistory) *entities.GritHistory {
	out := *h
	if h.Metadata != nil {
		out.Metadata = make(map[string]any, len(h.Metadata))
		for k, v := range h.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}

// Record creates a new history entry
func (r *GritHistoryRepository) Record(ctx context.Context, history *entities.GritHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, copyHistory(history))
	return nil
}

// GetByPlayer returns history for a specific player, newest first
func (r *GritHistoryRepository) GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*entities.GritHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.GritHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].PlayerID != playerID {
			continue
		}
		out = append(out, copyHistory(r.entries[i]))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

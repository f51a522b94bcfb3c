package repository

import (
	"context"
	"sync"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// BaselineRepository is the in-memory store for activity baselines. Each
// target holds at most one active baseline.
type BaselineRepository struct {
	mu        sync.RWMutex
	baselines map[int64]*entities.ActivityBaseline
}

// NewBaselineRepository creates a new baseline repository
func NewBaselineRepository() *BaselineRepository {
	return &BaselineRepository{
		baselines: make(map[int64]*entities.ActivityBaseline),
	}
}

var _ interfaces.BaselineRepository = (*BaselineRepository)(nil)

// Set stores the single active baseline for a target, superseding any prior one
func (r *BaselineRepository) Set(ctx context.Context, baseline *entities.ActivityBaseline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dup := *baseline
	r.baselines[baseline.TargetID] = &dup
	return nil
}

// GetByTarget returns the active baseline for a target, nil when absent
func (r *BaselineRepository) GetByTarget(ctx context.Context, targetID int64) (*entities.ActivityBaseline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	baseline, ok := r.baselines[targetID]
	if !ok {
		return nil, nil
	}
	dup := *baseline
	return &dup, nil
}

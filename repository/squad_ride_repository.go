package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// SquadRideRepository is the in-memory store for squad ride parlays.
type SquadRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*entities.SquadRide
}

// NewSquadRideRepository creates a new squad ride repository
func NewSquadRideRepository() *SquadRideRepository {
	return &SquadRideRepository{
		rides: make(map[string]*entities.SquadRide),
	}
}

var _ interfaces.SquadRideRepository = (*SquadRideRepository)(nil)

func copySquadRide(sr *entities.SquadRide) *entities.SquadRide {
	out := *sr
	out.Legs = make([]*entities.SquadRideLeg, len(sr.Legs))
	for i, leg := range sr.Legs {
		dup := *leg
		if leg.Result != nil {
			result := *leg.Result
			dup.Result = &result
		}
		out.Legs[i] = &dup
	}
	out.Riders = make([]*entities.SquadRideRider, len(sr.Riders))
	for i, rider := range sr.Riders {
		dup := *rider
		if rider.Payout != nil {
			payout := *rider.Payout
			dup.Payout = &payout
		}
		out.Riders[i] = &dup
	}
	if sr.ResolvedAt != nil {
		at := *sr.ResolvedAt
		out.ResolvedAt = &at
	}
	return &out
}

// Create stores a new squad ride
func (r *SquadRideRepository) Create(ctx context.Context, ride *entities.SquadRide) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rides[ride.ID]; exists {
		return fmt.Errorf("squad ride %s already exists", ride.ID)
	}
	r.rides[ride.ID] = copySquadRide(ride)
	return nil
}

// GetByID retrieves a squad ride by ID. Returns nil without error when absent.
func (r *SquadRideRepository) GetByID(ctx context.Context, rideID string) (*entities.SquadRide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, ok := r.rides[rideID]
	if !ok {
		return nil, nil
	}
	return copySquadRide(ride), nil
}

// Update persists changes to a ride
func (r *SquadRideRepository) Update(ctx context.Context, ride *entities.SquadRide) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rides[ride.ID]; !ok {
		return fmt.Errorf("squad ride %s: %w", ride.ID, entities.ErrNotFound)
	}
	r.rides[ride.ID] = copySquadRide(ride)
	return nil
}

// GetOpen returns all rides still accepting riders, oldest first
func (r *SquadRideRepository) GetOpen(ctx context.Context) ([]*entities.SquadRide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.SquadRide
	for _, ride := range r.rides {
		if ride.IsOpen() {
			out = append(out, copySquadRide(ride))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

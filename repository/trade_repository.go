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

// TradeRepository is the in-memory store for trading floor listings.
type TradeRepository struct {
	mu     sync.RWMutex
	offers map[string]*entities.TradeOffer
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository() *TradeRepository {
	return &TradeRepository{
		offers: make(map[string]*entities.TradeOffer),
	}
}

var _ interfaces.TradeRepository = (*TradeRepository)(nil)

func copyOffer(o *entities.TradeOffer) *entities.TradeOffer {
	out := *o
	if o.Item != nil {
		out.Item = copyItem(o.Item)
	}
	return &out
}

// Create stores a new offer
func (r *TradeRepository) Create(ctx context.Context, offer *entities.TradeOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.offers[offer.ID]; exists {
		return fmt.Errorf("offer %s already exists", offer.ID)
	}
	r.offers[offer.ID] = copyOffer(offer)
	return nil
}

// GetByID retrieves an offer by ID. Returns nil without error when absent.
func (r *TradeRepository) GetByID(ctx context.Context, offerID string) (*entities.TradeOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offer, ok := r.offers[offerID]
	if !ok {
		return nil, nil
	}
	return copyOffer(offer), nil
}

// Update persists changes to an offer
func (r *TradeRepository) Update(ctx context.Context, offer *entities.TradeOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offers[offer.ID]; !ok {
		return fmt.Errorf("offer %s: %w", offer.ID, entities.ErrNotFound)
	}
	r.offers[offer.ID] = copyOffer(offer)
	return nil
}

// GetActive returns all active listings, oldest first
func (r *TradeRepository) GetActive(ctx context.Context) ([]*entities.TradeOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.TradeOffer
	for _, offer := range r.offers {
		if offer.IsActive() {
			out = append(out, copyOffer(offer))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListedAt.Before(out[j].ListedAt) })
	return out, nil
}

// GetActiveOlderThan returns active listings listed at or before the cutoff
func (r *TradeRepository) GetActiveOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.TradeOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.TradeOffer
	for _, offer := range r.offers {
		if offer.IsActive() && !offer.ListedAt.After(cutoff) {
			out = append(out, copyOffer(offer))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListedAt.Before(out[j].ListedAt) })
	return out, nil
}

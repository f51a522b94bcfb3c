package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// ItemRepository is the in-memory lore item pool and mystery box catalog.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[string]*entities.LoreItem
	boxes map[string]*entities.MysteryBox
}

// NewItemRepository creates a new item repository
func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		items: make(map[string]*entities.LoreItem),
		boxes: make(map[string]*entities.MysteryBox),
	}
}

var _ interfaces.ItemRepository = (*ItemRepository)(nil)

func copyItem(li *entities.LoreItem) *entities.LoreItem {
	out := *li
	if li.Bonus != nil {
		bonus := *li.Bonus
		out.Bonus = &bonus
	}
	return &out
}

func copyBox(mb *entities.MysteryBox) *entities.MysteryBox {
	out := *mb
	out.ItemIDs = append([]string(nil), mb.ItemIDs...)
	if mb.RateOverride != nil {
		out.RateOverride = make(entities.RateTable, len(mb.RateOverride))
		for rarity, rate := range mb.RateOverride {
			out.RateOverride[rarity] = rate
		}
	}
	return &out
}

// GetByID retrieves a pool item by ID. Returns nil without error when absent.
func (r *ItemRepository) GetByID(ctx context.Context, itemID string) (*entities.LoreItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

// Save persists a pool item
func (r *ItemRepository) Save(ctx context.Context, item *entities.LoreItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = copyItem(item)
	return nil
}

// GetAll returns every item in the pool, ordered by ID
func (r *ItemRepository) GetAll(ctx context.Context) ([]*entities.LoreItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.LoreItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, copyItem(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetBox retrieves a mystery box definition by ID. Returns nil when absent.
func (r *ItemRepository) GetBox(ctx context.Context, boxID string) (*entities.MysteryBox, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	box, ok := r.boxes[boxID]
	if !ok {
		return nil, nil
	}
	return copyBox(box), nil
}

// SaveBox persists a box definition
func (r *ItemRepository) SaveBox(ctx context.Context, box *entities.MysteryBox) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.boxes[box.ID] = copyBox(box)
	return nil
}

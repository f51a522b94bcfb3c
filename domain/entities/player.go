package entities

import (
	"time"
)

// EquipCapacity is the maximum number of items a player can equip at once.
const EquipCapacity = 3

// WeeklyStats aggregates a player's betting activity for the current cycle
type WeeklyStats struct {
	BetsPlaced  int
	BetsWon     int
	BetsLost    int
	GritWagered int64
	GritWon     int64
	GritLost    int64
}

// Reset clears the stats at the start of a new weekly cycle
func (ws *WeeklyStats) Reset() {
	*ws = WeeklyStats{}
}

// PlayerAccount represents a player with their grit balance and holdings.
// Owned by the game session; mutated only by the domain services.
type PlayerAccount struct {
	ID        int64
	Name      string
	Balance   int64
	Items     []*LoreItem
	Equipped  []string // item IDs, capacity EquipCapacity
	Stats     WeeklyStats
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanAfford checks if the player has sufficient balance for an amount
func (p *PlayerAccount) CanAfford(amount int64) bool {
	return p.Balance >= amount
}

// IsBankrupt checks if the player's balance has reached zero
func (p *PlayerAccount) IsBankrupt() bool {
	return p.Balance <= 0
}

// ValidateStake checks that a stake is positive and affordable
func (p *PlayerAccount) ValidateStake(stake int64) error {
	if stake <= 0 {
		return ErrOutOfRange
	}
	if !p.CanAfford(stake) {
		return ErrInsufficientFunds
	}
	return nil
}

// AddItem appends an item to the player's collection
func (p *PlayerAccount) AddItem(item *LoreItem) {
	p.Items = append(p.Items, item)
}

// RemoveItem removes the first item with the given ID from the collection.
// Returns the removed item, or nil if the player does not own it.
func (p *PlayerAccount) RemoveItem(itemID string) *LoreItem {
	for i, item := range p.Items {
		if item.ID == itemID {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
			p.Unequip(itemID)
			return item
		}
	}
	return nil
}

// OwnsItem checks whether the player holds an item with the given ID
func (p *PlayerAccount) OwnsItem(itemID string) bool {
	for _, item := range p.Items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

// Equip marks an owned item as equipped, respecting EquipCapacity
func (p *PlayerAccount) Equip(itemID string) error {
	if !p.OwnsItem(itemID) {
		return ErrNotFound
	}
	for _, id := range p.Equipped {
		if id == itemID {
			return nil
		}
	}
	if len(p.Equipped) >= EquipCapacity {
		return ErrOutOfRange
	}
	p.Equipped = append(p.Equipped, itemID)
	return nil
}

// Unequip removes an item from the equipped subset
func (p *PlayerAccount) Unequip(itemID string) {
	for i, id := range p.Equipped {
		if id == itemID {
			p.Equipped = append(p.Equipped[:i], p.Equipped[i+1:]...)
			return
		}
	}
}

// EquippedItems returns the resolved equipped item set
func (p *PlayerAccount) EquippedItems() []*LoreItem {
	var items []*LoreItem
	for _, id := range p.Equipped {
		for _, item := range p.Items {
			if item.ID == id {
				items = append(items, item)
				break
			}
		}
	}
	return items
}

// PayoutBonus returns the combined passive payout multiplier from equipped
// items applicable to the given bet category and player.
func (p *PlayerAccount) PayoutBonus(category string) float64 {
	bonus := 1.0
	for _, item := range p.EquippedItems() {
		bonus *= item.EffectiveBonus(category, p.ID)
	}
	return bonus
}

// RecordWager updates weekly stats when a stake is escrowed
func (p *PlayerAccount) RecordWager(stake int64) {
	p.Stats.BetsPlaced++
	p.Stats.GritWagered += stake
}

// RecordWin updates weekly stats when a bet settles in the player's favor
func (p *PlayerAccount) RecordWin(amount int64) {
	p.Stats.BetsWon++
	p.Stats.GritWon += amount
}

// RecordLoss updates weekly stats when a bet settles against the player
func (p *PlayerAccount) RecordLoss(amount int64) {
	p.Stats.BetsLost++
	p.Stats.GritLost += amount
}

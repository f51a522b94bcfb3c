package entities

// Rarity is a lore item's drop tier
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RarityOrder lists tiers from most to least common; rate tables walk this
// order during a weighted draw.
var RarityOrder = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// UnlimitedSupply marks an item that never depletes
const UnlimitedSupply = -1

// ItemBonus is an optional passive payout multiplier carried by an item,
// optionally restricted to one bet category or one specific player.
type ItemBonus struct {
	Multiplier float64
	Category   string // empty = any category
	PlayerID   int64  // zero = any player
}

// LoreItem is a collectible with a finite or unlimited remaining supply.
type LoreItem struct {
	ID        string
	Name      string
	Rarity    Rarity
	Remaining int // UnlimitedSupply or a non-negative count
	Bonus     *ItemBonus
	Equipped  bool
}

// InStock checks whether the item can still be issued
func (li *LoreItem) InStock() bool {
	return li.Remaining == UnlimitedSupply || li.Remaining > 0
}

// Deplete decrements a finite supply. Supply never goes negative.
func (li *LoreItem) Deplete() error {
	if li.Remaining == UnlimitedSupply {
		return nil
	}
	if li.Remaining <= 0 {
		return ErrOutOfRange
	}
	li.Remaining--
	return nil
}

// Copy returns a fresh copy with equip state cleared, the form items take
// when issued into a player's collection.
func (li *LoreItem) Copy() *LoreItem {
	out := *li
	out.Equipped = false
	if li.Bonus != nil {
		bonus := *li.Bonus
		out.Bonus = &bonus
	}
	return &out
}

// EffectiveBonus returns the item's payout multiplier when its restrictions
// match the given category and player, otherwise 1.
func (li *LoreItem) EffectiveBonus(category string, playerID int64) float64 {
	if li.Bonus == nil {
		return 1.0
	}
	if li.Bonus.Category != "" && li.Bonus.Category != category {
		return 1.0
	}
	if li.Bonus.PlayerID != 0 && li.Bonus.PlayerID != playerID {
		return 1.0
	}
	return li.Bonus.Multiplier
}

// RateTable maps rarities to drop percentages. A well-formed table sums to 100.
type RateTable map[Rarity]float64

// Sum totals the table's percentages
func (rt RateTable) Sum() float64 {
	var sum float64
	for _, rate := range rt {
		sum += rate
	}
	return sum
}

// Valid checks the table sums to 100 (within float tolerance)
func (rt RateTable) Valid() bool {
	sum := rt.Sum()
	return sum > 99.999 && sum < 100.001
}

// MysteryBox defines a drawable reward pool: an item allow-list and an
// optional rate override replacing the default rarity table.
type MysteryBox struct {
	ID           string
	Name         string
	ItemIDs      []string
	RateOverride RateTable // nil = use the default table
}

// Allows checks the allow-list for an item ID
func (mb *MysteryBox) Allows(itemID string) bool {
	for _, id := range mb.ItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/events"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// DefaultRateTable is the standard rarity distribution, in percent.
var DefaultRateTable = entities.RateTable{
	entities.RarityCommon:    55,
	entities.RarityUncommon:  25,
	entities.RarityRare:      12,
	entities.RarityEpic:      6,
	entities.RarityLegendary: 2,
}

type mysteryBoxService struct {
	playerRepo interfaces.PlayerRepository
	itemRepo   interfaces.ItemRepository
	rand       interfaces.Rand
	publisher  interfaces.EventPublisher
}

// NewMysteryBoxService creates a new reward issuance service
func NewMysteryBoxService(
	playerRepo interfaces.PlayerRepository,
	itemRepo interfaces.ItemRepository,
	rand interfaces.Rand,
	publisher interfaces.EventPublisher,
) interfaces.MysteryBoxService {
	return &mysteryBoxService{
		playerRepo: playerRepo,
		itemRepo:   itemRepo,
		rand:       rand,
		publisher:  publisher,
	}
}

// drawRarity walks the cumulative drop rates against one random sample
func drawRarity(table entities.RateTable, sample float64) entities.Rarity {
	roll := sample * 100
	var cumulative float64
	for _, rarity := range entities.RarityOrder {
		cumulative += table[rarity]
		if roll < cumulative {
			return rarity
		}
	}
	// Float dust at the top of the walk lands on the rarest tier.
	return entities.RarityOrder[len(entities.RarityOrder)-1]
}

// Open draws one item from the box into the player's collection. The draw
// never fails for a well-formed, non-empty box: if nothing matches the drawn
// rarity it falls back to any in-stock allowed item, and an entirely
// out-of-stock box yields a nil item.
func (s *mysteryBoxService) Open(ctx context.Context, playerID int64, boxID string) (*interfaces.BoxDraw, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, fmt.Errorf("player %d: %w", playerID, entities.ErrNotFound)
	}

	box, err := s.itemRepo.GetBox(ctx, boxID)
	if err != nil {
		return nil, fmt.Errorf("failed to get box: %w", err)
	}
	if box == nil {
		return nil, fmt.Errorf("box %s: %w", boxID, entities.ErrNotFound)
	}

	table := DefaultRateTable
	if box.RateOverride != nil {
		if !box.RateOverride.Valid() {
			return nil, fmt.Errorf("box %s rate override sums to %.2f, not 100: %w", boxID, box.RateOverride.Sum(), entities.ErrOutOfRange)
		}
		table = box.RateOverride
	}
	rarity := drawRarity(table, s.rand.Float64())

	pool := make([]*entities.LoreItem, 0, len(box.ItemIDs))
	for _, itemID := range box.ItemIDs {
		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to get item %s: %w", itemID, err)
		}
		if item != nil && item.InStock() {
			pool = append(pool, item)
		}
	}

	candidates := make([]*entities.LoreItem, 0, len(pool))
	for _, item := range pool {
		if item.Rarity == rarity {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		// Drawn rarity depleted; fall back to anything still in stock.
		candidates = pool
	}

	draw := &interfaces.BoxDraw{Rarity: rarity}
	if len(candidates) == 0 {
		return draw, nil
	}

	chosen := candidates[int(s.rand.Float64()*float64(len(candidates)))%len(candidates)]
	if err := chosen.Deplete(); err != nil {
		return nil, fmt.Errorf("failed to deplete supply of %s: %w", chosen.ID, err)
	}
	if err := s.itemRepo.Save(ctx, chosen); err != nil {
		return nil, fmt.Errorf("failed to save item supply: %w", err)
	}

	issued := chosen.Copy()
	draw.Item = issued
	player.AddItem(issued)
	if err := s.playerRepo.Save(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	if err := s.publisher.Publish(events.BoxOpenedEvent{
		PlayerID: playerID,
		BoxID:    boxID,
		ItemID:   issued.ID,
		Rarity:   issued.Rarity,
	}); err != nil {
		log.WithError(err).Error("Failed to publish box opened event")
	}

	log.WithFields(log.Fields{
		"playerID": playerID,
		"boxID":    boxID,
		"itemID":   issued.ID,
		"rarity":   issued.Rarity,
	}).Debug("Mystery box opened")

	return draw, nil
}

// Restock raises a finite item's remaining supply
func (s *mysteryBoxService) Restock(ctx context.Context, itemID string, count int) error {
	if count <= 0 {
		return fmt.Errorf("restock count must be positive: %w", entities.ErrOutOfRange)
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("item %s: %w", itemID, entities.ErrNotFound)
	}
	if item.Remaining == entities.UnlimitedSupply {
		return nil
	}
	item.Remaining += count
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

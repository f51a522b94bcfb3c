package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/config"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/infrastructure"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/repository"
)

func TestTax(t *testing.T) {
	assert.Equal(t, int64(10), Tax(100, 0.1))
	assert.Equal(t, int64(0), Tax(5, 0.1)) // floors toward zero
	assert.Equal(t, int64(99), Tax(999, 0.1))
	assert.Equal(t, int64(0), Tax(100, 0))
}

type tradingFixture struct {
	service     interfaces.TradingService
	playerRepo  *repository.PlayerRepository
	tradeRepo   *repository.TradeRepository
	historyRepo *repository.GritHistoryRepository
}

func newTradingFixture() *tradingFixture {
	f := &tradingFixture{
		playerRepo:  repository.NewPlayerRepository(),
		tradeRepo:   repository.NewTradeRepository(),
		historyRepo: repository.NewGritHistoryRepository(),
	}
	f.service = NewTradingService(
		f.playerRepo,
		f.tradeRepo,
		f.historyRepo,
		infrastructure.NewNoopEventPublisher(),
	)
	return f
}

// createSeller makes a player holding one tradeable item.
func (f *tradingFixture) createSeller(t *testing.T, id, balance int64, itemID string) {
	t.Helper()
	ctx := context.Background()
	player, err := f.playerRepo.Create(ctx, id, "seller", balance)
	require.NoError(t, err)
	player.AddItem(&entities.LoreItem{
		ID:        itemID,
		Name:      "Cursed Couch Cushion",
		Rarity:    entities.RarityRare,
		Remaining: 1,
	})
	require.NoError(t, f.playerRepo.Save(ctx, player))
}

func TestTradingService_List(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newTradingFixture()
	f.createSeller(t, 1, 1000, "cushion")

	offer, err := f.service.List(ctx, 1, "cushion", 500)

	require.NoError(t, err)
	assert.Equal(t, entities.TradeStatusActive, offer.Status)
	assert.Equal(t, int64(500), offer.Price)
	require.NotNil(t, offer.Item)
	assert.Equal(t, "cushion", offer.Item.ID)

	// The item is escrowed out of the seller's collection.
	seller, err := f.playerRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, seller.Items)
}

func TestTradingService_List_Rejections(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()

	t.Run("price below the band", func(t *testing.T) {
		f := newTradingFixture()
		f.createSeller(t, 1, 1000, "cushion")
		_, err := f.service.List(ctx, 1, "cushion", 5)
		assert.ErrorIs(t, err, entities.ErrOutOfRange)
	})

	t.Run("price above the band", func(t *testing.T) {
		f := newTradingFixture()
		f.createSeller(t, 1, 1000, "cushion")
		_, err := f.service.List(ctx, 1, "cushion", 200000)
		assert.ErrorIs(t, err, entities.ErrOutOfRange)
	})

	t.Run("item not owned", func(t *testing.T) {
		f := newTradingFixture()
		f.createSeller(t, 1, 1000, "cushion")
		_, err := f.service.List(ctx, 1, "someone-elses", 500)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestTradingService_Purchase(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newTradingFixture()
	f.createSeller(t, 1, 1000, "cushion")
	_, err := f.playerRepo.Create(ctx, 2, "buyer", 1000)
	require.NoError(t, err)
	offer, err := f.service.List(ctx, 1, "cushion", 500)
	require.NoError(t, err)

	receipt, err := f.service.Purchase(ctx, offer.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(500), receipt.Price)
	assert.Equal(t, int64(50), receipt.Tax) // 10% of 500
	assert.Equal(t, int64(500), receipt.Proceeds)
	require.NotNil(t, receipt.Item)
	assert.Equal(t, "cushion", receipt.Item.ID)

	buyer, err := f.playerRepo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(450), buyer.Balance) // debited price plus tax
	require.Len(t, buyer.Items, 1)
	assert.Equal(t, "cushion", buyer.Items[0].ID)

	seller, err := f.playerRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), seller.Balance) // credited price, tax burned

	stored, err := f.tradeRepo.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TradeStatusSold, stored.Status)

	buyerHistory, err := f.historyRepo.GetByPlayer(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, buyerHistory, 1)
	assert.Equal(t, entities.TransactionTypeTradePurchase, buyerHistory[0].TransactionType)
	assert.Equal(t, int64(-550), buyerHistory[0].ChangeAmount)

	sellerHistory, err := f.historyRepo.GetByPlayer(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, sellerHistory, 1)
	assert.Equal(t, entities.TransactionTypeTradeProceeds, sellerHistory[0].TransactionType)
	assert.Equal(t, int64(500), sellerHistory[0].ChangeAmount)

	t.Run("sold offer cannot be bought again", func(t *testing.T) {
		_, err := f.service.Purchase(ctx, offer.ID, 2)
		assert.ErrorIs(t, err, entities.ErrAlreadyResolved)
	})
}

func TestTradingService_Purchase_Rejections(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newTradingFixture()
	f.createSeller(t, 1, 1000, "cushion")
	offer, err := f.service.List(ctx, 1, "cushion", 500)
	require.NoError(t, err)

	t.Run("self purchase", func(t *testing.T) {
		_, err := f.service.Purchase(ctx, offer.ID, 1)
		assert.ErrorIs(t, err, entities.ErrInvalidTarget)
	})

	t.Run("cannot afford price plus tax", func(t *testing.T) {
		_, err := f.playerRepo.Create(ctx, 2, "broke buyer", 540)
		require.NoError(t, err)
		_, err = f.service.Purchase(ctx, offer.ID, 2)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)

		// Rejection leaves the buyer and offer untouched.
		buyer, err := f.playerRepo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(540), buyer.Balance)
		stored, err := f.tradeRepo.GetByID(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.TradeStatusActive, stored.Status)
	})

	t.Run("unknown offer", func(t *testing.T) {
		_, err := f.service.Purchase(ctx, "no-such-offer", 2)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestTradingService_Cancel(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newTradingFixture()
	f.createSeller(t, 1, 1000, "cushion")
	offer, err := f.service.List(ctx, 1, "cushion", 500)
	require.NoError(t, err)

	t.Run("seller only", func(t *testing.T) {
		err := f.service.Cancel(ctx, offer.ID, 2)
		assert.ErrorIs(t, err, entities.ErrInvalidTarget)
	})

	t.Run("cancel returns the item", func(t *testing.T) {
		require.NoError(t, f.service.Cancel(ctx, offer.ID, 1))

		seller, err := f.playerRepo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, seller.Items, 1)
		assert.Equal(t, "cushion", seller.Items[0].ID)

		stored, err := f.tradeRepo.GetByID(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.TradeStatusCancelled, stored.Status)
	})

	t.Run("cancel twice fails", func(t *testing.T) {
		err := f.service.Cancel(ctx, offer.ID, 1)
		assert.ErrorIs(t, err, entities.ErrAlreadyResolved)
	})
}

func TestTradingService_SweepExpired(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newTradingFixture()
	f.createSeller(t, 1, 1000, "cushion")

	// One stale listing past the 72h TTL and one fresh listing.
	require.NoError(t, f.tradeRepo.Create(ctx, &entities.TradeOffer{
		ID:       "stale",
		SellerID: 1,
		Item:     &entities.LoreItem{ID: "dusty", Rarity: entities.RarityCommon, Remaining: 1},
		Price:    100,
		Status:   entities.TradeStatusActive,
		ListedAt: time.Now().Add(-100 * time.Hour),
	}))
	require.NoError(t, f.tradeRepo.Create(ctx, &entities.TradeOffer{
		ID:       "fresh",
		SellerID: 1,
		Item:     &entities.LoreItem{ID: "new", Rarity: entities.RarityCommon, Remaining: 1},
		Price:    100,
		Status:   entities.TradeStatusActive,
		ListedAt: time.Now(),
	}))

	expired, err := f.service.SweepExpired(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	stale, err := f.tradeRepo.GetByID(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, entities.TradeStatusExpired, stale.Status)

	fresh, err := f.tradeRepo.GetByID(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, entities.TradeStatusActive, fresh.Status)

	// The stale item went home to its seller.
	seller, err := f.playerRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	itemIDs := make([]string, 0, len(seller.Items))
	for _, item := range seller.Items {
		itemIDs = append(itemIDs, item.ID)
	}
	assert.Contains(t, itemIDs, "dusty")
}

func TestTradingService_Purchase_ExpiredListing(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newTradingFixture()
	f.createSeller(t, 1, 1000, "cushion")
	_, err := f.playerRepo.Create(ctx, 2, "buyer", 1000)
	require.NoError(t, err)

	offer, err := f.service.List(ctx, 1, "cushion", 500)
	require.NoError(t, err)

	// Backdate the listing past its TTL; the sweep has not run yet.
	stale, err := f.tradeRepo.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	stale.ListedAt = time.Now().Add(-100 * time.Hour)
	require.NoError(t, f.tradeRepo.Update(ctx, stale))

	_, err = f.service.Purchase(ctx, offer.ID, 2)
	assert.ErrorIs(t, err, entities.ErrWindowClosed)
}

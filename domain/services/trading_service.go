package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/config"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/events"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/utils"
)

type tradingService struct {
	config      *config.Config
	playerRepo  interfaces.PlayerRepository
	tradeRepo   interfaces.TradeRepository
	historyRepo interfaces.GritHistoryRepository
	publisher   interfaces.EventPublisher
}

// NewTradingService creates a new trading floor service
func NewTradingService(
	playerRepo interfaces.PlayerRepository,
	tradeRepo interfaces.TradeRepository,
	historyRepo interfaces.GritHistoryRepository,
	publisher interfaces.EventPublisher,
) interfaces.TradingService {
	return &tradingService{
		config:      config.Get(),
		playerRepo:  playerRepo,
		tradeRepo:   tradeRepo,
		historyRepo: historyRepo,
		publisher:   publisher,
	}
}

// Tax computes the house cut on a purchase price
func Tax(price int64, rate float64) int64 {
	return int64(math.Floor(float64(price) * rate))
}

// List escrows a seller's item into a new offer. The price must fall inside
// the configured band.
func (s *tradingService) List(ctx context.Context, sellerID int64, itemID string, price int64) (*entities.TradeOffer, error) {
	if price < s.config.TradeMinPrice || price > s.config.TradeMaxPrice {
		return nil, fmt.Errorf("price %d outside [%d, %d]: %w",
			price, s.config.TradeMinPrice, s.config.TradeMaxPrice, entities.ErrOutOfRange)
	}

	seller, err := s.playerRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	if seller == nil {
		return nil, fmt.Errorf("seller %d: %w", sellerID, entities.ErrNotFound)
	}

	item := seller.RemoveItem(itemID)
	if item == nil {
		return nil, fmt.Errorf("seller does not own item %s: %w", itemID, entities.ErrNotFound)
	}

	offer := &entities.TradeOffer{
		ID:       uuid.New().String(),
		SellerID: sellerID,
		Item:     item,
		Price:    price,
		Status:   entities.TradeStatusActive,
		ListedAt: time.Now(),
	}

	if err := s.playerRepo.Save(ctx, seller); err != nil {
		return nil, fmt.Errorf("failed to save seller: %w", err)
	}
	if err := s.tradeRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	log.WithFields(log.Fields{
		"offerID":  offer.ID,
		"sellerID": sellerID,
		"itemID":   itemID,
		"price":    price,
	}).Debug("Item listed on trading floor")

	return offer, nil
}

// Purchase buys an active offer. The buyer is debited price plus tax and the
// seller credited the proceeds in the same operation; an unaffordable
// purchase is rejected with no mutation at all.
func (s *tradingService) Purchase(ctx context.Context, offerID string, buyerID int64) (*entities.TradeReceipt, error) {
	offer, err := s.tradeRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if offer == nil {
		return nil, fmt.Errorf("offer %s: %w", offerID, entities.ErrNotFound)
	}
	if !offer.IsActive() {
		return nil, fmt.Errorf("offer %s is %s: %w", offerID, offer.Status, entities.ErrAlreadyResolved)
	}
	if offer.ExpiredBy(time.Now(), s.config.ListingTTL) {
		return nil, fmt.Errorf("offer %s has expired: %w", offerID, entities.ErrWindowClosed)
	}
	if offer.SellerID == buyerID {
		return nil, fmt.Errorf("cannot buy your own listing: %w", entities.ErrInvalidTarget)
	}

	buyer, err := s.playerRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer: %w", err)
	}
	if buyer == nil {
		return nil, fmt.Errorf("buyer %d: %w", buyerID, entities.ErrNotFound)
	}
	seller, err := s.playerRepo.GetByID(ctx, offer.SellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	if seller == nil {
		return nil, fmt.Errorf("seller %d: %w", offer.SellerID, entities.ErrNotFound)
	}

	tax := Tax(offer.Price, s.config.TradeTaxRate)
	totalCost := offer.Price + tax
	if !buyer.CanAfford(totalCost) {
		return nil, fmt.Errorf("need %s, have %s: %w",
			utils.FormatGrit(totalCost), utils.FormatGrit(buyer.Balance), entities.ErrInsufficientFunds)
	}

	buyerBalance := buyer.Balance - totalCost
	if err := s.playerRepo.UpdateBalance(ctx, buyerID, buyerBalance); err != nil {
		return nil, fmt.Errorf("failed to debit buyer: %w", err)
	}
	if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
		PlayerID:        buyerID,
		BalanceBefore:   buyer.Balance,
		BalanceAfter:    buyerBalance,
		ChangeAmount:    -totalCost,
		TransactionType: entities.TransactionTypeTradePurchase,
		RelatedID:       offer.ID,
		Metadata: map[string]any{
			"price": offer.Price,
			"tax":   tax,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	buyer.Balance = buyerBalance
	buyer.AddItem(offer.Item)
	if err := s.playerRepo.Save(ctx, buyer); err != nil {
		return nil, fmt.Errorf("failed to save buyer: %w", err)
	}

	sellerBalance := seller.Balance + offer.Price
	if err := s.playerRepo.UpdateBalance(ctx, offer.SellerID, sellerBalance); err != nil {
		return nil, fmt.Errorf("failed to credit seller: %w", err)
	}
	if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
		PlayerID:        offer.SellerID,
		BalanceBefore:   seller.Balance,
		BalanceAfter:    sellerBalance,
		ChangeAmount:    offer.Price,
		TransactionType: entities.TransactionTypeTradeProceeds,
		RelatedID:       offer.ID,
	}); err != nil {
		return nil, fmt.Errorf("failed to record proceeds: %w", err)
	}

	offer.Status = entities.TradeStatusSold
	if err := s.tradeRepo.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	if err := s.publisher.Publish(events.TradeCompletedEvent{
		OfferID:  offer.ID,
		BuyerID:  buyerID,
		SellerID: offer.SellerID,
		Price:    offer.Price,
		Tax:      tax,
	}); err != nil {
		log.WithError(err).Error("Failed to publish trade completed event")
	}

	return &entities.TradeReceipt{
		OfferID:  offer.ID,
		BuyerID:  buyerID,
		SellerID: offer.SellerID,
		Price:    offer.Price,
		Tax:      tax,
		Proceeds: offer.Price,
		Item:     offer.Item,
	}, nil
}

// Cancel withdraws an active offer and returns the item. Seller only.
func (s *tradingService) Cancel(ctx context.Context, offerID string, sellerID int64) error {
	offer, err := s.tradeRepo.GetByID(ctx, offerID)
	if err != nil {
		return fmt.Errorf("failed to get offer: %w", err)
	}
	if offer == nil {
		return fmt.Errorf("offer %s: %w", offerID, entities.ErrNotFound)
	}
	if offer.SellerID != sellerID {
		return fmt.Errorf("only the seller can cancel: %w", entities.ErrInvalidTarget)
	}
	if !offer.IsActive() {
		return fmt.Errorf("offer %s is %s: %w", offerID, offer.Status, entities.ErrAlreadyResolved)
	}

	seller, err := s.playerRepo.GetByID(ctx, sellerID)
	if err != nil {
		return fmt.Errorf("failed to get seller: %w", err)
	}
	seller.AddItem(offer.Item)
	if err := s.playerRepo.Save(ctx, seller); err != nil {
		return fmt.Errorf("failed to save seller: %w", err)
	}

	offer.Status = entities.TradeStatusCancelled
	if err := s.tradeRepo.Update(ctx, offer); err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}
	return nil
}

// SweepExpired prunes listings inactive beyond the configured duration,
// returning each item to its seller. Returns the number of offers expired.
func (s *tradingService) SweepExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.config.ListingTTL)
	stale, err := s.tradeRepo.GetActiveOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to get stale offers: %w", err)
	}

	expired := 0
	for _, offer := range stale {
		seller, err := s.playerRepo.GetByID(ctx, offer.SellerID)
		if err != nil {
			return expired, fmt.Errorf("failed to get seller %d: %w", offer.SellerID, err)
		}
		if seller != nil {
			seller.AddItem(offer.Item)
			if err := s.playerRepo.Save(ctx, seller); err != nil {
				return expired, fmt.Errorf("failed to save seller %d: %w", offer.SellerID, err)
			}
		}
		offer.Status = entities.TradeStatusExpired
		if err := s.tradeRepo.Update(ctx, offer); err != nil {
			return expired, fmt.Errorf("failed to update offer %s: %w", offer.ID, err)
		}
		expired++
	}

	if expired > 0 {
		log.WithField("count", expired).Info("Swept expired trade listings")
	}
	return expired, nil
}

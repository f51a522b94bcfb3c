package entities

import "time"

// TradeStatus represents the lifecycle of a listing
type TradeStatus string

const (
	TradeStatusActive    TradeStatus = "active"
	TradeStatusSold      TradeStatus = "sold"
	TradeStatusCancelled TradeStatus = "cancelled"
	TradeStatusExpired   TradeStatus = "expired"
)

// TradeOffer is an escrowed peer listing on the trading floor. The item is
// held by the offer while active and returned on cancellation or expiry.
type TradeOffer struct {
	ID       string
	SellerID int64
	Item     *LoreItem
	Price    int64
	Status   TradeStatus
	ListedAt time.Time
}

// IsActive checks whether the offer can still be purchased or cancelled
func (o *TradeOffer) IsActive() bool {
	return o.Status == TradeStatusActive
}

// ExpiredBy checks whether an active listing has outlived the given duration
func (o *TradeOffer) ExpiredBy(now time.Time, ttl time.Duration) bool {
	return o.IsActive() && now.Sub(o.ListedAt) > ttl
}

// TradeReceipt reports the settled amounts of a completed purchase.
type TradeReceipt struct {
	OfferID  string
	BuyerID  int64
	SellerID int64
	Price    int64
	Tax      int64
	Proceeds int64
	Item     *LoreItem
}

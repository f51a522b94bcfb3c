package entities

// TransactionType represents the type of grit balance change
type TransactionType string

// All transaction types supported by the settlement core
const (
	// Escrow transactions (stake leaves the balance when a bet is placed)
	TransactionTypeAmbushEscrow    TransactionType = "ambush_escrow"
	TransactionTypeTribunalEscrow  TransactionType = "tribunal_escrow"
	TransactionTypeSquadRideEscrow TransactionType = "squad_ride_escrow"
	TransactionTypeSingleBetEscrow TransactionType = "single_bet_escrow"

	// Settlement transactions
	TransactionTypeAmbushWin       TransactionType = "ambush_win"
	TransactionTypeAmbushRefund    TransactionType = "ambush_refund"
	TransactionTypeSubjectTakesAll TransactionType = "subject_takes_all"
	TransactionTypeGhostingPenalty TransactionType = "ghosting_penalty"
	TransactionTypeTribunalWin     TransactionType = "tribunal_win"
	TransactionTypeSquadRideWin    TransactionType = "squad_ride_win"
	TransactionTypeSingleBetWin    TransactionType = "single_bet_win"
	TransactionTypeBetVoided       TransactionType = "bet_voided"

	// Gulag transactions
	TransactionTypeRedemptionWin TransactionType = "redemption_win"
	TransactionTypeGulagRelease  TransactionType = "gulag_release"

	// Trading floor transactions
	TransactionTypeTradePurchase TransactionType = "trade_purchase"
	TransactionTypeTradeProceeds TransactionType = "trade_proceeds"

	// System transactions
	TransactionTypeInitial TransactionType = "initial"
)

// IsEscrowType returns true if the transaction type represents a stake escrow
func (tt TransactionType) IsEscrowType() bool {
	return tt == TransactionTypeAmbushEscrow ||
		tt == TransactionTypeTribunalEscrow ||
		tt == TransactionTypeSquadRideEscrow ||
		tt == TransactionTypeSingleBetEscrow
}

// IsWinType returns true if the transaction type represents a settlement credit
func (tt TransactionType) IsWinType() bool {
	return tt == TransactionTypeAmbushWin ||
		tt == TransactionTypeSubjectTakesAll ||
		tt == TransactionTypeTribunalWin ||
		tt == TransactionTypeSquadRideWin ||
		tt == TransactionTypeSingleBetWin ||
		tt == TransactionTypeRedemptionWin
}

// IsPenaltyType returns true if the transaction type represents a penalty debit
func (tt TransactionType) IsPenaltyType() bool {
	return tt == TransactionTypeGhostingPenalty
}

// IsTradeType returns true if the transaction type is trading-floor related
func (tt TransactionType) IsTradeType() bool {
	return tt == TransactionTypeTradePurchase ||
		tt == TransactionTypeTradeProceeds
}

// IsSystemGenerated returns true if the transaction type is system-generated
func (tt TransactionType) IsSystemGenerated() bool {
	return tt == TransactionTypeInitial ||
		tt == TransactionTypeGulagRelease
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}

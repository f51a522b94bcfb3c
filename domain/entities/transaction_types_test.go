package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionType_Classification(t *testing.T) {
	tests := []struct {
		tt        TransactionType
		escrow    bool
		win       bool
		penalty   bool
		trade     bool
		generated bool
	}{
		{TransactionTypeAmbushEscrow, true, false, false, false, false},
		{TransactionTypeSingleBetEscrow, true, false, false, false, false},
		{TransactionTypeSubjectTakesAll, false, true, false, false, false},
		{TransactionTypeRedemptionWin, false, true, false, false, false},
		{TransactionTypeGhostingPenalty, false, false, true, false, false},
		{TransactionTypeTradePurchase, false, false, false, true, false},
		{TransactionTypeTradeProceeds, false, false, false, true, false},
		{TransactionTypeInitial, false, false, false, false, true},
		{TransactionTypeGulagRelease, false, false, false, false, true},
		{TransactionTypeBetVoided, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.tt), func(t *testing.T) {
			assert.Equal(t, tt.escrow, tt.tt.IsEscrowType())
			assert.Equal(t, tt.win, tt.tt.IsWinType())
			assert.Equal(t, tt.penalty, tt.tt.IsPenaltyType())
			assert.Equal(t, tt.trade, tt.tt.IsTradeType())
			assert.Equal(t, tt.generated, tt.tt.IsSystemGenerated())
		})
	}
}

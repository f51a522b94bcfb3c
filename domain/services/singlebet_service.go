package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/events"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/utils"
)

type singleBetService struct {
	playerRepo  interfaces.PlayerRepository
	betRepo     interfaces.SingleBetRepository
	historyRepo interfaces.GritHistoryRepository
	phases      interfaces.PhaseClock
	publisher   interfaces.EventPublisher
}

// NewSingleBetService creates a new standard bet service
func NewSingleBetService(
	playerRepo interfaces.PlayerRepository,
	betRepo interfaces.SingleBetRepository,
	historyRepo interfaces.GritHistoryRepository,
	phases interfaces.PhaseClock,
	publisher interfaces.EventPublisher,
) interfaces.SingleBetService {
	return &singleBetService{
		playerRepo:  playerRepo,
		betRepo:     betRepo,
		historyRepo: historyRepo,
		phases:      phases,
		publisher:   publisher,
	}
}

// Place creates an open single bet, escrowing the stake
func (s *singleBetService) Place(ctx context.Context, bettorID int64, description string, stake int64, odds int) (*entities.Bet, error) {
	if s.phases.CurrentPhase() != interfaces.PhaseBetting {
		return nil, fmt.Errorf("bets are only accepted during the betting phase: %w", entities.ErrWindowClosed)
	}
	if err := ValidateOdds(odds); err != nil {
		return nil, err
	}

	bettor, err := s.playerRepo.GetByID(ctx, bettorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bettor: %w", err)
	}
	if bettor == nil {
		return nil, fmt.Errorf("bettor %d: %w", bettorID, entities.ErrNotFound)
	}
	if err := bettor.ValidateStake(stake); err != nil {
		return nil, fmt.Errorf("stake %d: %w", stake, err)
	}

	bet := &entities.Bet{
		ID:        uuid.New().String(),
		Kind:      entities.BetKindSingle,
		BettorID:  bettorID,
		Stake:     stake,
		Odds:      odds,
		Status:    entities.BetStatusOpen,
		Evidence:  []string{description},
		CreatedAt: time.Now(),
	}

	newBalance := bettor.Balance - stake
	if err := s.playerRepo.UpdateBalance(ctx, bettorID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to escrow stake: %w", err)
	}
	if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
		PlayerID:        bettorID,
		BalanceBefore:   bettor.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    -stake,
		TransactionType: entities.TransactionTypeSingleBetEscrow,
		RelatedID:       bet.ID,
	}); err != nil {
		return nil, fmt.Errorf("failed to record escrow: %w", err)
	}
	bettor.Balance = newBalance
	bettor.RecordWager(stake)
	if err := s.playerRepo.Save(ctx, bettor); err != nil {
		return nil, fmt.Errorf("failed to update bettor stats: %w", err)
	}

	if err := s.betRepo.Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	if err := s.publisher.Publish(events.BetPlacedEvent{
		BetID:    bet.ID,
		Kind:     entities.BetKindSingle,
		BettorID: bettorID,
		Stake:    stake,
		Odds:     odds,
	}); err != nil {
		log.WithError(err).Error("Failed to publish bet placed event")
	}

	return bet, nil
}

// Resolve settles a bet won or lost
func (s *singleBetService) Resolve(ctx context.Context, betID string, won bool) (*entities.Bet, error) {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("bet %s: %w", betID, entities.ErrNotFound)
	}

	bettor, err := s.playerRepo.GetByID(ctx, bet.BettorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bettor: %w", err)
	}

	now := time.Now()
	if won {
		payout := Payout(bet.Stake, bet.Odds)
		if err := bet.Resolve(entities.BetStatusWon, now); err != nil {
			return nil, err
		}
		newBalance := bettor.Balance + payout
		if err := s.playerRepo.UpdateBalance(ctx, bet.BettorID, newBalance); err != nil {
			return nil, fmt.Errorf("failed to pay bet: %w", err)
		}
		if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
			PlayerID:        bet.BettorID,
			BalanceBefore:   bettor.Balance,
			BalanceAfter:    newBalance,
			ChangeAmount:    payout,
			TransactionType: entities.TransactionTypeSingleBetWin,
			RelatedID:       bet.ID,
		}); err != nil {
			return nil, fmt.Errorf("failed to record payout: %w", err)
		}
		bettor.Balance = newBalance
		bettor.RecordWin(payout)
	} else {
		if err := bet.Resolve(entities.BetStatusLost, now); err != nil {
			return nil, err
		}
		bettor.RecordLoss(bet.Stake)
	}
	if err := s.playerRepo.Save(ctx, bettor); err != nil {
		return nil, fmt.Errorf("failed to save bettor: %w", err)
	}
	if err := s.betRepo.Update(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to update bet: %w", err)
	}
	return bet, nil
}

// Void cancels an open bet and refunds the stake
func (s *singleBetService) Void(ctx context.Context, betID string) error {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return fmt.Errorf("bet %s: %w", betID, entities.ErrNotFound)
	}
	if err := bet.Resolve(entities.BetStatusVoided, time.Now()); err != nil {
		return err
	}

	bettor, err := s.playerRepo.GetByID(ctx, bet.BettorID)
	if err != nil {
		return fmt.Errorf("failed to get bettor: %w", err)
	}
	newBalance := bettor.Balance + bet.Stake
	if err := s.playerRepo.UpdateBalance(ctx, bet.BettorID, newBalance); err != nil {
		return fmt.Errorf("failed to refund stake: %w", err)
	}
	if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
		PlayerID:        bet.BettorID,
		BalanceBefore:   bettor.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    bet.Stake,
		TransactionType: entities.TransactionTypeBetVoided,
		RelatedID:       bet.ID,
	}); err != nil {
		return fmt.Errorf("failed to record refund: %w", err)
	}

	if err := s.betRepo.Update(ctx, bet); err != nil {
		return fmt.Errorf("failed to update bet: %w", err)
	}
	return nil
}

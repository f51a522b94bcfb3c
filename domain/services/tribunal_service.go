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

type tribunalService struct {
	config          *config.Config
	playerRepo      interfaces.PlayerRepository
	superlativeRepo interfaces.SuperlativeRepository
	historyRepo     interfaces.GritHistoryRepository
	oracle          interfaces.Oracle
	chatStore       interfaces.ChatStore
	phases          interfaces.PhaseClock
	publisher       interfaces.EventPublisher
}

// NewTribunalService creates a new tribunal superlative service
func NewTribunalService(
	playerRepo interfaces.PlayerRepository,
	superlativeRepo interfaces.SuperlativeRepository,
	historyRepo interfaces.GritHistoryRepository,
	oracle interfaces.Oracle,
	chatStore interfaces.ChatStore,
	phases interfaces.PhaseClock,
	publisher interfaces.EventPublisher,
) interfaces.TribunalService {
	return &tribunalService{
		config:          config.Get(),
		playerRepo:      playerRepo,
		superlativeRepo: superlativeRepo,
		historyRepo:     historyRepo,
		oracle:          oracle,
		chatStore:       chatStore,
		phases:          phases,
		publisher:       publisher,
	}
}

// OpenSuperlative curates a superlative via the oracle and opens it for
// voting. A zero votingClosesAt defaults to the end of the voting phase.
func (s *tribunalService) OpenSuperlative(ctx context.Context, windowStart, windowEnd time.Time, votingClosesAt time.Time) (*entities.Superlative, error) {
	transcript, err := s.chatStore.MessagesBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat store: %w", err)
	}

	suggested, err := s.oracle.Superlative(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("oracle failed to curate superlative: %w", err)
	}
	if len(suggested.Nominees) == 0 {
		return nil, fmt.Errorf("superlative has no nominees: %w", entities.ErrOutOfRange)
	}

	if votingClosesAt.IsZero() {
		votingClosesAt = s.phases.PhaseEnd(interfaces.PhaseVoting)
	}

	superlative := &entities.Superlative{
		ID:             uuid.New().String(),
		Title:          suggested.Title,
		Votes:          make(map[int64]string),
		VotingClosesAt: votingClosesAt,
		CreatedAt:      time.Now(),
	}
	for i, n := range suggested.Nominees {
		superlative.Nominees = append(superlative.Nominees, &entities.Nominee{
			ID:       uuid.New().String(),
			PlayerID: n.PlayerID,
			Odds:     ClampOdds(n.Odds, s.config.MinOdds, s.config.MaxOdds),
			Evidence: n.Evidence,
			Order:    i,
		})
	}

	if err := s.superlativeRepo.Create(ctx, superlative); err != nil {
		return nil, fmt.Errorf("failed to create superlative: %w", err)
	}

	log.WithFields(log.Fields{
		"superlativeID": superlative.ID,
		"title":         superlative.Title,
		"nominees":      len(superlative.Nominees),
	}).Info("Opened superlative for voting")

	return superlative, nil
}

// Vote records or replaces a player's vote. Votes close at the superlative's
// fixed cutoff; late votes are rejected.
func (s *tribunalService) Vote(ctx context.Context, superlativeID string, voterID int64, nomineeID string) error {
	superlative, err := s.superlativeRepo.GetByID(ctx, superlativeID)
	if err != nil {
		return fmt.Errorf("failed to get superlative: %w", err)
	}
	if superlative == nil {
		return fmt.Errorf("superlative %s: %w", superlativeID, entities.ErrNotFound)
	}
	if superlative.IsResolved() {
		return fmt.Errorf("superlative %s: %w", superlativeID, entities.ErrAlreadyResolved)
	}
	if !superlative.VotingOpen(time.Now()) {
		return fmt.Errorf("voting closed at %s: %w", superlative.VotingClosesAt.Format(time.RFC3339), entities.ErrWindowClosed)
	}
	if superlative.NomineeByID(nomineeID) == nil {
		return fmt.Errorf("nominee %s: %w", nomineeID, entities.ErrNotFound)
	}

	superlative.Votes[voterID] = nomineeID
	if err := s.superlativeRepo.Update(ctx, superlative); err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}
	return nil
}

// PlaceWager stakes grit on a nominee at the nominee's odds. Wagering is
// independent of voting; it stays open until resolution.
func (s *tribunalService) PlaceWager(ctx context.Context, superlativeID string, bettorID int64, nomineeID string, stake int64) (*entities.TribunalBet, error) {
	superlative, err := s.superlativeRepo.GetByID(ctx, superlativeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get superlative: %w", err)
	}
	if superlative == nil {
		return nil, fmt.Errorf("superlative %s: %w", superlativeID, entities.ErrNotFound)
	}
	if superlative.IsResolved() {
		return nil, fmt.Errorf("superlative %s: %w", superlativeID, entities.ErrAlreadyResolved)
	}
	nominee := superlative.NomineeByID(nomineeID)
	if nominee == nil {
		return nil, fmt.Errorf("nominee %s: %w", nomineeID, entities.ErrNotFound)
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

	bet := &entities.TribunalBet{
		Bet: entities.Bet{
			ID:        uuid.New().String(),
			Kind:      entities.BetKindTribunal,
			BettorID:  bettorID,
			Stake:     stake,
			Odds:      nominee.Odds,
			Status:    entities.BetStatusOpen,
			CreatedAt: time.Now(),
		},
		SuperlativeID: superlativeID,
		NomineeID:     nomineeID,
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
		TransactionType: entities.TransactionTypeTribunalEscrow,
		RelatedID:       bet.ID,
		Metadata: map[string]any{
			"superlative_id": superlativeID,
			"nominee_id":     nomineeID,
			"odds":           nominee.Odds,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to record escrow: %w", err)
	}
	bettor.Balance = newBalance
	bettor.RecordWager(stake)
	if err := s.playerRepo.Save(ctx, bettor); err != nil {
		return nil, fmt.Errorf("failed to update bettor stats: %w", err)
	}

	if err := s.superlativeRepo.CreateBet(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create tribunal bet: %w", err)
	}

	if err := s.publisher.Publish(events.BetPlacedEvent{
		BetID:    bet.ID,
		Kind:     entities.BetKindTribunal,
		BettorID: bettorID,
		Stake:    stake,
		Odds:     nominee.Odds,
	}); err != nil {
		log.WithError(err).Error("Failed to publish bet placed event")
	}

	return bet, nil
}

// Resolve decides the winner by vote tally and settles every wager. An exact
// tie goes to the earliest-nominated candidate.
func (s *tribunalService) Resolve(ctx context.Context, superlativeID string) (*entities.Nominee, error) {
	superlative, err := s.superlativeRepo.GetByID(ctx, superlativeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get superlative: %w", err)
	}
	if superlative == nil {
		return nil, fmt.Errorf("superlative %s: %w", superlativeID, entities.ErrNotFound)
	}
	if superlative.IsResolved() {
		return nil, fmt.Errorf("superlative %s: %w", superlativeID, entities.ErrAlreadyResolved)
	}

	winner := superlative.DecideWinner()
	if winner == nil {
		return nil, fmt.Errorf("superlative %s has no nominees: %w", superlativeID, entities.ErrOutOfRange)
	}

	bets, err := s.superlativeRepo.GetBets(ctx, superlativeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}

	now := time.Now()
	for _, bet := range bets {
		if !bet.IsOpen() {
			continue
		}
		bettor, err := s.playerRepo.GetByID(ctx, bet.BettorID)
		if err != nil {
			return nil, fmt.Errorf("failed to get bettor %d: %w", bet.BettorID, err)
		}
		if bet.NomineeID == winner.ID {
			payout := int64(math.Floor(float64(Payout(bet.Stake, bet.Odds)) * bettor.PayoutBonus("tribunal")))
			if err := bet.Resolve(entities.BetStatusWon, now); err != nil {
				return nil, err
			}
			newBalance := bettor.Balance + payout
			if err := s.playerRepo.UpdateBalance(ctx, bet.BettorID, newBalance); err != nil {
				return nil, fmt.Errorf("failed to pay wager: %w", err)
			}
			if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
				PlayerID:        bet.BettorID,
				BalanceBefore:   bettor.Balance,
				BalanceAfter:    newBalance,
				ChangeAmount:    payout,
				TransactionType: entities.TransactionTypeTribunalWin,
				RelatedID:       bet.ID,
				Metadata: map[string]any{
					"superlative_id": superlativeID,
					"nominee_id":     bet.NomineeID,
				},
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
			return nil, fmt.Errorf("failed to save bettor %d: %w", bet.BettorID, err)
		}
		if err := s.superlativeRepo.UpdateBet(ctx, bet); err != nil {
			return nil, fmt.Errorf("failed to update bet %s: %w", bet.ID, err)
		}
	}

	superlative.WinnerID = &winner.ID
	superlative.ResolvedAt = &now
	if err := s.superlativeRepo.Update(ctx, superlative); err != nil {
		return nil, fmt.Errorf("failed to update superlative: %w", err)
	}

	log.WithFields(log.Fields{
		"superlativeID": superlativeID,
		"winnerPlayer":  winner.PlayerID,
		"votes":         superlative.TallyVotes()[winner.ID],
	}).Info("Resolved superlative")

	return winner, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/config"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/events"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/utils"
)

// Escalating real-world penalties attached to repeat bankruptcies
const (
	penaltyFirstRepeat = "buys the next round of snacks"
	penaltyHardened    = "writes a public apology in the group chat"
)

type gulagService struct {
	config      *config.Config
	playerRepo  interfaces.PlayerRepository
	gulagRepo   interfaces.GulagRepository
	historyRepo interfaces.GritHistoryRepository
	oracle      interfaces.Oracle
	rand        interfaces.Rand
	publisher   interfaces.EventPublisher
}

// NewGulagService creates a new bankruptcy/redemption service
func NewGulagService(
	playerRepo interfaces.PlayerRepository,
	gulagRepo interfaces.GulagRepository,
	historyRepo interfaces.GritHistoryRepository,
	oracle interfaces.Oracle,
	rand interfaces.Rand,
	publisher interfaces.EventPublisher,
) interfaces.GulagService {
	return &gulagService{
		config:      config.Get(),
		playerRepo:  playerRepo,
		gulagRepo:   gulagRepo,
		historyRepo: historyRepo,
		oracle:      oracle,
		rand:        rand,
		publisher:   publisher,
	}
}

// CheckAndLock locks out a player whose balance reached zero and brokers
// their redemption bet. A no-op for solvent or already-locked players.
func (s *gulagService) CheckAndLock(ctx context.Context, playerID int64) (*entities.GulagState, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, fmt.Errorf("player %d: %w", playerID, entities.ErrNotFound)
	}

	state, err := s.gulagRepo.GetByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gulag state: %w", err)
	}
	if state == nil {
		state = &entities.GulagState{PlayerID: playerID, Phase: entities.GulagPhaseFree}
	}
	if !player.IsBankrupt() || state.Phase != entities.GulagPhaseFree {
		return state, nil
	}

	now := time.Now()
	state.Lock(now)

	redemption, err := s.oracle.RedemptionBet(ctx, playerID)
	if err != nil {
		// Oracle failures never block the state machine; the adapter
		// already degrades, this is a final guard.
		log.WithError(err).Warn("Oracle redemption bet failed, using fallback")
		redemption = &entities.RedemptionBet{
			Description: "double or nothing on a coin flip",
			Odds:        100,
			CreatedAt:   now,
		}
	}
	redemption.Odds = ClampOdds(redemption.Odds, s.config.MinOdds, s.config.MaxOdds)
	redemption.Stake = s.config.RedemptionStake
	redemption.Reward = s.config.RedemptionReward
	state.Redemption = redemption

	if err := s.gulagRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save gulag state: %w", err)
	}

	if err := s.publisher.Publish(events.GulagStateChangeEvent{
		PlayerID: playerID,
		OldPhase: entities.GulagPhaseFree,
		NewPhase: entities.GulagPhaseLocked,
	}); err != nil {
		log.WithError(err).Error("Failed to publish gulag state change event")
	}

	log.WithFields(log.Fields{
		"playerID":     playerID,
		"bankruptcies": state.Bankruptcies,
	}).Info("Player locked out, redemption bet brokered")

	return state, nil
}

// AttemptRedemption plays the single redemption wager. The outcome is a
// weighted coin flip at the bet's implied probability.
func (s *gulagService) AttemptRedemption(ctx context.Context, playerID int64) (*entities.GulagState, error) {
	state, err := s.gulagRepo.GetByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gulag state: %w", err)
	}
	if state == nil {
		return nil, fmt.Errorf("player %d never went bankrupt: %w", playerID, entities.ErrNotFound)
	}
	if state.IsBanned(time.Now()) {
		return nil, fmt.Errorf("player %d is serving a ban: %w", playerID, entities.ErrWindowClosed)
	}
	if !state.IsLocked() || state.Redemption == nil {
		return nil, fmt.Errorf("player %d has no pending redemption: %w", playerID, entities.ErrNoActiveBets)
	}

	priorBankruptcies := state.Bankruptcies
	won := s.rand.Float64() < ImpliedProbability(state.Redemption.Odds)
	reward := state.Redemption.Reward
	now := time.Now()

	if won {
		player, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get player: %w", err)
		}
		if err := s.playerRepo.UpdateBalance(ctx, playerID, reward); err != nil {
			return nil, fmt.Errorf("failed to credit redemption reward: %w", err)
		}
		if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
			PlayerID:        playerID,
			BalanceBefore:   player.Balance,
			BalanceAfter:    reward,
			ChangeAmount:    reward - player.Balance,
			TransactionType: entities.TransactionTypeRedemptionWin,
			Metadata: map[string]any{
				"odds":         state.Redemption.Odds,
				"bankruptcies": priorBankruptcies + 1,
			},
		}); err != nil {
			return nil, fmt.Errorf("failed to record redemption win: %w", err)
		}
		state.Bankruptcies++
		state.Release("redeemed on a winning wager")
	} else {
		duration, penalty := s.banTier(priorBankruptcies)
		state.Bankruptcies++
		state.Ban(now.Add(duration), penalty)
	}

	if err := s.gulagRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save gulag state: %w", err)
	}

	newPhase := entities.GulagPhaseFree
	if !won {
		newPhase = entities.GulagPhaseBanned
	}
	if err := s.publisher.Publish(events.GulagStateChangeEvent{
		PlayerID: playerID,
		OldPhase: entities.GulagPhaseLocked,
		NewPhase: newPhase,
	}); err != nil {
		log.WithError(err).Error("Failed to publish gulag state change event")
	}

	log.WithFields(log.Fields{
		"playerID":     playerID,
		"won":          won,
		"bankruptcies": state.Bankruptcies,
	}).Info("Redemption attempt settled")

	return state, nil
}

// banTier maps a prior-bankruptcy count to an escalating punishment
func (s *gulagService) banTier(priorBankruptcies int) (time.Duration, string) {
	switch {
	case priorBankruptcies == 0:
		return s.config.GulagBanBase, ""
	case priorBankruptcies == 1:
		return s.config.GulagBanBase, penaltyFirstRepeat
	default:
		return 2 * s.config.GulagBanBase, penaltyHardened
	}
}

// Status reports the player's position, applying lazy ban expiry: an elapsed
// ban releases the player with a small nonzero reset balance.
func (s *gulagService) Status(ctx context.Context, playerID int64) (*interfaces.GulagStatus, error) {
	state, err := s.gulagRepo.GetByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gulag state: %w", err)
	}
	if state == nil {
		return &interfaces.GulagStatus{CanPlay: true}, nil
	}

	status := &interfaces.GulagStatus{State: state}
	if state.BanExpired(time.Now()) {
		player, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get player: %w", err)
		}
		reset := s.config.GulagResetBalance
		if err := s.playerRepo.UpdateBalance(ctx, playerID, reset); err != nil {
			return nil, fmt.Errorf("failed to apply reset balance: %w", err)
		}
		if reset != player.Balance {
			if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
				PlayerID:        playerID,
				BalanceBefore:   player.Balance,
				BalanceAfter:    reset,
				ChangeAmount:    reset - player.Balance,
				TransactionType: entities.TransactionTypeGulagRelease,
			}); err != nil {
				return nil, fmt.Errorf("failed to record release: %w", err)
			}
		}
		state.Release("ban served, released with reset balance")
		if err := s.gulagRepo.Save(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to save gulag state: %w", err)
		}
		status.Released = true

		if err := s.publisher.Publish(events.GulagStateChangeEvent{
			PlayerID: playerID,
			OldPhase: entities.GulagPhaseBanned,
			NewPhase: entities.GulagPhaseFree,
		}); err != nil {
			log.WithError(err).Error("Failed to publish gulag state change event")
		}
	}

	status.CanPlay = state.Phase == entities.GulagPhaseFree
	return status, nil
}

// RapSheet returns the player's punishment log
func (s *gulagService) RapSheet(ctx context.Context, playerID int64) ([]string, error) {
	state, err := s.gulagRepo.GetByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gulag state: %w", err)
	}
	if state == nil {
		return nil, nil
	}
	return state.RapSheet, nil
}

// Roster lists every player currently locked out awaiting redemption
func (s *gulagService) Roster(ctx context.Context) ([]*entities.GulagState, error) {
	locked, err := s.gulagRepo.GetLocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked players: %w", err)
	}
	return locked, nil
}

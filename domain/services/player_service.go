package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/config"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/events"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/utils"
)

type playerService struct {
	config      *config.Config
	playerRepo  interfaces.PlayerRepository
	historyRepo interfaces.GritHistoryRepository
	publisher   interfaces.EventPublisher
}

// NewPlayerService creates a new player account service
func NewPlayerService(
	playerRepo interfaces.PlayerRepository,
	historyRepo interfaces.GritHistoryRepository,
	publisher interfaces.EventPublisher,
) interfaces.PlayerService {
	return &playerService{
		config:      config.Get(),
		playerRepo:  playerRepo,
		historyRepo: historyRepo,
		publisher:   publisher,
	}
}

// GetOrCreate returns the account, creating it with the starting balance.
// Creation writes the initial grit deposit to the ledger.
func (s *playerService) GetOrCreate(ctx context.Context, playerID int64, name string) (*entities.PlayerAccount, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player != nil {
		return player, nil
	}

	player, err = s.playerRepo.Create(ctx, playerID, name, s.config.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
		PlayerID:        playerID,
		BalanceBefore:   0,
		BalanceAfter:    s.config.StartingBalance,
		ChangeAmount:    s.config.StartingBalance,
		TransactionType: entities.TransactionTypeInitial,
	}); err != nil {
		return nil, fmt.Errorf("failed to record initial deposit: %w", err)
	}

	if err := s.publisher.Publish(events.PlayerCreatedEvent{
		PlayerID:       playerID,
		Name:           name,
		InitialBalance: s.config.StartingBalance,
	}); err != nil {
		log.WithError(err).Error("Failed to publish player created event")
	}

	log.WithFields(log.Fields{
		"playerID": playerID,
		"balance":  s.config.StartingBalance,
	}).Info("Created player account")

	return player, nil
}

// Leaderboard returns accounts ordered by balance, highest first
func (s *playerService) Leaderboard(ctx context.Context, limit int) ([]*entities.PlayerAccount, error) {
	players, err := s.playerRepo.GetTopBalances(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top balances: %w", err)
	}
	return players, nil
}

// History returns a player's grit ledger entries, newest first
func (s *playerService) History(ctx context.Context, playerID int64, limit int) ([]*entities.GritHistory, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, fmt.Errorf("player %d: %w", playerID, entities.ErrNotFound)
	}
	return s.historyRepo.GetByPlayer(ctx, playerID, limit)
}

// ResetWeeklyStats clears every player's weekly wager counters
func (s *playerService) ResetWeeklyStats(ctx context.Context) error {
	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	for _, player := range players {
		player.Stats.Reset()
		if err := s.playerRepo.Save(ctx, player); err != nil {
			return fmt.Errorf("failed to save player %d: %w", player.ID, err)
		}
	}
	return nil
}

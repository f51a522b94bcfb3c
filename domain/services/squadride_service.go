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

type squadRideService struct {
	config      *config.Config
	playerRepo  interfaces.PlayerRepository
	rideRepo    interfaces.SquadRideRepository
	historyRepo interfaces.GritHistoryRepository
	phases      interfaces.PhaseClock
	publisher   interfaces.EventPublisher
}

// NewSquadRideService creates a new squad ride parlay service
func NewSquadRideService(
	playerRepo interfaces.PlayerRepository,
	rideRepo interfaces.SquadRideRepository,
	historyRepo interfaces.GritHistoryRepository,
	phases interfaces.PhaseClock,
	publisher interfaces.EventPublisher,
) interfaces.SquadRideService {
	return &squadRideService{
		config:      config.Get(),
		playerRepo:  playerRepo,
		rideRepo:    rideRepo,
		historyRepo: historyRepo,
		phases:      phases,
		publisher:   publisher,
	}
}

// Create proposes a parlay. The combined odds must land inside the configured
// band or creation is rejected.
func (s *squadRideService) Create(ctx context.Context, creatorID int64, legs []entities.SquadRideLeg) (*entities.SquadRide, error) {
	if s.phases.CurrentPhase() != interfaces.PhaseBetting {
		return nil, fmt.Errorf("squad rides are only proposed during the betting phase: %w", entities.ErrWindowClosed)
	}
	if len(legs) < 2 {
		return nil, fmt.Errorf("a parlay needs at least 2 legs: %w", entities.ErrOutOfRange)
	}

	creator, err := s.playerRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	if creator == nil {
		return nil, fmt.Errorf("creator %d: %w", creatorID, entities.ErrNotFound)
	}

	oddsList := make([]int, 0, len(legs))
	for _, leg := range legs {
		oddsList = append(oddsList, leg.Odds)
	}
	totalOdds, err := CombineParlayOdds(oddsList)
	if err != nil {
		return nil, fmt.Errorf("failed to combine parlay odds: %w", err)
	}
	if totalOdds < s.config.MinParlayOdds || totalOdds > s.config.MaxParlayOdds {
		return nil, fmt.Errorf("combined odds %+d outside [%+d, %+d]: %w",
			totalOdds, s.config.MinParlayOdds, s.config.MaxParlayOdds, entities.ErrOutOfRange)
	}

	ride := &entities.SquadRide{
		ID:        uuid.New().String(),
		CreatorID: creatorID,
		TotalOdds: totalOdds,
		State:     entities.SquadRideStateOpen,
		CreatedAt: time.Now(),
	}
	for i := range legs {
		leg := legs[i]
		leg.ID = uuid.New().String()
		leg.Result = nil
		ride.Legs = append(ride.Legs, &leg)
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("failed to create squad ride: %w", err)
	}

	log.WithFields(log.Fields{
		"rideID":    ride.ID,
		"creatorID": creatorID,
		"legs":      len(ride.Legs),
		"totalOdds": ride.TotalOdds,
	}).Info("Created squad ride")

	return ride, nil
}

// Join stakes a rider into an open ride. Each rider's multiplier is fixed at
// join time from the number of riders already aboard; duplicate rides by the
// same player are rejected.
func (s *squadRideService) Join(ctx context.Context, rideID string, playerID int64, stake int64) (*entities.SquadRideRider, error) {
	if s.phases.CurrentPhase() != interfaces.PhaseBetting {
		return nil, fmt.Errorf("squad rides only accept riders during the betting phase: %w", entities.ErrWindowClosed)
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}
	if ride == nil {
		return nil, fmt.Errorf("ride %s: %w", rideID, entities.ErrNotFound)
	}
	if !ride.IsOpen() {
		return nil, fmt.Errorf("ride %s: %w", rideID, entities.ErrAlreadyResolved)
	}
	if ride.HasRider(playerID) {
		return nil, fmt.Errorf("player %d already riding: %w", playerID, entities.ErrInvalidTarget)
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, fmt.Errorf("player %d: %w", playerID, entities.ErrNotFound)
	}
	if err := player.ValidateStake(stake); err != nil {
		return nil, fmt.Errorf("stake %d: %w", stake, err)
	}

	rider := &entities.SquadRideRider{
		PlayerID:  playerID,
		Stake:     stake,
		JoinOrder: len(ride.Riders),
		JoinedAt:  time.Now(),
	}

	newBalance := player.Balance - stake
	if err := s.playerRepo.UpdateBalance(ctx, playerID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to escrow stake: %w", err)
	}
	if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
		PlayerID:        playerID,
		BalanceBefore:   player.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    -stake,
		TransactionType: entities.TransactionTypeSquadRideEscrow,
		RelatedID:       ride.ID,
		Metadata: map[string]any{
			"join_order": rider.JoinOrder,
			"multiplier": rider.Multiplier(),
			"total_odds": ride.TotalOdds,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to record escrow: %w", err)
	}
	player.Balance = newBalance
	player.RecordWager(stake)
	if err := s.playerRepo.Save(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player stats: %w", err)
	}

	ride.Riders = append(ride.Riders, rider)
	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, fmt.Errorf("failed to update ride: %w", err)
	}

	if err := s.publisher.Publish(events.BetPlacedEvent{
		BetID:    ride.ID,
		Kind:     entities.BetKindSquadRide,
		BettorID: playerID,
		Stake:    stake,
		Odds:     ride.TotalOdds,
	}); err != nil {
		log.WithError(err).Error("Failed to publish bet placed event")
	}

	return rider, nil
}

// Resolve settles the ride. Every leg needs a result; the parlay succeeds
// only if every leg succeeds.
func (s *squadRideService) Resolve(ctx context.Context, rideID string, legResults map[string]bool) (*entities.SquadRide, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}
	if ride == nil {
		return nil, fmt.Errorf("ride %s: %w", rideID, entities.ErrNotFound)
	}
	if !ride.IsOpen() {
		return nil, fmt.Errorf("ride %s: %w", rideID, entities.ErrAlreadyResolved)
	}

	for legID, result := range legResults {
		leg := ride.LegByID(legID)
		if leg == nil {
			return nil, fmt.Errorf("unknown leg %s: %w", legID, entities.ErrOutOfRange)
		}
		r := result
		leg.Result = &r
	}
	if !ride.AllLegsDecided() {
		return nil, fmt.Errorf("ride %s has undecided legs: %w", rideID, entities.ErrOutOfRange)
	}

	now := time.Now()
	won := ride.AllLegsWon()
	for _, rider := range ride.Riders {
		player, err := s.playerRepo.GetByID(ctx, rider.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get rider %d: %w", rider.PlayerID, err)
		}
		if won {
			payout := int64(math.Floor(float64(Payout(rider.Stake, ride.TotalOdds)) * rider.Multiplier()))
			rider.Payout = &payout
			newBalance := player.Balance + payout
			if err := s.playerRepo.UpdateBalance(ctx, rider.PlayerID, newBalance); err != nil {
				return nil, fmt.Errorf("failed to pay rider: %w", err)
			}
			if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
				PlayerID:        rider.PlayerID,
				BalanceBefore:   player.Balance,
				BalanceAfter:    newBalance,
				ChangeAmount:    payout,
				TransactionType: entities.TransactionTypeSquadRideWin,
				RelatedID:       ride.ID,
				Metadata: map[string]any{
					"stake":      rider.Stake,
					"multiplier": rider.Multiplier(),
					"total_odds": ride.TotalOdds,
				},
			}); err != nil {
				return nil, fmt.Errorf("failed to record payout: %w", err)
			}
			player.Balance = newBalance
			player.RecordWin(payout)
		} else {
			zero := int64(0)
			rider.Payout = &zero
			player.RecordLoss(rider.Stake)
		}
		if err := s.playerRepo.Save(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to save rider %d: %w", rider.PlayerID, err)
		}
	}

	if won {
		ride.State = entities.SquadRideStateWon
	} else {
		ride.State = entities.SquadRideStateLost
	}
	ride.ResolvedAt = &now
	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, fmt.Errorf("failed to update ride: %w", err)
	}

	log.WithFields(log.Fields{
		"rideID": rideID,
		"won":    won,
		"riders": len(ride.Riders),
	}).Info("Resolved squad ride")

	return ride, nil
}

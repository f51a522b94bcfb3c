package services

import (
	"context"
	"errors"
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

type ambushService struct {
	config      *config.Config
	playerRepo  interfaces.PlayerRepository
	ambushRepo  interfaces.AmbushRepository
	historyRepo interfaces.GritHistoryRepository
	activity    interfaces.ActivityService
	oracle      interfaces.Oracle
	chatStore   interfaces.ChatStore
	phases      interfaces.PhaseClock
	publisher   interfaces.EventPublisher
}

// NewAmbushService creates a new ambush bet service
func NewAmbushService(
	playerRepo interfaces.PlayerRepository,
	ambushRepo interfaces.AmbushRepository,
	historyRepo interfaces.GritHistoryRepository,
	activity interfaces.ActivityService,
	oracle interfaces.Oracle,
	chatStore interfaces.ChatStore,
	phases interfaces.PhaseClock,
	publisher interfaces.EventPublisher,
) interfaces.AmbushService {
	return &ambushService{
		config:      config.Get(),
		playerRepo:  playerRepo,
		ambushRepo:  ambushRepo,
		historyRepo: historyRepo,
		activity:    activity,
		oracle:      oracle,
		chatStore:   chatStore,
		phases:      phases,
		publisher:   publisher,
	}
}

// PlaceAmbush creates an open ambush bet, escrowing the stake immediately
func (s *ambushService) PlaceAmbush(ctx context.Context, bettorID, targetID int64, category, description string, stake int64, odds int) (*entities.AmbushBet, error) {
	if s.phases.CurrentPhase() != interfaces.PhaseBetting {
		return nil, fmt.Errorf("ambush bets are only accepted during the betting phase: %w", entities.ErrWindowClosed)
	}
	if err := ValidateOdds(odds); err != nil {
		return nil, err
	}
	if bettorID == targetID {
		return nil, fmt.Errorf("cannot ambush yourself: %w", entities.ErrInvalidTarget)
	}

	target, err := s.playerRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get target: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("target %d: %w", targetID, entities.ErrNotFound)
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

	bet := &entities.AmbushBet{
		Bet: entities.Bet{
			ID:        uuid.New().String(),
			Kind:      entities.BetKindAmbush,
			BettorID:  bettorID,
			Stake:     stake,
			Odds:      odds,
			Status:    entities.BetStatusOpen,
			CreatedAt: time.Now(),
		},
		TargetID:    targetID,
		Category:    category,
		Description: description,
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
		TransactionType: entities.TransactionTypeAmbushEscrow,
		RelatedID:       bet.ID,
		Metadata: map[string]any{
			"target_id": targetID,
			"category":  category,
			"odds":      odds,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to record escrow: %w", err)
	}

	bettor.Balance = newBalance
	bettor.RecordWager(stake)
	if err := s.playerRepo.Save(ctx, bettor); err != nil {
		return nil, fmt.Errorf("failed to update bettor stats: %w", err)
	}

	if err := s.ambushRepo.Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create ambush bet: %w", err)
	}

	if err := s.publisher.Publish(events.BetPlacedEvent{
		BetID:    bet.ID,
		Kind:     entities.BetKindAmbush,
		BettorID: bettorID,
		Stake:    stake,
		Odds:     odds,
	}); err != nil {
		log.WithError(err).Error("Failed to publish bet placed event")
	}

	return bet, nil
}

// SuggestProp asks the oracle for a proposition about the target's recent behavior
func (s *ambushService) SuggestProp(ctx context.Context, targetID int64, windowStart, windowEnd time.Time) (*interfaces.SuggestedProp, error) {
	transcript, err := s.chatStore.MessagesBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat store: %w", err)
	}
	prop, err := s.oracle.AmbushProp(ctx, targetID, transcript)
	if err != nil {
		return nil, fmt.Errorf("oracle failed to suggest prop: %w", err)
	}
	prop.Odds = ClampOdds(prop.Odds, s.config.MinOdds, s.config.MaxOdds)
	return prop, nil
}

// ViewFor partitions ambush bets into the caller's dual projection: full
// fidelity for bets they placed, redacted aggregates for bets against them.
func (s *ambushService) ViewFor(ctx context.Context, playerID int64) (*entities.AmbushView, error) {
	placed, err := s.ambushRepo.GetByBettor(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get placed bets: %w", err)
	}
	incoming, err := s.ambushRepo.GetByTarget(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get incoming bets: %w", err)
	}

	view := &entities.AmbushView{
		Incoming: entities.AmbushIncomingView{TargetID: playerID},
	}
	for _, bet := range placed {
		view.Placed = append(view.Placed, entities.AmbushPlacedView{
			BetID:       bet.ID,
			TargetID:    bet.TargetID,
			Category:    bet.Category,
			Description: bet.Description,
			Stake:       bet.Stake,
			Odds:        bet.Odds,
			Payout:      Payout(bet.Stake, bet.Odds),
			Status:      bet.Status,
		})
	}
	for _, bet := range incoming {
		view.Incoming.Statuses = append(view.Incoming.Statuses, bet.Status)
		if bet.IsOpen() {
			view.Incoming.TotalStaked += bet.Stake
			view.Incoming.Count++
		}
	}
	return view, nil
}

// CancelAmbush voids a still-open bet and refunds its escrow
func (s *ambushService) CancelAmbush(ctx context.Context, betID string, bettorID int64) error {
	if s.phases.CurrentPhase() != interfaces.PhaseBetting {
		return fmt.Errorf("ambush bets can only be cancelled during the betting phase: %w", entities.ErrWindowClosed)
	}

	bet, err := s.ambushRepo.GetByID(ctx, betID)
	if err != nil {
		return fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return fmt.Errorf("bet %s: %w", betID, entities.ErrNotFound)
	}
	if bet.BettorID != bettorID {
		return fmt.Errorf("only the bettor can cancel: %w", entities.ErrInvalidTarget)
	}
	if err := bet.Resolve(entities.BetStatusVoided, time.Now()); err != nil {
		return err
	}
	bet.AddEvidence("cancelled by bettor before window close")

	bettor, err := s.playerRepo.GetByID(ctx, bettorID)
	if err != nil {
		return fmt.Errorf("failed to get bettor: %w", err)
	}
	newBalance := bettor.Balance + bet.Stake
	if err := s.playerRepo.UpdateBalance(ctx, bettorID, newBalance); err != nil {
		return fmt.Errorf("failed to refund escrow: %w", err)
	}
	if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
		PlayerID:        bettorID,
		BalanceBefore:   bettor.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    bet.Stake,
		TransactionType: entities.TransactionTypeAmbushRefund,
		RelatedID:       bet.ID,
	}); err != nil {
		return fmt.Errorf("failed to record refund: %w", err)
	}

	if err := s.ambushRepo.Update(ctx, bet); err != nil {
		return fmt.Errorf("failed to update bet: %w", err)
	}
	return nil
}

// TotalStakedAgainst returns the live open pot against a target
func (s *ambushService) TotalStakedAgainst(ctx context.Context, targetID int64) (int64, error) {
	open, err := s.ambushRepo.GetOpenByTarget(ctx, targetID)
	if err != nil {
		return 0, fmt.Errorf("failed to get open bets: %w", err)
	}
	var total int64
	for _, bet := range open {
		total += bet.Stake
	}
	return total, nil
}

// ledgerMutation is one staged balance change. ResolveTarget computes every
// mutation before applying any, so a settlement either lands in full or not
// at all.
type ledgerMutation struct {
	player   *entities.PlayerAccount
	change   int64
	txType   entities.TransactionType
	metadata map[string]any
	related  string
}

// ResolveTarget settles every open bet against one target via exactly one of
// three exclusive branches: ghosting void, bettors win, or subject takes all.
func (s *ambushService) ResolveTarget(ctx context.Context, targetID int64, behaviorConfirmed bool, windowStart, windowEnd time.Time) (*entities.AmbushResolution, error) {
	if s.phases.CurrentPhase() != interfaces.PhaseResolution {
		return nil, fmt.Errorf("ambush resolution only runs during the resolution phase: %w", entities.ErrWindowClosed)
	}

	bets, err := s.ambushRepo.GetOpenByTarget(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open bets: %w", err)
	}
	if len(bets) == 0 {
		return nil, fmt.Errorf("target %d: %w", targetID, entities.ErrNoActiveBets)
	}

	target, err := s.playerRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get target: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("target %d: %w", targetID, entities.ErrNotFound)
	}

	var pot int64
	bettors := make(map[int64]*entities.PlayerAccount)
	for _, bet := range bets {
		pot += bet.Stake
		if _, ok := bettors[bet.BettorID]; ok {
			continue
		}
		bettor, err := s.playerRepo.GetByID(ctx, bet.BettorID)
		if err != nil {
			return nil, fmt.Errorf("failed to get bettor %d: %w", bet.BettorID, err)
		}
		if bettor == nil {
			return nil, fmt.Errorf("bettor %d: %w", bet.BettorID, entities.ErrNotFound)
		}
		bettors[bet.BettorID] = bettor
	}

	// Ghosting override outranks the confirmed/denied outcome. A missing
	// baseline means the window was never surveilled; settle normally.
	var report *entities.GhostingReport
	if r, err := s.activity.CheckForGhosting(ctx, targetID, windowStart, windowEnd); err != nil {
		if !errors.Is(err, entities.ErrPrecedentMissing) {
			return nil, fmt.Errorf("ghosting check failed: %w", err)
		}
	} else {
		report = r
	}

	resolution := &entities.AmbushResolution{
		TargetID: targetID,
		TotalPot: pot,
		Payouts:  make(map[int64]int64),
		Ghosting: report,
		Resolved: bets,
	}

	var mutations []ledgerMutation
	now := time.Now()

	switch {
	case report != nil && report.Ghosting:
		resolution.Outcome = entities.AmbushOutcomeGhostingVoid
		refundPool := pot * s.config.GhostingPenaltyPercent / 100
		penalty := pot - refundPool
		note := fmt.Sprintf("voided: target ghosted the betting window (%.1f%% message drop, baseline %d, current %d)",
			report.DropPercent, report.BaselineCount, report.CurrentCount)

		for _, bet := range bets {
			refund := bet.Stake * refundPool / pot
			if err := bet.Resolve(entities.BetStatusVoided, now); err != nil {
				return nil, err
			}
			bet.AddEvidence(note)
			if refund > 0 {
				resolution.Payouts[bet.BettorID] += refund
				mutations = append(mutations, ledgerMutation{
					player:  bettors[bet.BettorID],
					change:  refund,
					txType:  entities.TransactionTypeAmbushRefund,
					related: bet.ID,
					metadata: map[string]any{
						"target_id": targetID,
						"reason":    "ghosting",
					},
				})
			}
		}

		// Penalty is floored at zero, never driving the balance negative.
		debit := penalty
		if debit > target.Balance {
			debit = target.Balance
		}
		resolution.TargetPenalty = debit
		if debit > 0 {
			mutations = append(mutations, ledgerMutation{
				player: target,
				change: -debit,
				txType: entities.TransactionTypeGhostingPenalty,
				metadata: map[string]any{
					"pot":          pot,
					"drop_percent": report.DropPercent,
				},
			})
		}

	case behaviorConfirmed:
		resolution.Outcome = entities.AmbushOutcomeBettorsWin
		for _, bet := range bets {
			bettor := bettors[bet.BettorID]
			payout := int64(math.Floor(float64(Payout(bet.Stake, bet.Odds)) * bettor.PayoutBonus(bet.Category)))
			if err := bet.Resolve(entities.BetStatusWon, now); err != nil {
				return nil, err
			}
			bet.AddEvidence("behavior confirmed during betting window")
			bettor.RecordWin(payout)
			resolution.Payouts[bet.BettorID] += payout
			mutations = append(mutations, ledgerMutation{
				player:  bettor,
				change:  payout,
				txType:  entities.TransactionTypeAmbushWin,
				related: bet.ID,
				metadata: map[string]any{
					"target_id": targetID,
					"stake":     bet.Stake,
					"odds":      bet.Odds,
				},
			})
		}

	default:
		resolution.Outcome = entities.AmbushOutcomeSubjectWins
		commish := pot * s.config.AmbushCommishPercent / 100
		resolution.CommishCut = commish
		resolution.TargetCredit = pot - commish
		for _, bet := range bets {
			if err := bet.Resolve(entities.BetStatusLost, now); err != nil {
				return nil, err
			}
			bet.AddEvidence("behavior did not occur; subject takes the pot")
			bettors[bet.BettorID].RecordLoss(bet.Stake)
			resolution.Payouts[bet.BettorID] += 0
		}
		mutations = append(mutations, ledgerMutation{
			player: target,
			change: resolution.TargetCredit,
			txType: entities.TransactionTypeSubjectTakesAll,
			metadata: map[string]any{
				"pot":         pot,
				"commish_cut": commish,
				"bet_count":   len(bets),
			},
		})
	}

	if err := s.commit(ctx, mutations); err != nil {
		return nil, err
	}
	// Persist stat updates after balances so weekly aggregates survive.
	for _, bettor := range bettors {
		if err := s.playerRepo.Save(ctx, bettor); err != nil {
			return nil, fmt.Errorf("failed to save bettor %d: %w", bettor.ID, err)
		}
	}
	if err := s.playerRepo.Save(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to save target %d: %w", target.ID, err)
	}
	for _, bet := range bets {
		if err := s.ambushRepo.Update(ctx, bet); err != nil {
			return nil, fmt.Errorf("failed to update bet %s: %w", bet.ID, err)
		}
	}

	if err := s.publisher.Publish(events.AmbushResolvedEvent{
		TargetID: targetID,
		Outcome:  resolution.Outcome,
		TotalPot: pot,
	}); err != nil {
		log.WithError(err).Error("Failed to publish ambush resolved event")
	}

	log.WithFields(log.Fields{
		"targetID": targetID,
		"outcome":  resolution.Outcome,
		"pot":      pot,
		"bets":     len(bets),
	}).Info("Resolved ambush target")

	return resolution, nil
}

// commit applies staged mutations. All accounts were loaded and validated
// before staging, so the pot redistribution lands as one unit.
func (s *ambushService) commit(ctx context.Context, mutations []ledgerMutation) error {
	for _, m := range mutations {
		newBalance := m.player.Balance + m.change
		if err := s.playerRepo.UpdateBalance(ctx, m.player.ID, newBalance); err != nil {
			return fmt.Errorf("failed to update balance for %d: %w", m.player.ID, err)
		}
		if err := utils.RecordGritChange(ctx, s.historyRepo, s.publisher, &entities.GritHistory{
			PlayerID:        m.player.ID,
			BalanceBefore:   m.player.Balance,
			BalanceAfter:    newBalance,
			ChangeAmount:    m.change,
			TransactionType: m.txType,
			RelatedID:       m.related,
			Metadata:        m.metadata,
		}); err != nil {
			return fmt.Errorf("failed to record grit change for %d: %w", m.player.ID, err)
		}
		m.player.Balance = newBalance
	}
	return nil
}

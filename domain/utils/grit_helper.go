package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/events"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// RecordGritChange records a grit history entry and emits the balance change
// event. This is the single entry point for all balance changes in the core.
func RecordGritChange(ctx context.Context, historyRepo interfaces.GritHistoryRepository, eventPublisher interfaces.EventPublisher, history *entities.GritHistory) error {
	if history.ID == "" {
		history.ID = uuid.New().String()
	}
	if history.CreatedAt.IsZero() {
		history.CreatedAt = time.Now()
	}
	if err := history.Validate(); err != nil {
		return fmt.Errorf("invalid grit history entry: %w", err)
	}
	if err := historyRepo.Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record grit history: %w", err)
	}

	event := events.GritChangeEvent{
		PlayerID:        history.PlayerID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	}
	log.WithFields(log.Fields{
		"playerID":        event.PlayerID,
		"oldBalance":      event.OldBalance,
		"newBalance":      event.NewBalance,
		"transactionType": event.TransactionType,
		"changeAmount":    event.ChangeAmount,
	}).Debug("Publishing GritChangeEvent")
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish grit change event")
	}

	return nil
}

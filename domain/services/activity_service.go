package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/config"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

type activityService struct {
	config       *config.Config
	baselineRepo interfaces.BaselineRepository
	chatStore    interfaces.ChatStore
	oracle       interfaces.Oracle
}

// NewActivityService creates a new activity baseline monitor
func NewActivityService(baselineRepo interfaces.BaselineRepository, chatStore interfaces.ChatStore, oracle interfaces.Oracle) interfaces.ActivityService {
	return &activityService{
		config:       config.Get(),
		baselineRepo: baselineRepo,
		chatStore:    chatStore,
		oracle:       oracle,
	}
}

// EstablishBaseline counts target-authored messages in the surveillance
// window and stores the result as the target's single active baseline,
// superseding any prior one.
func (s *activityService) EstablishBaseline(ctx context.Context, targetID int64, windowStart, windowEnd time.Time) (*entities.ActivityBaseline, error) {
	if !windowEnd.After(windowStart) {
		return nil, fmt.Errorf("surveillance window is empty: %w", entities.ErrOutOfRange)
	}

	messages, err := s.chatStore.MessagesBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat store: %w", err)
	}

	baseline := &entities.ActivityBaseline{
		TargetID:      targetID,
		MessageCount:  entities.CountMessagesBy(messages, targetID, windowStart, windowEnd),
		WindowStart:   windowStart,
		WindowEnd:     windowEnd,
		EstablishedAt: time.Now(),
	}
	if err := s.baselineRepo.Set(ctx, baseline); err != nil {
		return nil, fmt.Errorf("failed to store baseline: %w", err)
	}

	log.WithFields(log.Fields{
		"targetID":     targetID,
		"messageCount": baseline.MessageCount,
	}).Debug("Established activity baseline")

	return baseline, nil
}

// CheckForGhosting compares the target's message volume in a later window
// against the established baseline. Requires a prior baseline.
func (s *activityService) CheckForGhosting(ctx context.Context, targetID int64, windowStart, windowEnd time.Time) (*entities.GhostingReport, error) {
	baseline, err := s.baselineRepo.GetByTarget(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get baseline: %w", err)
	}
	if baseline == nil {
		return nil, fmt.Errorf("target %d: %w", targetID, entities.ErrPrecedentMissing)
	}

	messages, err := s.chatStore.MessagesBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat store: %w", err)
	}
	currentCount := entities.CountMessagesBy(messages, targetID, windowStart, windowEnd)

	var dropPercent float64
	if baseline.MessageCount > 0 {
		dropPercent = float64(baseline.MessageCount-currentCount) / float64(baseline.MessageCount) * 100
	}

	report := &entities.GhostingReport{
		TargetID:      targetID,
		BaselineCount: baseline.MessageCount,
		CurrentCount:  currentCount,
		DropPercent:   dropPercent,
		Ghosting:      dropPercent > s.config.GhostingDropThreshold,
	}

	if report.Ghosting {
		log.WithFields(log.Fields{
			"targetID":      targetID,
			"baselineCount": report.BaselineCount,
			"currentCount":  report.CurrentCount,
			"dropPercent":   report.DropPercent,
		}).Info("Ghosting detected")
	}

	return report, nil
}

// TrendReport summarizes chat activity in the window into trend strings
func (s *activityService) TrendReport(ctx context.Context, windowStart, windowEnd time.Time) ([]string, error) {
	if !windowEnd.After(windowStart) {
		return nil, fmt.Errorf("report window is empty: %w", entities.ErrOutOfRange)
	}

	messages, err := s.chatStore.MessagesBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat store: %w", err)
	}

	trends, err := s.oracle.ChatTrends(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze trends: %w", err)
	}
	return trends, nil
}

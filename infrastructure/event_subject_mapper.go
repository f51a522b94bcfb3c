package infrastructure

import (
	"fmt"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeGritChange:
		return "players.grit_changed"
	case events.EventTypePlayerCreated:
		return "players.created"
	case events.EventTypeBetPlaced:
		return "betting.placed"
	case events.EventTypeAmbushResolved:
		return "ambush.resolved"
	case events.EventTypeGulagStateChange:
		return "gulag.state_changed"
	case events.EventTypeTradeCompleted:
		return "trading.completed"
	case events.EventTypeBoxOpened:
		return "boxes.opened"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "players.grit_changed":
		return events.EventTypeGritChange
	case "players.created":
		return events.EventTypePlayerCreated
	case "betting.placed":
		return events.EventTypeBetPlaced
	case "ambush.resolved":
		return events.EventTypeAmbushResolved
	case "gulag.state_changed":
		return events.EventTypeGulagStateChange
	case "trading.completed":
		return events.EventTypeTradeCompleted
	case "boxes.opened":
		return events.EventTypeBoxOpened
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"players.grit_changed",
		"players.created",
		"betting.placed",
		"ambush.resolved",
		"gulag.state_changed",
		"trading.completed",
		"boxes.opened",
	}
}

package entities

import "time"

// ChatMessage is a read-only view of one message from the chat store
// collaborator. The settlement core never mutates the store.
type ChatMessage struct {
	SenderID  int64
	Content   string
	Timestamp time.Time
}

// ActivityBaseline records a target's message volume during a surveillance
// window. One active baseline per target; superseded on re-establishment.
type ActivityBaseline struct {
	TargetID      int64
	MessageCount  int
	WindowStart   time.Time
	WindowEnd     time.Time
	EstablishedAt time.Time
}

// GhostingReport is the audit result of comparing a later window against the
// established baseline.
type GhostingReport struct {
	TargetID      int64
	BaselineCount int
	CurrentCount  int
	DropPercent   float64
	Ghosting      bool
}

// CountMessagesBy counts messages authored by the sender within [start, end].
func CountMessagesBy(messages []ChatMessage, senderID int64, start, end time.Time) int {
	count := 0
	for _, m := range messages {
		if m.SenderID != senderID {
			continue
		}
		if m.Timestamp.Before(start) || m.Timestamp.After(end) {
			continue
		}
		count++
	}
	return count
}

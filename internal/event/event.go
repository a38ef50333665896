package event

import "time"

// EventType identifies the kind of lifecycle event.
type EventType string

const (
	// Solve lifecycle
	SolvePrepared EventType = "solve.prepared"

	// Curation lifecycle
	CurationStarted   EventType = "curation.started"
	CurationCompleted EventType = "curation.completed"
	CurationFailed    EventType = "curation.failed"

	// Cheatsheet persistence
	CheatsheetUpdated   EventType = "cheatsheet.updated"
	CheatsheetUnchanged EventType = "cheatsheet.unchanged"
)

// Event carries data about a lifecycle occurrence.
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]interface{}) Event {
	return Event{
		Type:      t,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Package broadcast fans events out to live subscribers.
//
// Delivery is best-effort and at-most-once: a subscriber that is not
// connected when an event is published never sees it, and there is no replay.
// Clients that reconnect must re-fetch current state over the HTTP API.
package broadcast

// EventTypeNewLog announces a freshly recorded time log.
const EventTypeNewLog = "NEW_LOG"

// Event is the envelope pushed to subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// NewLogEvent wraps an enriched log entry in a NEW_LOG envelope.
func NewLogEvent(entry any) Event {
	return Event{Type: EventTypeNewLog, Data: entry}
}

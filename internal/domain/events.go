package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types carried on the ledger events topic.
const (
	EventTypeEntryCreated = "entry.created"
)

// EventEnvelope is the tagged wrapper every ledger event is published in.
// The payload is decoded per event type after the envelope is validated.
type EventEnvelope struct {
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// EntryCreatedEvent notifies that an entry was appended to the ledger.
// Delivery is at-least-once and possibly out of chronological order
// (backdated entries).
type EntryCreatedEvent struct {
	EntryID string `json:"entry_id"`
	Type    string `json:"type"`
	Amount  string `json:"amount"`
	Date    string `json:"date"`
	Status  string `json:"status"`
}

// Day extracts the calendar day the event's entry belongs to.
func (e *EntryCreatedEvent) Day() (Day, error) {
	if d, err := ParseDay(e.Date); err == nil {
		return d, nil
	}
	// Publishers may carry a full timestamp instead of a bare date.
	t, err := time.Parse(time.RFC3339, e.Date)
	if err != nil {
		return Day{}, fmt.Errorf("%w: event date %q", ErrInvalidDate, e.Date)
	}
	return DayOf(t), nil
}

// DecodeEntryCreated validates the envelope and decodes its payload.
func DecodeEntryCreated(env *EventEnvelope) (*EntryCreatedEvent, error) {
	if env.EventType != EventTypeEntryCreated {
		return nil, fmt.Errorf("unexpected event type %q", env.EventType)
	}

	var ev EntryCreatedEvent
	if err := json.Unmarshal(env.Payload, &ev); err != nil {
		return nil, fmt.Errorf("malformed %s payload: %w", EventTypeEntryCreated, err)
	}

	if _, err := ev.Day(); err != nil {
		return nil, err
	}

	return &ev, nil
}

// Package events provides the append-only action log for the game.
// Every authoritative mutation leaves an immutable record here; the replay
// API and the audit store read from it.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of a game event.
type EventType string

const (
	EventTypeJoin          EventType = "JOIN"
	EventTypeDisconnect    EventType = "DISCONNECT"
	EventTypePickup        EventType = "PICKUP"
	EventTypeDelivery      EventType = "DELIVERY"
	EventTypeSell          EventType = "SELL"
	EventTypeSteal         EventType = "STEAL"
	EventTypeBaseLock      EventType = "BASE_LOCK"
	EventTypeBaseUnlock    EventType = "BASE_UNLOCK"
	EventTypeUpgrade       EventType = "UPGRADE"
	EventTypeQuestComplete EventType = "QUEST_COMPLETE"
	EventTypeAdminEvent    EventType = "ADMIN_EVENT"
	EventTypeChat          EventType = "CHAT"
	EventTypeReaped        EventType = "REAPED"
)

// GameEvent represents an immutable record of an action in the game.
type GameEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`            // Who performed the action
	TargetID  string      `json:"target_id,omitempty"` // Who was affected (optional)
	Payload   interface{} `json:"payload,omitempty"`   // Event-specific data
}

// New builds a GameEvent with a fresh ID and timestamp.
func New(t EventType, actorID, targetID string, payload interface{}) GameEvent {
	return GameEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Type:      t,
		ActorID:   actorID,
		TargetID:  targetID,
		Payload:   payload,
	}
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// EventLog is the in-memory append-only log of game events, optionally
// written through to a persister. A single writer goroutine drains the
// write-through queue so persisted rows keep append order.
type EventLog struct {
	mu        sync.RWMutex
	events    []GameEvent
	persister EventPersister

	writeQ chan GameEvent
	done   chan struct{}
}

const writeQueueDepth = 1024

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	el := &EventLog{
		events:    make([]GameEvent, 0),
		persister: persister,
	}
	if persister != nil {
		el.writeQ = make(chan GameEvent, writeQueueDepth)
		el.done = make(chan struct{})
		go el.writeLoop()
	}
	return el
}

func (el *EventLog) writeLoop() {
	for ev := range el.writeQ {
		_ = el.persister.Append(ev)
	}
	close(el.done)
}

// Append adds a new event to the log. Events are immutable once appended.
func (el *EventLog) Append(event GameEvent) {
	el.mu.Lock()
	el.events = append(el.events, event)
	el.mu.Unlock()

	if el.writeQ != nil {
		// The buffer keeps the write-through off the hot path; the
		// in-memory log stays the source of truth for the replay API.
		el.writeQ <- event
	}
}

// Close drains the write-through queue and stops the writer. Append must not
// be called after Close.
func (el *EventLog) Close() {
	if el.writeQ != nil {
		close(el.writeQ)
		<-el.done
	}
}

// GetByActor returns all events performed by a specific actor.
func (el *EventLog) GetByActor(actorID string) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.ActorID == actorID {
			result = append(result, e)
		}
	}
	return result
}

// GetByType returns all events of a specific type.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of events appended so far.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.events)
}

// Replay returns the full history of events.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	out := make([]GameEvent, len(el.events))
	copy(out, el.events)
	return out
}

package events

import (
	"github.com/KirkDiggler/party-share/internal/domain/party"
)

// EventType represents the type of party event
type EventType string

// Event is the base interface for all party events
type Event interface {
	GetID() string
	GetType() EventType
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	ID        string
	Type      EventType
	Cancelled bool
}

func (e *BaseEvent) GetID() string      { return e.ID }
func (e *BaseEvent) GetType() EventType { return e.Type }
func (e *BaseEvent) IsCancelled() bool  { return e.Cancelled }
func (e *BaseEvent) Cancel()            { e.Cancelled = true }

// PartyEvent reports a completed change. Snapshot is the state after the change
// has been persisted; Slots lists the slots involved, if any.
type PartyEvent struct {
	BaseEvent
	Slots    []party.SlotRef
	Snapshot party.Snapshot
	Token    string
}

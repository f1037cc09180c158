// Package events re-exports the platform event bus and defines the domain
// events exchanged between modules.
package events

import (
	platformevents "leadqualify_backend/platform/events"
	"leadqualify_backend/platform/logger"
)

// Bus is a type alias to the platform event bus interface.
type Bus = platformevents.Bus

// Event is a type alias to the platform event interface.
type Event = platformevents.Event

// BaseEvent is a type alias to the platform base event.
type BaseEvent = platformevents.BaseEvent

// Handler is a type alias to the platform event handler.
type Handler = platformevents.Handler

// HandlerFunc is a type alias to the platform handler adapter.
type HandlerFunc = platformevents.HandlerFunc

// InMemoryBus is a type alias to the platform in-memory bus.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return platformevents.NewBaseEvent()
}

// LeadQualified fires when a lead finishes the interview and receives a tier.
type LeadQualified struct {
	BaseEvent
	Phone string
	Tier  string
}

// EventName returns the unique event identifier.
func (LeadQualified) EventName() string { return "lead.qualified" }

// MeetingScheduled fires when a lead answers the scheduling offer.
type MeetingScheduled struct {
	BaseEvent
	Phone        string
	WantsMeeting bool
}

// EventName returns the unique event identifier.
func (MeetingScheduled) EventName() string { return "lead.meeting_scheduled" }

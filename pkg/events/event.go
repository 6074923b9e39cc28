// Package events defines the domain event contract shared by the analysis
// aggregate and the messaging adapters.
package events

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is implemented by every event an aggregate records. Payload is
// the JSON body published as the envelope's payload field.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
	Payload() []byte
}

// BaseEvent carries the envelope fields of a DomainEvent. Concrete events
// embed it and set it with NewBaseEvent once their body is marshaled.
type BaseEvent struct {
	id            uuid.UUID
	eventType     string
	aggregateID   uuid.UUID
	aggregateType string
	occurredAt    time.Time
	payload       []byte
}

// NewBaseEvent stamps a fresh event id and the current UTC time.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string, payload []byte) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
		payload:       payload,
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.id }
func (e BaseEvent) EventType() string      { return e.eventType }
func (e BaseEvent) AggregateID() uuid.UUID { return e.aggregateID }
func (e BaseEvent) AggregateType() string  { return e.aggregateType }
func (e BaseEvent) OccurredAt() time.Time  { return e.occurredAt }
func (e BaseEvent) Payload() []byte        { return e.payload }

// EventCollector is embedded in an aggregate; state transitions Record
// events and the use case drains them with ClearEvents after publishing.
type EventCollector struct {
	pending []DomainEvent
}

func (c *EventCollector) Record(e DomainEvent) { c.pending = append(c.pending, e) }

// Events returns a copy of the pending events.
func (c *EventCollector) Events() []DomainEvent { return slices.Clone(c.pending) }

// ClearEvents hands over the pending events and resets the collector.
func (c *EventCollector) ClearEvents() []DomainEvent {
	out := c.pending
	c.pending = nil
	return out
}

package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFetchStarted   EventType = "FetchStarted"
	EventFetchSucceeded EventType = "FetchSucceeded"
	EventFetchFailed    EventType = "FetchFailed"
	EventFetchCanceled  EventType = "FetchCanceled"
	EventQueryApplied   EventType = "QueryApplied"
	EventFilterComputed EventType = "FilterComputed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FetchStartedEvent is emitted when the cache starts a new load attempt
type FetchStartedEvent struct {
	Attempt   uint64
	RequestID string
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// FetchSucceededEvent is emitted when an attempt produced a record sequence
type FetchSucceededEvent struct {
	Attempt  uint64
	Count    int
	Duration time.Duration
}

func (e FetchSucceededEvent) Type() EventType { return EventFetchSucceeded }

// FetchFailedEvent is emitted when an attempt ended in Failed
type FetchFailedEvent struct {
	Attempt  uint64
	Kind     string // network, protocol, decode
	Message  string
	Duration time.Duration
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// FetchCanceledEvent is emitted when an attempt was abandoned by its caller
type FetchCanceledEvent struct {
	Attempt uint64
}

func (e FetchCanceledEvent) Type() EventType { return EventFetchCanceled }

// QueryAppliedEvent is emitted when a debounced query value takes effect
type QueryAppliedEvent struct {
	Query string
}

func (e QueryAppliedEvent) Type() EventType { return EventQueryApplied }

// FilterComputedEvent is emitted each time the filtered result is recomputed
type FilterComputedEvent struct {
	Query       string
	ResultCount int
	Duration    time.Duration
}

func (e FilterComputedEvent) Type() EventType { return EventFilterComputed }

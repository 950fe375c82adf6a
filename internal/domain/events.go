package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchSucceeded EventType = "SearchSucceeded"
	EventSearchFailed    EventType = "SearchFailed"
	EventSearchDiscarded EventType = "SearchDiscarded"
	EventScreenChanged   EventType = "ScreenChanged"
	EventCatalogHealth   EventType = "CatalogHealth"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a query is dispatched to the catalog
type SearchStartedEvent struct {
	Seq       uint64
	RequestID string
	Query     string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchSucceededEvent is emitted when the latest search settles with results
type SearchSucceededEvent struct {
	Seq       uint64
	RequestID string
	Query     string
	Count     int
	Elapsed   time.Duration
}

func (e SearchSucceededEvent) Type() EventType { return EventSearchSucceeded }

// SearchFailedEvent is emitted when the latest search settles with an error
type SearchFailedEvent struct {
	Seq       uint64
	RequestID string
	Query     string
	Message   string
	Err       error
	Elapsed   time.Duration
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchDiscardedEvent is emitted when a superseded search completes late
type SearchDiscardedEvent struct {
	Seq       uint64
	Latest    uint64
	RequestID string
	Query     string
	Elapsed   time.Duration
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// ScreenChangedEvent is emitted when the user switches screens
type ScreenChangedEvent struct {
	From string
	To   string
}

func (e ScreenChangedEvent) Type() EventType { return EventScreenChanged }

// CatalogHealthEvent carries the result of a catalog health probe
type CatalogHealthEvent struct {
	Online bool
	Err    error
}

func (e CatalogHealthEvent) Type() EventType { return EventCatalogHealth }

// ConfigLoadedEvent is emitted after configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted after configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

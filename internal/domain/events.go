package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventIndexChanged   EventType = "IndexChanged"
	EventTabPressed     EventType = "TabPressed"
	EventLayoutMeasured EventType = "LayoutMeasured"
	EventScrollSettled  EventType = "ScrollSettled"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// IndexChangedEvent is emitted once interactions settle after a commit
type IndexChangedEvent struct {
	From  int
	To    int
	Route Route
}

func (e IndexChangedEvent) Type() EventType { return EventIndexChanged }

// TabPressedEvent is emitted after a tab press has committed
type TabPressedEvent struct {
	Route Route
}

func (e TabPressedEvent) Type() EventType { return EventTabPressed }

// LayoutMeasuredEvent is emitted when the viewport is measured or resized
type LayoutMeasuredEvent struct {
	Width  float64
	Height float64
}

func (e LayoutMeasuredEvent) Type() EventType { return EventLayoutMeasured }

// ScrollSettledEvent is emitted when a tap-triggered tab strip scroll ends
type ScrollSettledEvent struct {
	Index      int
	Offset     float64
	Superseded bool
}

func (e ScrollSettledEvent) Type() EventType { return EventScrollSettled }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Strategy string
	Routes   int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

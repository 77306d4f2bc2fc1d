package ui

import (
	"swipetabs/internal/eventbus"
	"swipetabs/internal/tabbar"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// transitionDoneMsg carries a finished tab bar transition back to Update
type transitionDoneMsg struct {
	transition *tabbar.Transition
}

// viewerDoneMsg contains the result of showing content in the viewer
type viewerDoneMsg struct {
	err error
}

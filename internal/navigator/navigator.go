// Package navigator owns the committed navigation state and the shared
// animated Position that the tab bar and the pages follow.
package navigator

import (
	"log"
	"math"
	"sync"

	"swipetabs/internal/animated"
	"swipetabs/internal/domain"
	"swipetabs/internal/eventbus"
	"swipetabs/internal/gesture"
)

// Source is the read side of the navigator that scene renderers consume.
// Every method reads live state, so handlers built from a Source never go
// stale. Position may be written by gesture responders; committed changes go
// through JumpToIndex only.
type Source interface {
	State() domain.NavigationState
	Layout() domain.Layout
	Position() *animated.Value
	// JumpToIndex commits index. It is a no-op for the committed index.
	// Out-of-range indexes are a caller error and are not checked.
	JumpToIndex(index int)
	// GetLastPosition returns the last value the Position reported
	GetLastPosition() float64
	// ResetPosition springs Position back to the committed index
	ResetPosition()
}

// Options configures a Navigator
type Options struct {
	Scheduler    animated.Scheduler
	Spring       animated.SpringConfig
	Interactions *gesture.Registry
	Bus          eventbus.EventBus
}

// Navigator implements Source
type Navigator struct {
	mu           sync.Mutex
	state        domain.NavigationState
	layout       domain.Layout
	position     *animated.Value
	lastPosition float64

	scheduler    animated.Scheduler
	spring       animated.SpringConfig
	interactions *gesture.Registry
	bus          eventbus.EventBus

	subscribers map[int]func(domain.NavigationState)
	nextSubID   int
}

// New creates a navigator committed to state.Index
func New(state domain.NavigationState, opts Options) *Navigator {
	n := &Navigator{
		state:        state,
		position:     animated.NewValue(float64(state.Index)),
		lastPosition: float64(state.Index),
		scheduler:    opts.Scheduler,
		spring:       opts.Spring,
		interactions: opts.Interactions,
		bus:          opts.Bus,
		subscribers:  make(map[int]func(domain.NavigationState)),
	}
	if n.spring.Tension == 0 {
		n.spring = animated.DefaultSpringConfig()
	}
	n.position.AddListener(func(v float64) {
		n.mu.Lock()
		n.lastPosition = v
		n.mu.Unlock()
	})
	return n
}

// State returns a copy of the committed navigation state
func (n *Navigator) State() domain.NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	routes := make([]domain.Route, len(n.state.Routes))
	copy(routes, n.state.Routes)
	return domain.NavigationState{Index: n.state.Index, Routes: routes}
}

// Layout returns the current layout
func (n *Navigator) Layout() domain.Layout {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.layout
}

// Position returns the shared position value
func (n *Navigator) Position() *animated.Value {
	return n.position
}

// GetLastPosition returns the last value the position listener saw
func (n *Navigator) GetLastPosition() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastPosition
}

// SetLayout records a measurement. The first call marks the layout measured.
func (n *Navigator) SetLayout(width, height float64) {
	n.mu.Lock()
	changed := !n.layout.Measured || n.layout.Width != width || n.layout.Height != height
	n.layout = domain.Layout{Measured: true, Width: width, Height: height}
	state := n.state
	n.mu.Unlock()

	if !changed {
		return
	}
	if n.bus != nil {
		n.bus.Publish(eventbus.LayoutMeasuredEvent{Width: width, Height: height})
	}
	n.notify(state)
}

// JumpToIndex commits index and springs the position to it
func (n *Navigator) JumpToIndex(index int) {
	n.mu.Lock()
	if index == n.state.Index {
		n.mu.Unlock()
		return
	}
	from := n.state.Index
	n.state.Index = index
	state := n.state
	n.mu.Unlock()

	log.Printf("Navigator: committing index %d -> %d", from, index)

	n.animateTo(float64(index))
	n.notify(state)

	if n.bus == nil {
		return
	}
	event := eventbus.IndexChangedEvent{From: from, To: index, Route: state.Routes[index]}
	publish := func() { n.bus.Publish(event) }
	if n.interactions != nil {
		n.interactions.RunAfterInteractions(publish)
	} else {
		publish()
	}
}

// ResetPosition springs the position back to the committed index
func (n *Navigator) ResetPosition() {
	n.mu.Lock()
	index := float64(n.state.Index)
	n.mu.Unlock()

	if math.Abs(n.position.Get()-index) < 1e-9 && !n.position.Animating() {
		return
	}
	n.animateTo(index)
}

func (n *Navigator) animateTo(index float64) {
	if n.scheduler == nil {
		n.position.SetValue(index)
		return
	}
	n.position.FlattenOffset()
	n.position.Spring(n.scheduler, index, n.spring, nil)
}

// Subscribe registers fn to run after every commit or layout change.
// Returns an unsubscribe function.
func (n *Navigator) Subscribe(fn func(domain.NavigationState)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextSubID++
	id := n.nextSubID
	n.subscribers[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subscribers, id)
	}
}

func (n *Navigator) notify(state domain.NavigationState) {
	n.mu.Lock()
	subs := make([]func(domain.NavigationState), 0, len(n.subscribers))
	for id := 1; id <= n.nextSubID; id++ {
		if fn, ok := n.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	n.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

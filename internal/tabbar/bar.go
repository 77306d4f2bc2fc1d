// Package tabbar renders the tab strip and keeps it in step with the shared
// Position. Two strategies exist: DragBar captures horizontal drags of the
// strip itself; NativeBar hands scrolling to a scroll container and locks out
// passive following while a tap-triggered scroll is in flight.
package tabbar

import (
	"errors"
	"fmt"
	"math"

	"swipetabs/internal/animated"
	"swipetabs/internal/domain"
	"swipetabs/internal/eventbus"
	"swipetabs/internal/gesture"
	"swipetabs/internal/navigator"
)

// Strategies accepted by New
const (
	DragCaptureStrategy  = "drag"
	NativeScrollStrategy = "native"
)

// ErrScrollSuperseded is the result of a transition replaced by a newer tap
// before its scroll completed
var ErrScrollSuperseded = errors.New("scroll superseded by a newer request")

// ErrScrollInterrupted is the result of a transition whose scroll the user
// took over before it reached the target
var ErrScrollInterrupted = errors.New("scroll interrupted by the user")

// Options configures either bar
type Options struct {
	Source    navigator.Source
	Scheduler animated.Scheduler
	Hooks     Hooks
	Styles    Styles

	// OnTabItemPress is called after a tap has committed
	OnTabItemPress func(domain.Route)

	Spring        animated.SpringConfig
	Decay         animated.DecayConfig
	VelocityScale float64

	Interactions  *gesture.Registry
	Bus           eventbus.EventBus
	ShowIndicator bool
}

func (o *Options) setDefaults() {
	if o.Spring.Tension == 0 {
		o.Spring = animated.DefaultSpringConfig()
	}
	if o.Decay.Deceleration == 0 {
		o.Decay = animated.DefaultDecayConfig()
	}
	if o.VelocityScale == 0 {
		o.VelocityScale = 1
	}
}

// Bar is the behaviour both strategies share with the host
type Bar interface {
	// Sync reacts to navigator changes: commits and layout
	Sync()
	// Press handles a tap on tab index. It returns a transition the host must
	// wait for and hand back to Commit, or nil when the tap finished at once.
	Press(index int) *Transition
	// Commit finishes a transition on the event loop
	Commit(t *Transition)
	// TakeTransitions drains transitions started by taps the bar recognised
	// itself
	TakeTransitions() []*Transition
	// Attach registers the bar's responders for region
	Attach(sys *gesture.System, region func() gesture.Region) func()
	View() string
	Unmount()
}

// New creates the bar for strategy. scroller is only used by the native
// strategy.
func New(strategy string, opts Options, scroller Scroller) (Bar, error) {
	switch strategy {
	case DragCaptureStrategy, "":
		return NewDragBar(opts), nil
	case NativeScrollStrategy:
		if scroller == nil {
			return nil, fmt.Errorf("strategy %q needs a scroller", strategy)
		}
		return NewNativeBar(opts, scroller), nil
	default:
		return nil, fmt.Errorf("unknown tab bar strategy %q", strategy)
	}
}

// Transition is a tap waiting for the strip to finish scrolling
type Transition struct {
	Index  int
	Target float64
	// From is the committed index when the tap was pressed
	From int

	resolved  chan struct{}
	cancelled chan struct{}
	cause     error
	done      chan struct{}
	err       error
}

func newTransition(from, index int, target float64) *Transition {
	return &Transition{
		Index:     index,
		Target:    target,
		From:      from,
		resolved:  make(chan struct{}),
		cancelled: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Done is closed once the transition has finished and its lock is released
func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the transition finishes and returns its result
func (t *Transition) Wait() error {
	<-t.done
	return t.err
}

// Err returns the result of a finished transition
func (t *Transition) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

func (t *Transition) resolve() {
	close(t.resolved)
}

func (t *Transition) cancel(cause error) {
	t.cause = cause
	close(t.cancelled)
}

// base holds what both bars share: the source, options, tap recognition and
// observer notification
type base struct {
	opts    Options
	src     navigator.Source
	started []*Transition
	mounted bool
}

func newBase(opts Options) base {
	opts.setDefaults()
	return base{opts: opts, src: opts.Source, mounted: true}
}

func (b *base) metrics() Metrics {
	return NewMetrics(b.src.Layout(), len(b.src.State().Routes))
}

func (b *base) TakeTransitions() []*Transition {
	out := b.started
	b.started = nil
	return out
}

// touchable is the tab items' responder. It claims every press on the strip
// and reports a tap at strip column x when the pointer comes up where it went
// down.
func (b *base) touchable(tap func(x float64)) *gesture.Responder {
	return gesture.NewResponder(gesture.Handlers{
		OnStartShouldSetResponder: func(gesture.Event, gesture.State) bool { return true },
		OnRelease: func(_ gesture.Event, st gesture.State) {
			if math.Abs(st.DX) < 1 && math.Abs(st.DY) < 1 {
				tap(st.X0)
			}
		},
	}, nil)
}

// pressed notifies the observer and the bus about a committed tap
func (b *base) pressed(index int) {
	routes := b.src.State().Routes
	if index < 0 || index >= len(routes) {
		return
	}
	route := routes[index]
	if b.opts.OnTabItemPress != nil {
		b.opts.OnTabItemPress(route)
	}
	if b.opts.Bus != nil {
		b.opts.Bus.Publish(eventbus.TabPressedEvent{Route: route})
	}
}

func (b *base) strip(m Metrics) []string {
	return renderStrip(b.src, b.opts.Hooks, b.opts.Styles, b.opts.ShowIndicator, m.ScrollEnabled(), m.TabItemWidth())
}

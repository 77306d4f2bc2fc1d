// Package scrollview is a horizontal scroll container: programmatic scrolls,
// a scroll progress callback, and user drags and wheel steps within bounds.
package scrollview

import (
	"math"
	"time"

	"swipetabs/internal/animated"
	"swipetabs/internal/gesture"
)

// Options configures a Model
type Options struct {
	Scheduler     animated.Scheduler
	Spring        animated.SpringConfig
	Decay         animated.DecayConfig
	VelocityScale float64
	Interactions  *gesture.Registry
}

// Model is a scroll container. Programmatic scrolls are not clamped; user
// scrolling stays within [lo, hi].
type Model struct {
	opts     Options
	offset   *animated.Value
	lo, hi   float64
	onScroll func(float64)

	// set while a programmatic animated scroll runs
	programmatic bool
	onInterrupt  func()

	dragStart float64
	responder *gesture.Responder
}

// New creates a scroll view at offset 0
func New(opts Options) *Model {
	if opts.Spring.Tension == 0 {
		opts.Spring = animated.DefaultSpringConfig()
	}
	if opts.Decay.Deceleration == 0 {
		opts.Decay = animated.DefaultDecayConfig()
	}
	if opts.VelocityScale == 0 {
		opts.VelocityScale = 1
	}
	m := &Model{opts: opts, offset: animated.NewValue(0)}
	m.offset.AddListener(func(v float64) {
		if m.onScroll != nil {
			m.onScroll(v)
		}
	})
	m.responder = gesture.NewResponder(gesture.Handlers{
		OnMoveShouldSetResponderCapture: m.capture,
		OnGrant:                         m.grant,
		OnMove:                          m.move,
		OnRelease:                       m.release,
		OnTerminate:                     m.release,
	}, opts.Interactions)
	return m
}

// OnScroll sets the scroll progress callback. It receives every offset the
// view passes through, including the final one.
func (m *Model) OnScroll(fn func(offset float64)) {
	m.onScroll = fn
}

// OnInterrupt sets the callback for a programmatic scroll the user took over
// with a drag or a wheel step before it reached its offset
func (m *Model) OnInterrupt(fn func()) {
	m.onInterrupt = fn
}

// SetBounds sets the user scroll range
func (m *Model) SetBounds(lo, hi float64) {
	m.lo, m.hi = lo, math.Max(lo, hi)
}

// Bounds returns the user scroll range
func (m *Model) Bounds() (float64, float64) {
	return m.lo, m.hi
}

// Offset returns the current scroll offset
func (m *Model) Offset() float64 {
	return m.offset.Get()
}

// Scrolling reports whether an animated scroll or fling is running
func (m *Model) Scrolling() bool {
	return m.offset.Animating()
}

// ScrollTo moves to offset. An animated scroll to the current offset reports
// completion at once.
func (m *Model) ScrollTo(offset float64, animate bool) {
	if !animate || m.opts.Scheduler == nil {
		m.offset.SetValue(offset)
		return
	}
	if m.offset.Get() == offset && !m.offset.Animating() {
		if m.onScroll != nil {
			m.onScroll(offset)
		}
		return
	}
	m.offset.FlattenOffset()
	m.offset.Spring(m.opts.Scheduler, offset, m.opts.Spring, func(bool) {
		m.programmatic = false
	})
	m.programmatic = true
}

// ScrollBy moves by delta within the bounds, e.g. for a wheel step
func (m *Model) ScrollBy(delta float64) {
	m.interrupt()
	m.offset.SetValue(m.clamp(m.offset.Get() + delta))
}

// Responder returns the drag responder
func (m *Model) Responder() *gesture.Responder {
	return m.responder
}

// interrupt stops a programmatic scroll and reports it
func (m *Model) interrupt() {
	if !m.programmatic {
		return
	}
	m.programmatic = false
	m.offset.StopAnimation()
	if m.onInterrupt != nil {
		m.onInterrupt()
	}
}

func (m *Model) clamp(x float64) float64 {
	return math.Min(math.Max(x, m.lo), m.hi)
}

func (m *Model) capture(_ gesture.Event, st gesture.State) bool {
	return m.hi > m.lo && math.Abs(st.DX) >= 1 && st.IsHorizontal()
}

func (m *Model) grant(gesture.Event, gesture.State) {
	m.interrupt()
	m.offset.StopAnimation()
	m.dragStart = m.offset.Get()
}

func (m *Model) move(_ gesture.Event, st gesture.State) {
	m.offset.SetValue(m.clamp(m.dragStart - st.DX))
}

func (m *Model) release(_ gesture.Event, st gesture.State) {
	if m.opts.Scheduler == nil || st.VX == 0 {
		return
	}
	fling := &boundedDecay{
		decay: animated.NewDecay(-st.VX*m.opts.VelocityScale, m.opts.Decay),
		lo:    m.lo,
		hi:    m.hi,
	}
	m.offset.Animate(m.opts.Scheduler, fling, nil)
}

// boundedDecay is a fling that stops at the edge of the scroll range
type boundedDecay struct {
	decay  *animated.DecayAnimation
	lo, hi float64
}

func (b *boundedDecay) Start(from float64, now time.Time) {
	b.decay.Start(from, now)
}

func (b *boundedDecay) Step(now time.Time) (float64, bool) {
	v, done := b.decay.Step(now)
	switch {
	case v <= b.lo:
		return b.lo, true
	case v >= b.hi:
		return b.hi, true
	}
	return v, done
}

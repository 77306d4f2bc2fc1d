package tabbar

import (
	"context"
	"log"
	"math"
	"sync/atomic"

	"swipetabs/internal/animated"
	"swipetabs/internal/eventbus"
	"swipetabs/internal/gesture"
)

// Scroller is the scroll container the native bar drives. Scroll progress is
// reported back through NativeBar.HandleScroll.
type Scroller interface {
	ScrollTo(offset float64, animated bool)
	Offset() float64
}

// boundedScroller is implemented by scrollers that limit user scrolling
type boundedScroller interface {
	SetBounds(lo, hi float64)
}

// responderScroller is implemented by scrollers the user can drag
type responderScroller interface {
	Responder() *gesture.Responder
}

// NativeBar follows the Position with instant scrolls and scrolls with
// animation on taps, suppressing the following while such a scroll runs.
type NativeBar struct {
	base

	scroller Scroller
	listener animated.ListenerID

	locks   atomic.Int32
	pending *Transition

	// set by a committed tap; the strip is already on target, so passive
	// following waits for the Position to come to rest
	holding bool

	ctx    context.Context
	cancel context.CancelFunc

	tap    *gesture.Responder
	region func() gesture.Region
	built  Metrics
}

// NewNativeBar creates a native-scroll bar and subscribes it to the Position
func NewNativeBar(opts Options, scroller Scroller) *NativeBar {
	n := &NativeBar{
		base:     newBase(opts),
		scroller: scroller,
	}
	n.ctx, n.cancel = context.WithCancel(context.Background())
	n.tap = n.touchable(n.tapAt)
	n.listener = n.src.Position().AddListener(n.follow)
	n.Sync()
	return n
}

// Locked reports whether a tap-triggered scroll is in flight
func (n *NativeBar) Locked() bool {
	return n.locks.Load() > 0
}

// Pending returns the outstanding scroll request, or nil
func (n *NativeBar) Pending() *Transition {
	return n.pending
}

// follow scrolls along with the Position unless a tap scroll holds the lock
func (n *NativeBar) follow(v float64) {
	if !n.mounted || n.Locked() {
		return
	}
	m := n.metrics()
	if !m.ScrollEnabled() {
		return
	}
	if n.holding {
		if n.src.Position().Animating() {
			return
		}
		n.holding = false
	}
	n.scroller.ScrollTo(m.ScrollAmount(v), false)
}

// Sync updates scroll bounds and re-centers the strip when the metrics change
func (n *NativeBar) Sync() {
	if !n.mounted {
		return
	}
	m := n.metrics()
	if m == n.built {
		return
	}
	n.built = m
	if b, ok := n.scroller.(boundedScroller); ok {
		b.SetBounds(0, m.MaxScrollDistance())
	}
	if m.ScrollEnabled() && !n.Locked() {
		n.scroller.ScrollTo(m.ScrollAmount(n.src.Position().Get()), false)
	}
}

// Press starts the tap transition to index. A press on the committed index
// returns nil; with scrolling disabled the tap commits at once and also
// returns nil. A pending request is cancelled with ErrScrollSuperseded.
func (n *NativeBar) Press(index int) *Transition {
	if !n.mounted || index == n.src.State().Index {
		return nil
	}
	m := n.metrics()
	if !m.ScrollEnabled() {
		n.src.JumpToIndex(index)
		n.pressed(index)
		return nil
	}

	if n.pending != nil {
		log.Printf("TabBar: request for %d superseded by %d", n.pending.Index, index)
		n.pending.cancel(ErrScrollSuperseded)
		n.pending = nil
	}

	t := newTransition(n.src.State().Index, index, m.ScrollAmount(float64(index)))
	n.pending = t
	n.locks.Add(1)
	go n.await(t)

	n.scroller.ScrollTo(t.Target, true)
	return t
}

// await holds one share of the lock until t resolves, is superseded or the
// bar unmounts
func (n *NativeBar) await(t *Transition) {
	defer close(t.done)
	defer n.locks.Add(-1)

	select {
	case <-t.resolved:
	case <-t.cancelled:
		t.err = t.cause
	case <-n.ctx.Done():
		t.err = n.ctx.Err()
	}
}

// HandleScroll receives scroll progress. Only an offset equal to the pending
// target resolves the request.
func (n *NativeBar) HandleScroll(offset float64) {
	t := n.pending
	if t == nil || offset != t.Target {
		return
	}
	n.pending = nil
	t.resolve()
}

// HandleInterrupt abandons the pending request with ErrScrollInterrupted when
// the user takes over the scroller before it reaches the target
func (n *NativeBar) HandleInterrupt() {
	t := n.pending
	if t == nil {
		return
	}
	n.pending = nil
	t.cancel(ErrScrollInterrupted)
}

// Commit jumps to a finished transition's index. Superseded, interrupted or
// abandoned transitions only report, and so does a tap overtaken by a swipe
// that changed the committed index while the strip was scrolling.
func (n *NativeBar) Commit(t *Transition) {
	if t == nil {
		return
	}
	err := t.Wait()
	current := n.src.State().Index
	stale := err == nil && current != t.From && current != t.Index
	if n.opts.Bus != nil {
		n.opts.Bus.Publish(eventbus.ScrollSettledEvent{
			Index:      t.Index,
			Offset:     t.Target,
			Superseded: err == ErrScrollSuperseded || stale,
		})
	}
	if err != nil || !n.mounted {
		log.Printf("TabBar: transition to %d not committed: %v", t.Index, err)
		return
	}
	if stale {
		log.Printf("TabBar: transition to %d dropped, index moved from %d to %d", t.Index, t.From, current)
		n.follow(n.src.Position().Get())
		return
	}
	n.holding = true
	n.src.JumpToIndex(t.Index)
	n.pressed(t.Index)
}

// Attach registers the scroller's drag responder, if any, and inside it the
// tab items
func (n *NativeBar) Attach(sys *gesture.System, region func() gesture.Region) func() {
	n.region = region
	var detachScroll func()
	if rs, ok := n.scroller.(responderScroller); ok {
		detachScroll = sys.Attach(region, rs.Responder)
	}
	detachTap := sys.Attach(region, func() *gesture.Responder { return n.tap })
	return func() {
		detachTap()
		if detachScroll != nil {
			detachScroll()
		}
	}
}

// View renders the strip through the scroller's viewport
func (n *NativeBar) View() string {
	m := n.metrics()
	if !m.Measured {
		return ""
	}
	start := 0
	if m.ScrollEnabled() {
		start = int(math.Round(n.scroller.Offset()))
	}
	return viewport(n.strip(m), start, int(m.Width))
}

// Unmount removes the Position listener, then abandons any transition in
// flight
func (n *NativeBar) Unmount() {
	if !n.mounted {
		return
	}
	n.src.Position().RemoveListener(n.listener)
	n.mounted = false
	n.pending = nil
	n.cancel()
}

func (n *NativeBar) tapAt(x float64) {
	offset := 0.0
	if n.region != nil {
		offset = float64(n.region().X)
	}
	m := n.metrics()
	if m.ScrollEnabled() {
		offset -= n.scroller.Offset()
	}
	if i := m.IndexAt(x - offset); i >= 0 {
		if t := n.Press(i); t != nil {
			n.started = append(n.started, t)
		}
	}
}

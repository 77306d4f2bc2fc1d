package tabbar

import (
	"log"
	"math"

	"swipetabs/internal/animated"
	"swipetabs/internal/gesture"
)

// Phase is the drag bar's gesture state
type Phase int

const (
	Idle Phase = iota
	Dragging
	Releasing
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Releasing:
		return "releasing"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// DragBar translates the strip by the centering offset of the Position plus
// a ScrollOffset the user drags directly.
type DragBar struct {
	base

	scroll    *animated.Value
	phase     Phase
	velocity  float64
	lastIndex int

	built     Metrics
	centering *animated.Interpolation
	translate animated.Node

	pan *gesture.Responder
	tap *gesture.Responder

	region func() gesture.Region
}

// NewDragBar creates a drag-capture bar
func NewDragBar(opts Options) *DragBar {
	d := &DragBar{
		base:      newBase(opts),
		scroll:    animated.NewValue(0),
		lastIndex: opts.Source.State().Index,
	}
	d.pan = gesture.NewResponder(gesture.Handlers{
		OnMoveShouldSetResponder:        d.ShouldCapture,
		OnMoveShouldSetResponderCapture: d.ShouldCapture,
		OnGrant:                         d.grant,
		OnMove:                          d.move,
		OnTerminationRequest:            func(gesture.Event, gesture.State) bool { return true },
		OnRelease:                       d.release,
		OnTerminate:                     d.release,
	}, d.opts.Interactions)
	d.tap = d.touchable(d.tapAt)
	d.rebuild()
	return d
}

// ScrollOffset returns the user drag offset value
func (d *DragBar) ScrollOffset() *animated.Value {
	return d.scroll
}

// Phase returns the current gesture phase
func (d *DragBar) Phase() Phase {
	return d.phase
}

// ReleaseVelocity returns the horizontal velocity of the last release
func (d *DragBar) ReleaseVelocity() float64 {
	return d.velocity
}

// ShouldCapture claims a move when the strip scrolls and the motion is
// horizontal in both displacement and velocity
func (d *DragBar) ShouldCapture(_ gesture.Event, st gesture.State) bool {
	return d.metrics().ScrollEnabled() && st.IsHorizontal()
}

// TranslateX is the strip translation: the centering offset plus the drag
// offset, clamped to [-maxScrollDistance, 0]
func (d *DragBar) TranslateX() float64 {
	d.rebuild()
	if d.translate == nil {
		return 0
	}
	return d.translate.Get()
}

// Sync resets the drag offset when the committed index changed since the
// last call and rebuilds the centering curve for the current metrics
func (d *DragBar) Sync() {
	if !d.mounted {
		return
	}
	if index := d.src.State().Index; index != d.lastIndex {
		d.lastIndex = index
		d.resetScroll()
	}
	d.rebuild()
}

// Press resets the drag offset and commits index. A press on the committed
// index does nothing.
func (d *DragBar) Press(index int) *Transition {
	if !d.mounted || index == d.src.State().Index {
		return nil
	}
	d.scroll.StopAnimation()
	d.scroll.SetOffset(0)
	d.scroll.SetValue(0)
	d.phase = Idle
	d.lastIndex = index

	d.src.JumpToIndex(index)
	d.pressed(index)
	return nil
}

// Commit is a no-op; the drag bar never waits
func (d *DragBar) Commit(*Transition) {}

// Attach registers the strip pan responder and, inside it, the tab items
func (d *DragBar) Attach(sys *gesture.System, region func() gesture.Region) func() {
	d.region = region
	detachPan := sys.Attach(region, func() *gesture.Responder { return d.pan })
	detachTap := sys.Attach(region, func() *gesture.Responder { return d.tap })
	return func() {
		detachTap()
		detachPan()
		d.pan.ReleaseInteractionHandle()
	}
}

// View renders the visible part of the strip
func (d *DragBar) View() string {
	m := d.metrics()
	if !m.Measured {
		return ""
	}
	return viewport(d.strip(m), int(math.Round(-d.TranslateX())), int(m.Width))
}

// Unmount stops the drag offset animation
func (d *DragBar) Unmount() {
	d.mounted = false
	d.scroll.StopAnimation()
	d.pan.ReleaseInteractionHandle()
}

func (d *DragBar) grant(gesture.Event, gesture.State) {
	d.scroll.StopAnimation()
	d.scroll.ExtractOffset()
	d.phase = Dragging
}

func (d *DragBar) move(_ gesture.Event, st gesture.State) {
	d.scroll.SetValue(st.DX)
}

func (d *DragBar) release(_ gesture.Event, st gesture.State) {
	d.phase = Releasing
	d.velocity = st.VX

	if d.opts.Scheduler == nil {
		d.settled()
		return
	}
	d.phase = Settling
	d.scroll.Decay(d.opts.Scheduler, st.VX*d.opts.VelocityScale, d.opts.Decay, func(finished bool) {
		if finished {
			d.settled()
		}
	})
}

// settled ends a fling. An offset that carried the strip past either end is
// pulled back to the edge so the next drag moves it at once.
func (d *DragBar) settled() {
	d.phase = Idle
	d.rebuild()
	if d.centering == nil {
		return
	}
	c := d.centering.Get()
	lo := -d.built.MaxScrollDistance() - c
	hi := -c
	total := d.scroll.Get()
	if total < lo || total > hi {
		d.scroll.FlattenOffset()
		d.scroll.SetValue(clamp(total, lo, hi))
	}
}

// resetScroll folds the offset into the active value and springs it to zero
func (d *DragBar) resetScroll() {
	d.scroll.FlattenOffset()
	d.phase = Idle
	if d.opts.Scheduler == nil {
		d.scroll.SetValue(0)
		return
	}
	log.Printf("TabBar: committed index %d, resetting drag offset %.1f", d.lastIndex, d.scroll.Get())
	d.scroll.Spring(d.opts.Scheduler, 0, d.opts.Spring, nil)
}

// rebuild recreates the centering curve when the metrics change
func (d *DragBar) rebuild() {
	m := d.metrics()
	if d.centering != nil && m == d.built {
		return
	}
	d.built = m
	d.centering = nil
	d.translate = nil
	if !m.Measured || m.RouteCount == 0 {
		return
	}

	in := make([]float64, m.RouteCount)
	out := make([]float64, m.RouteCount)
	for i := range in {
		in[i] = float64(i)
		out[i] = -m.ScrollAmount(float64(i))
	}
	d.centering = animated.Interpolate(d.src.Position(), animated.InterpolationConfig{
		InputRange:  in,
		OutputRange: out,
	})

	maxDistance := m.MaxScrollDistance()
	if !m.ScrollEnabled() || maxDistance <= 0 {
		return
	}
	d.translate = animated.Add(d.centering, d.scroll).Interpolate(animated.InterpolationConfig{
		InputRange:  []float64{-maxDistance, 0},
		OutputRange: []float64{-maxDistance, 0},
	})
}

func (d *DragBar) tapAt(x float64) {
	offset := 0.0
	if d.region != nil {
		offset = float64(d.region().X)
	}
	if i := d.metrics().IndexAt(x - offset - d.TranslateX()); i >= 0 {
		d.Press(i)
	}
}

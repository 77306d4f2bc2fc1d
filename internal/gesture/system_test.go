package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(0, 0)

func at(x, y float64, ms int) Event {
	return Event{X: x, Y: y, Time: epoch.Add(time.Duration(ms) * time.Millisecond)}
}

func fullRegion() Region {
	return Region{X: 0, Y: 0, W: 100, H: 10}
}

// recorder captures the callbacks a responder received
type recorder struct {
	events []string
	last   State
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnGrant:     func(_ Event, s State) { r.events = append(r.events, "grant"); r.last = s },
		OnMove:      func(_ Event, s State) { r.events = append(r.events, "move"); r.last = s },
		OnRelease:   func(_ Event, s State) { r.events = append(r.events, "release"); r.last = s },
		OnTerminate: func(_ Event, s State) { r.events = append(r.events, "terminate"); r.last = s },
	}
}

func TestStateIsHorizontal(t *testing.T) {
	assert.True(t, State{DX: 10, DY: 2, VX: 0.5, VY: 0.1}.IsHorizontal())
	assert.False(t, State{DX: 2, DY: 10, VX: 0.1, VY: 0.5}.IsHorizontal())
	assert.False(t, State{DX: 10, DY: 2, VX: 0.1, VY: 0.5}.IsHorizontal())
}

func TestSystemTracksDisplacementAndVelocity(t *testing.T) {
	sys := NewSystem()
	rec := &recorder{}
	h := rec.handlers()
	h.OnStartShouldSetResponder = func(Event, State) bool { return true }
	r := NewResponder(h, nil)
	sys.Attach(fullRegion, func() *Responder { return r })

	sys.Press(at(10, 5, 0))
	sys.Move(at(14, 5, 10))
	sys.Move(at(20, 6, 20))

	assert.Equal(t, 10.0, rec.last.DX)
	assert.Equal(t, 1.0, rec.last.DY)
	assert.InDelta(t, 0.6, rec.last.VX, 1e-9)
	assert.InDelta(t, 0.1, rec.last.VY, 1e-9)

	// Release on the last motion cell keeps the final velocity
	sys.Release(at(20, 6, 40))
	assert.InDelta(t, 0.6, rec.last.VX, 1e-9)
	assert.Equal(t, []string{"grant", "move", "move", "release"}, rec.events)
	assert.Nil(t, sys.Active())
}

func TestSystemBubblesInnermostFirst(t *testing.T) {
	sys := NewSystem()
	outer, inner := &recorder{}, &recorder{}

	oh := outer.handlers()
	oh.OnMoveShouldSetResponder = func(Event, State) bool { return true }
	ih := inner.handlers()
	ih.OnMoveShouldSetResponder = func(Event, State) bool { return true }

	ro, ri := NewResponder(oh, nil), NewResponder(ih, nil)
	sys.Attach(fullRegion, func() *Responder { return ro })
	sys.Attach(fullRegion, func() *Responder { return ri })

	sys.Press(at(1, 1, 0))
	sys.Move(at(3, 1, 10))

	assert.Equal(t, ri, sys.Active())
	assert.Empty(t, outer.events)
}

func TestSystemCaptureTerminatesOwner(t *testing.T) {
	sys := NewSystem()
	reg := NewRegistry()
	outer, inner := &recorder{}, &recorder{}

	oh := outer.handlers()
	oh.OnMoveShouldSetResponderCapture = func(_ Event, s State) bool { return s.IsHorizontal() }
	ih := inner.handlers()
	ih.OnStartShouldSetResponder = func(Event, State) bool { return true }

	ro, ri := NewResponder(oh, reg), NewResponder(ih, reg)
	sys.Attach(fullRegion, func() *Responder { return ro })
	sys.Attach(fullRegion, func() *Responder { return ri })

	sys.Press(at(5, 1, 0))
	require.Equal(t, ri, sys.Active())
	assert.Equal(t, 1, reg.Active())

	// Vertical wobble does not steal the gesture
	sys.Move(at(5, 2, 10))
	require.Equal(t, ri, sys.Active())

	sys.Move(at(12, 2, 20))
	assert.Equal(t, ro, sys.Active())
	assert.Equal(t, []string{"grant", "move", "terminate"}, inner.events)
	assert.Equal(t, []string{"grant", "move"}, outer.events)
	assert.Equal(t, 1, reg.Active(), "terminated owner's handle must be cleared")

	sys.Release(at(12, 2, 30))
	assert.Equal(t, 0, reg.Active())
}

func TestSystemOwnerCanRefuseTermination(t *testing.T) {
	sys := NewSystem()
	outer, inner := &recorder{}, &recorder{}

	oh := outer.handlers()
	oh.OnMoveShouldSetResponderCapture = func(Event, State) bool { return true }
	ih := inner.handlers()
	ih.OnStartShouldSetResponder = func(Event, State) bool { return true }
	ih.OnTerminationRequest = func(Event, State) bool { return false }

	ro, ri := NewResponder(oh, nil), NewResponder(ih, nil)
	sys.Attach(fullRegion, func() *Responder { return ro })
	sys.Attach(fullRegion, func() *Responder { return ri })

	sys.Press(at(5, 1, 0))
	sys.Move(at(15, 1, 10))

	assert.Equal(t, ri, sys.Active())
	assert.Empty(t, outer.events)
}

func TestSystemIgnoresResponderOutsideRegion(t *testing.T) {
	sys := NewSystem()
	rec := &recorder{}
	h := rec.handlers()
	h.OnStartShouldSetResponder = func(Event, State) bool { return true }
	r := NewResponder(h, nil)
	detach := sys.Attach(func() Region { return Region{X: 0, Y: 0, W: 10, H: 1} }, func() *Responder { return r })

	sys.Press(at(5, 4, 0))
	assert.Nil(t, sys.Active())
	sys.Release(at(5, 4, 10))

	detach()
	sys.Press(at(5, 0, 20))
	assert.Nil(t, sys.Active())
	assert.Empty(t, rec.events)
}

func TestSystemCancelTerminates(t *testing.T) {
	sys := NewSystem()
	reg := NewRegistry()
	rec := &recorder{}
	h := rec.handlers()
	h.OnStartShouldSetResponder = func(Event, State) bool { return true }
	r := NewResponder(h, reg)
	sys.Attach(fullRegion, func() *Responder { return r })

	sys.Press(at(1, 1, 0))
	sys.Cancel()

	assert.Equal(t, []string{"grant", "terminate"}, rec.events)
	assert.Equal(t, 0, reg.Active())
	assert.False(t, r.HoldsInteraction())
}

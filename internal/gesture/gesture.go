// Package gesture turns raw pointer events into pan gestures and negotiates
// which responder owns them.
package gesture

import "time"

// Event is a single pointer sample in cell coordinates
type Event struct {
	X    float64
	Y    float64
	Time time.Time
}

// State is the accumulated gesture since the pointer went down.
// DX/DY are cumulative displacements; VX/VY are in cells per millisecond.
type State struct {
	X0, Y0       float64
	MoveX, MoveY float64
	DX, DY       float64
	VX, VY       float64
}

// Handlers is the callback bag a responder is built from. Every field is
// optional. A nil OnTerminationRequest grants termination.
type Handlers struct {
	OnStartShouldSetResponder       func(Event, State) bool
	OnMoveShouldSetResponder        func(Event, State) bool
	OnMoveShouldSetResponderCapture func(Event, State) bool

	OnGrant              func(Event, State)
	OnMove               func(Event, State)
	OnRelease            func(Event, State)
	OnTerminate          func(Event, State)
	OnTerminationRequest func(Event, State) bool
}

// Region is a rectangle of terminal cells
type Region struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside r
func (r Region) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.W) &&
		y >= float64(r.Y) && y < float64(r.Y+r.H)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// IsHorizontal reports whether horizontal motion dominates vertical motion in
// both displacement and velocity
func (s State) IsHorizontal() bool {
	return abs(s.DX) > abs(s.DY) && abs(s.VX) > abs(s.VY)
}

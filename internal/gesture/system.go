package gesture

import (
	"log"
	"sync"
)

// entry is one attached responder slot. The responder is resolved on every
// press so owners can swap responders without re-attaching.
type entry struct {
	id        int
	region    func() Region
	responder func() *Responder
}

// System negotiates gesture ownership between attached responders. Entries
// attached earlier are treated as ancestors of entries attached later:
// capture predicates are asked ancestors-first, bubble predicates
// innermost-first.
type System struct {
	mu      sync.Mutex
	entries []entry
	nextID  int

	tracking   bool
	candidates []*Responder
	active     *Responder
	state      State
	last       Event
}

// NewSystem creates an empty responder system
func NewSystem() *System {
	return &System{}
}

// Attach adds a responder slot and returns a function that removes it
func (s *System) Attach(region func() Region, responder func() *Responder) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.entries = append(s.entries, entry{id: id, region: region, responder: responder})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.entries {
			if e.id == id {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				break
			}
		}
	}
}

// Active returns the responder owning the current gesture, or nil
func (s *System) Active() *Responder {
	return s.active
}

// State returns the current gesture state
func (s *System) State() State {
	return s.state
}

// Press starts a gesture at ev
func (s *System) Press(ev Event) {
	if s.tracking {
		// A press without a release; end the previous gesture first
		s.Cancel()
	}

	s.mu.Lock()
	s.candidates = s.candidates[:0]
	for _, e := range s.entries {
		if !e.region().Contains(ev.X, ev.Y) {
			continue
		}
		if r := e.responder(); r != nil {
			s.candidates = append(s.candidates, r)
		}
	}
	s.mu.Unlock()

	s.tracking = true
	s.active = nil
	s.last = ev
	s.state = State{X0: ev.X, Y0: ev.Y, MoveX: ev.X, MoveY: ev.Y}

	// Innermost first
	for i := len(s.candidates) - 1; i >= 0; i-- {
		if s.candidates[i].wantsStart(ev, s.state) {
			s.grant(s.candidates[i], ev)
			return
		}
	}
}

// Move feeds a pointer motion sample
func (s *System) Move(ev Event) {
	if !s.tracking {
		return
	}
	s.track(ev)

	// Capture: ancestors of the current owner (or all candidates) first
	limit := len(s.candidates)
	if s.active != nil {
		limit = s.indexOf(s.active)
	}
	for i := 0; i < limit; i++ {
		c := s.candidates[i]
		if c.capturesMove(ev, s.state) {
			s.transfer(c, ev)
			break
		}
	}

	// Bubble: only when nobody owns the gesture yet
	if s.active == nil {
		for i := len(s.candidates) - 1; i >= 0; i-- {
			if s.candidates[i].wantsMove(ev, s.state) {
				s.grant(s.candidates[i], ev)
				break
			}
		}
	}

	if s.active != nil {
		s.active.move(ev, s.state)
	}
}

// Release ends the gesture at ev
func (s *System) Release(ev Event) {
	if !s.tracking {
		return
	}
	// Terminals report the release at the last motion cell; keep the
	// velocity of the final move in that case
	if ev.X != s.last.X || ev.Y != s.last.Y {
		s.track(ev)
	}
	if s.active != nil {
		s.active.release(ev, s.state)
	}
	s.reset()
}

// Cancel terminates the current gesture without a release, e.g. when the
// host loses focus
func (s *System) Cancel() {
	if !s.tracking {
		return
	}
	if s.active != nil {
		s.active.terminate(s.last, s.state)
	}
	s.reset()
}

func (s *System) reset() {
	s.tracking = false
	s.active = nil
	s.candidates = s.candidates[:0]
}

func (s *System) grant(r *Responder, ev Event) {
	s.active = r
	r.grant(ev, s.state)
}

// transfer hands the gesture to r when the current owner agrees
func (s *System) transfer(r *Responder, ev Event) {
	if s.active == nil {
		s.grant(r, ev)
		return
	}
	if s.active == r {
		return
	}
	if !s.active.allowsTermination(ev, s.state) {
		log.Printf("Gesture: owner refused termination request")
		return
	}
	s.active.terminate(ev, s.state)
	s.grant(r, ev)
}

func (s *System) indexOf(r *Responder) int {
	for i, c := range s.candidates {
		if c == r {
			return i
		}
	}
	return len(s.candidates)
}

// track updates displacement and velocity from the previous sample
func (s *System) track(ev Event) {
	dt := float64(ev.Time.Sub(s.last.Time).Microseconds()) / 1000
	if dt > 0 {
		s.state.VX = (ev.X - s.last.X) / dt
		s.state.VY = (ev.Y - s.last.Y) / dt
	}
	s.state.MoveX = ev.X
	s.state.MoveY = ev.Y
	s.state.DX = ev.X - s.state.X0
	s.state.DY = ev.Y - s.state.Y0
	s.last = ev
}

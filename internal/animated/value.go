// Package animated provides observable animated scalars for the tab view:
// values with an offset component, listeners, derived interpolation and
// addition nodes, and spring/decay animations driven by a Scheduler.
package animated

import (
	"slices"
	"sync"
	"time"
)

// Node is anything that can produce a current scalar
type Node interface {
	Get() float64
}

// Listener receives the total value (value + offset) after every change
type Listener func(value float64)

// ListenerID identifies a registered listener
type ListenerID int

// Animation drives a Value frame by frame
type Animation interface {
	// Start seeds the animation with the raw value at its first frame
	Start(from float64, now time.Time)
	// Step returns the raw value for now and whether the animation is at rest
	Step(now time.Time) (value float64, done bool)
}

// Value is an animated scalar made of a base offset and an active value.
// Get returns their sum. Listener callbacks run outside the internal lock.
type Value struct {
	mu        sync.Mutex
	value     float64
	offset    float64
	listeners map[ListenerID]Listener
	nextID    ListenerID
	current   *run
}

// run is one started animation. It is dropped, not reused, when stopped.
type run struct {
	anim    Animation
	started bool
	done    func(finished bool)
}

// NewValue creates a Value holding v with a zero offset
func NewValue(v float64) *Value {
	return &Value{
		value:     v,
		listeners: make(map[ListenerID]Listener),
	}
}

// Get returns value + offset
func (v *Value) Get() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value + v.offset
}

// Raw returns the active component without the offset
func (v *Value) Raw() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Offset returns the base offset
func (v *Value) Offset() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

// SetValue stops any running animation and sets the active component
func (v *Value) SetValue(x float64) {
	v.StopAnimation()
	v.set(x)
}

// SetOffset replaces the base offset
func (v *Value) SetOffset(x float64) {
	v.mu.Lock()
	v.offset = x
	total := v.value + v.offset
	v.mu.Unlock()
	v.notify(total)
}

// FlattenOffset merges the offset into the active component and zeroes it.
// The total is unchanged.
func (v *Value) FlattenOffset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value += v.offset
	v.offset = 0
}

// ExtractOffset moves the active component into the offset and zeroes it.
// The total is unchanged.
func (v *Value) ExtractOffset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset += v.value
	v.value = 0
}

// AddListener registers l and returns its id
func (v *Value) AddListener(l Listener) ListenerID {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextID++
	v.listeners[v.nextID] = l
	return v.nextID
}

// RemoveListener unregisters a listener. Unknown ids are ignored.
func (v *Value) RemoveListener(id ListenerID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.listeners, id)
}

// ListenerCount returns how many listeners are registered
func (v *Value) ListenerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}

// Animating reports whether an animation is running
func (v *Value) Animating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current != nil
}

// Animation returns the running animation, or nil
func (v *Value) Animation() Animation {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current == nil {
		return nil
	}
	return v.current.anim
}

// StopAnimation stops the running animation, if any. Its completion callback
// receives finished=false.
func (v *Value) StopAnimation() {
	v.mu.Lock()
	r := v.current
	v.current = nil
	v.mu.Unlock()

	if r != nil && r.done != nil {
		r.done(false)
	}
}

// Animate stops the running animation and starts a on s. done, if not nil,
// is called once with finished=true when a comes to rest, or finished=false
// when it is stopped first.
func (v *Value) Animate(s Scheduler, a Animation, done func(finished bool)) {
	v.StopAnimation()

	r := &run{anim: a, done: done}
	v.mu.Lock()
	v.current = r
	v.mu.Unlock()

	s.ScheduleFrame(v.frame(s, r))
}

// Spring animates the active component to toValue
func (v *Value) Spring(s Scheduler, toValue float64, cfg SpringConfig, done func(finished bool)) {
	v.Animate(s, NewSpring(toValue, 0, cfg), done)
}

// Decay animates the active component from its current value with velocity,
// slowing down until it stops
func (v *Value) Decay(s Scheduler, velocity float64, cfg DecayConfig, done func(finished bool)) {
	v.Animate(s, NewDecay(velocity, cfg), done)
}

func (v *Value) frame(s Scheduler, r *run) FrameFunc {
	return func(now time.Time) {
		v.mu.Lock()
		if v.current != r {
			v.mu.Unlock()
			return
		}
		if !r.started {
			r.anim.Start(v.value, now)
			r.started = true
		}
		v.mu.Unlock()

		next, done := r.anim.Step(now)

		v.mu.Lock()
		if v.current != r {
			// Stopped by a listener or another writer mid-frame
			v.mu.Unlock()
			return
		}
		if done {
			v.current = nil
		}
		v.mu.Unlock()

		v.set(next)

		if done {
			if r.done != nil {
				r.done(true)
			}
			return
		}
		s.ScheduleFrame(v.frame(s, r))
	}
}

func (v *Value) set(x float64) {
	v.mu.Lock()
	v.value = x
	total := v.value + v.offset
	v.mu.Unlock()
	v.notify(total)
}

func (v *Value) notify(total float64) {
	v.mu.Lock()
	ids := make([]ListenerID, 0, len(v.listeners))
	for id := range v.listeners {
		ids = append(ids, id)
	}
	v.mu.Unlock()

	// Registration order; a listener removed by an earlier one is skipped
	slices.Sort(ids)
	for _, id := range ids {
		v.mu.Lock()
		l, ok := v.listeners[id]
		v.mu.Unlock()
		if ok {
			l(total)
		}
	}
}

package gesture

// Responder wraps a Handlers bag. While it owns a gesture it holds an
// interaction handle in its registry; the handle is cleared on release,
// termination, or an explicit ReleaseInteractionHandle.
type Responder struct {
	handlers     Handlers
	interactions *Registry
	handle       Handle
	holding      bool
}

// NewResponder creates a responder. interactions may be nil.
func NewResponder(h Handlers, interactions *Registry) *Responder {
	return &Responder{
		handlers:     h,
		interactions: interactions,
	}
}

// HoldsInteraction reports whether the responder has an uncleared handle
func (r *Responder) HoldsInteraction() bool {
	return r.holding
}

// ReleaseInteractionHandle clears the held handle, if any. Owners must call
// it before discarding a responder that may be mid-gesture.
func (r *Responder) ReleaseInteractionHandle() {
	if !r.holding {
		return
	}
	r.holding = false
	if r.interactions != nil {
		r.interactions.ClearHandle(r.handle)
	}
}

func (r *Responder) wantsStart(ev Event, st State) bool {
	return r.handlers.OnStartShouldSetResponder != nil && r.handlers.OnStartShouldSetResponder(ev, st)
}

func (r *Responder) wantsMove(ev Event, st State) bool {
	return r.handlers.OnMoveShouldSetResponder != nil && r.handlers.OnMoveShouldSetResponder(ev, st)
}

func (r *Responder) capturesMove(ev Event, st State) bool {
	return r.handlers.OnMoveShouldSetResponderCapture != nil && r.handlers.OnMoveShouldSetResponderCapture(ev, st)
}

func (r *Responder) allowsTermination(ev Event, st State) bool {
	if r.handlers.OnTerminationRequest == nil {
		return true
	}
	return r.handlers.OnTerminationRequest(ev, st)
}

func (r *Responder) grant(ev Event, st State) {
	if r.interactions != nil && !r.holding {
		r.handle = r.interactions.CreateHandle()
		r.holding = true
	}
	if r.handlers.OnGrant != nil {
		r.handlers.OnGrant(ev, st)
	}
}

func (r *Responder) move(ev Event, st State) {
	if r.handlers.OnMove != nil {
		r.handlers.OnMove(ev, st)
	}
}

func (r *Responder) release(ev Event, st State) {
	if r.handlers.OnRelease != nil {
		r.handlers.OnRelease(ev, st)
	}
	r.ReleaseInteractionHandle()
}

func (r *Responder) terminate(ev Event, st State) {
	if r.handlers.OnTerminate != nil {
		r.handlers.OnTerminate(ev, st)
	}
	r.ReleaseInteractionHandle()
}

package animated

import (
	"math"
	"time"
)

// DecayConfig configures a decelerating animation
type DecayConfig struct {
	// Deceleration is the per-millisecond velocity retention, e.g. 0.998
	Deceleration float64
	// RestDelta stops the animation once a frame moves less than this
	RestDelta float64
}

// DefaultDecayConfig returns the standard scroll deceleration
func DefaultDecayConfig() DecayConfig {
	return DecayConfig{
		Deceleration: 0.998,
		RestDelta:    0.1,
	}
}

// DecayAnimation starts at a velocity (units per millisecond) and slows
// down exponentially:
//
//	x(t) = from + v/(1-d) * (1 - e^(-(1-d)*t))
type DecayAnimation struct {
	velocity  float64
	cfg       DecayConfig
	from      float64
	last      float64
	startTime time.Time
}

// NewDecay creates a decay animation with the given velocity
func NewDecay(velocity float64, cfg DecayConfig) *DecayAnimation {
	if cfg.Deceleration <= 0 || cfg.Deceleration >= 1 {
		cfg.Deceleration = 0.998
	}
	if cfg.RestDelta <= 0 {
		cfg.RestDelta = 0.1
	}
	return &DecayAnimation{
		velocity: velocity,
		cfg:      cfg,
	}
}

// Velocity returns the initial velocity
func (a *DecayAnimation) Velocity() float64 {
	return a.velocity
}

// Start implements Animation
func (a *DecayAnimation) Start(from float64, now time.Time) {
	a.from = from
	a.last = from
	a.startTime = now
}

// Step implements Animation
func (a *DecayAnimation) Step(now time.Time) (float64, bool) {
	k := 1 - a.cfg.Deceleration
	elapsed := float64(now.Sub(a.startTime)) / float64(time.Millisecond)
	value := a.from + (a.velocity/k)*(1-math.Exp(-k*elapsed))

	if elapsed > 0 && math.Abs(value-a.last) < a.cfg.RestDelta {
		return value, true
	}
	a.last = value
	return value, false
}

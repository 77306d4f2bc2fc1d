package animated

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig describes a spring in tension/friction terms. With unit mass
// tension is the stiffness and friction the damping coefficient.
type SpringConfig struct {
	Tension  float64
	Friction float64
	// FPS is the frame rate the integrator is stepped at
	FPS int
	// RestDisplacement and RestSpeed decide when the spring is at rest
	RestDisplacement float64
	RestSpeed        float64
}

// DefaultSpringConfig is the tab view's settle spring: tension 300,
// friction 35, which lands just past critical damping.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Tension:          300,
		Friction:         35,
		FPS:              60,
		RestDisplacement: 0.001,
		RestSpeed:        0.001,
	}
}

// AngularFrequency returns sqrt(tension) for a unit mass
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Tension)
}

// DampingRatio returns friction / (2 * sqrt(tension)) for a unit mass
func (c SpringConfig) DampingRatio() float64 {
	if c.Tension <= 0 {
		return 1
	}
	return c.Friction / (2 * math.Sqrt(c.Tension))
}

// SpringAnimation moves a value toward ToValue with harmonica's damped
// harmonic oscillator, one integrator step per frame
type SpringAnimation struct {
	toValue  float64
	cfg      SpringConfig
	spring   harmonica.Spring
	position float64
	velocity float64
}

// NewSpring creates a spring toward toValue with an initial velocity in
// units per second
func NewSpring(toValue, velocity float64, cfg SpringConfig) *SpringAnimation {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.RestDisplacement <= 0 {
		cfg.RestDisplacement = 0.001
	}
	if cfg.RestSpeed <= 0 {
		cfg.RestSpeed = 0.001
	}
	return &SpringAnimation{
		toValue:  toValue,
		cfg:      cfg,
		spring:   harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.AngularFrequency(), cfg.DampingRatio()),
		velocity: velocity,
	}
}

// ToValue returns the spring target
func (a *SpringAnimation) ToValue() float64 {
	return a.toValue
}

// Start implements Animation
func (a *SpringAnimation) Start(from float64, _ time.Time) {
	a.position = from
}

// Step implements Animation
func (a *SpringAnimation) Step(_ time.Time) (float64, bool) {
	a.position, a.velocity = a.spring.Update(a.position, a.velocity, a.toValue)

	if math.Abs(a.position-a.toValue) <= a.cfg.RestDisplacement && math.Abs(a.velocity) <= a.cfg.RestSpeed {
		a.position = a.toValue
		a.velocity = 0
		return a.toValue, true
	}
	return a.position, false
}

package animated

import "fmt"

// Extrapolate decides what happens outside the input range
type Extrapolate int

const (
	// ExtrapolateClamp holds the edge output value
	ExtrapolateClamp Extrapolate = iota
	// ExtrapolateExtend continues the edge segment linearly
	ExtrapolateExtend
)

// InterpolationConfig maps an increasing input range onto an output range
type InterpolationConfig struct {
	InputRange  []float64
	OutputRange []float64
	Extrapolate Extrapolate
}

// Interpolation is a derived node that maps its parent through a piecewise
// linear function
type Interpolation struct {
	parent Node
	cfg    InterpolationConfig
}

// Interpolate derives a node from parent. It panics when the ranges are
// empty, differ in length or the input range is not non-decreasing; those are
// programming errors.
func Interpolate(parent Node, cfg InterpolationConfig) *Interpolation {
	if err := cfg.validate(); err != nil {
		panic(err)
	}
	return &Interpolation{parent: parent, cfg: cfg}
}

// Get implements Node
func (i *Interpolation) Get() float64 {
	return Map(i.parent.Get(), i.cfg)
}

// Interpolate chains another interpolation on top of i
func (i *Interpolation) Interpolate(cfg InterpolationConfig) *Interpolation {
	return Interpolate(i, cfg)
}

func (c InterpolationConfig) validate() error {
	if len(c.InputRange) == 0 {
		return fmt.Errorf("interpolation: empty input range")
	}
	if len(c.InputRange) != len(c.OutputRange) {
		return fmt.Errorf("interpolation: input range has %d points, output range has %d", len(c.InputRange), len(c.OutputRange))
	}
	for k := 1; k < len(c.InputRange); k++ {
		if c.InputRange[k] < c.InputRange[k-1] {
			return fmt.Errorf("interpolation: input range must be non-decreasing, got %v", c.InputRange)
		}
	}
	return nil
}

// Map applies cfg to x
func Map(x float64, cfg InterpolationConfig) float64 {
	in, out := cfg.InputRange, cfg.OutputRange
	if len(in) == 1 {
		return out[0]
	}

	// Find the segment containing x; edges pick the outer segments
	seg := 1
	for seg < len(in)-1 && x > in[seg] {
		seg++
	}
	inMin, inMax := in[seg-1], in[seg]
	outMin, outMax := out[seg-1], out[seg]

	if cfg.Extrapolate == ExtrapolateClamp {
		if x <= in[0] {
			return out[0]
		}
		if x >= in[len(in)-1] {
			return out[len(out)-1]
		}
	}

	if inMin == inMax {
		if x <= inMin {
			return outMin
		}
		return outMax
	}
	t := (x - inMin) / (inMax - inMin)
	return outMin + t*(outMax-outMin)
}

// Addition is a derived node summing two nodes
type Addition struct {
	a, b Node
}

// Add returns a node whose value is a + b
func Add(a, b Node) *Addition {
	return &Addition{a: a, b: b}
}

// Get implements Node
func (s *Addition) Get() float64 {
	return s.a.Get() + s.b.Get()
}

// Interpolate derives an interpolation from the sum
func (s *Addition) Interpolate(cfg InterpolationConfig) *Interpolation {
	return Interpolate(s, cfg)
}

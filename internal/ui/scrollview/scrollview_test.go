package scrollview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipetabs/internal/animated"
	"swipetabs/internal/gesture"
)

func newModel(t *testing.T) (*Model, *animated.ManualScheduler, *[]float64) {
	t.Helper()
	s := animated.NewManualScheduler(time.Unix(0, 0), time.Second/60)
	m := New(Options{Scheduler: s, Interactions: gesture.NewRegistry()})
	m.SetBounds(0, 100)
	var seen []float64
	m.OnScroll(func(v float64) { seen = append(seen, v) })
	return m, s, &seen
}

func at(x float64, ms int) gesture.Event {
	return gesture.Event{X: x, Time: time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond)}
}

func TestInstantScrollReports(t *testing.T) {
	m, _, seen := newModel(t)
	m.ScrollTo(40, false)
	assert.Equal(t, 40.0, m.Offset())
	assert.Equal(t, []float64{40}, *seen)
}

func TestAnimatedScrollEndsExactlyOnTarget(t *testing.T) {
	m, s, seen := newModel(t)
	m.ScrollTo(72.5, true)
	assert.True(t, m.Scrolling())
	assert.Empty(t, *seen)

	s.RunUntilIdle(1000)
	require.NotEmpty(t, *seen)
	assert.Greater(t, len(*seen), 1, "progress is reported along the way")
	assert.Equal(t, 72.5, (*seen)[len(*seen)-1])
	assert.False(t, m.Scrolling())
}

func TestAnimatedScrollIsNotClamped(t *testing.T) {
	m, s, _ := newModel(t)
	m.ScrollTo(150, true)
	s.RunUntilIdle(1000)
	assert.Equal(t, 150.0, m.Offset())
}

func TestAnimatedScrollToCurrentOffsetReportsAtOnce(t *testing.T) {
	m, s, seen := newModel(t)
	m.ScrollTo(30, false)
	m.ScrollTo(30, true)
	assert.Equal(t, []float64{30, 30}, *seen)
	assert.Equal(t, 0, s.Pending())
}

func TestScrollByClamps(t *testing.T) {
	m, _, _ := newModel(t)
	m.ScrollBy(30)
	assert.Equal(t, 30.0, m.Offset())
	m.ScrollBy(-50)
	assert.Equal(t, 0.0, m.Offset())
	m.ScrollBy(500)
	assert.Equal(t, 100.0, m.Offset())
}

func TestDragScrollsWithinBounds(t *testing.T) {
	m, _, _ := newModel(t)
	sys := gesture.NewSystem()
	sys.Attach(func() gesture.Region { return gesture.Region{W: 50, H: 1} }, m.Responder)

	sys.Press(at(40, 0))
	sys.Move(at(30, 100))
	require.Same(t, m.Responder(), sys.Active())
	assert.Equal(t, 10.0, m.Offset())

	sys.Move(at(-200, 200))
	assert.Equal(t, 100.0, m.Offset())
	sys.Release(at(-200, 200))
}

func TestFlingStopsAtEdge(t *testing.T) {
	m, s, seen := newModel(t)
	sys := gesture.NewSystem()
	sys.Attach(func() gesture.Region { return gesture.Region{W: 50, H: 1} }, m.Responder)

	sys.Press(at(40, 0))
	sys.Move(at(30, 10))
	sys.Release(at(30, 10))
	assert.True(t, m.Scrolling())

	s.RunUntilIdle(1000)
	assert.Equal(t, 100.0, m.Offset())
	assert.Equal(t, 100.0, (*seen)[len(*seen)-1])
}

func TestNoCaptureWithoutRange(t *testing.T) {
	m, _, _ := newModel(t)
	m.SetBounds(0, 0)
	assert.False(t, m.capture(gesture.Event{}, gesture.State{DX: 10, VX: 1}))
	lo, hi := m.Bounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestWheelInterruptsAnimatedScroll(t *testing.T) {
	m, s, seen := newModel(t)
	interrupts := 0
	m.OnInterrupt(func() { interrupts++ })

	m.ScrollTo(80, true)
	s.Step()
	m.ScrollBy(5)
	assert.Equal(t, 1, interrupts)
	assert.False(t, m.Scrolling())

	s.RunUntilIdle(1000)
	assert.NotContains(t, *seen, 80.0, "the stopped scroll never reports its target")

	m.ScrollBy(5)
	assert.Equal(t, 1, interrupts, "only a running programmatic scroll is interrupted")
}

func TestDragInterruptsAnimatedScroll(t *testing.T) {
	m, s, _ := newModel(t)
	interrupts := 0
	m.OnInterrupt(func() { interrupts++ })
	sys := gesture.NewSystem()
	sys.Attach(func() gesture.Region { return gesture.Region{W: 50, H: 1} }, m.Responder)

	m.ScrollTo(80, true)
	s.Step()
	sys.Press(at(40, 0))
	sys.Move(at(30, 100))
	assert.Equal(t, 1, interrupts)
	sys.Release(at(30, 100))
}

func TestFinishedScrollIsNotInterrupted(t *testing.T) {
	m, s, _ := newModel(t)
	interrupts := 0
	m.OnInterrupt(func() { interrupts++ })

	m.ScrollTo(60, true)
	s.RunUntilIdle(1000)
	m.ScrollBy(5)
	m.ScrollTo(20, false)
	assert.Zero(t, interrupts)
}

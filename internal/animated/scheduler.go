package animated

import (
	"sync"
	"time"
)

// FrameFunc is called once per animation frame with the frame timestamp
type FrameFunc func(now time.Time)

// Scheduler hands out animation frames. Hosts decide what a frame is: the
// terminal host ties it to a bubbletea tick, tests step it by hand.
type Scheduler interface {
	ScheduleFrame(fn FrameFunc)
}

// ManualScheduler queues frames until Step is called
type ManualScheduler struct {
	mu       sync.Mutex
	now      time.Time
	interval time.Duration
	queue    []FrameFunc
}

// NewManualScheduler creates a scheduler whose clock starts at start and
// advances by interval on every Step
func NewManualScheduler(start time.Time, interval time.Duration) *ManualScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &ManualScheduler{
		now:      start,
		interval: interval,
	}
}

// ScheduleFrame queues fn for the next Step
func (s *ManualScheduler) ScheduleFrame(fn FrameFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, fn)
}

// Step advances the clock by one interval and runs every frame callback that
// was queued before the call. Callbacks queued while stepping wait for the
// next Step. Returns the number of callbacks run.
func (s *ManualScheduler) Step() int {
	s.mu.Lock()
	s.now = s.now.Add(s.interval)
	now := s.now
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, fn := range queue {
		fn(now)
	}
	return len(queue)
}

// RunUntilIdle steps until no frames are queued or maxSteps is reached.
// Returns the number of steps taken.
func (s *ManualScheduler) RunUntilIdle(maxSteps int) int {
	steps := 0
	for steps < maxSteps && s.Pending() > 0 {
		s.Step()
		steps++
	}
	return steps
}

// Pending returns the number of queued frame callbacks
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Now returns the scheduler clock
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"swipetabs/internal/animated"
)

// frameMsg is sent on a timer to advance animations
type frameMsg time.Time

// FrameScheduler implements animated.Scheduler on bubbletea ticks. Frames are
// queued and run from Update, so animations never leave the event loop.
type FrameScheduler struct {
	interval time.Duration
	queue    []animated.FrameFunc
	ticking  bool
}

// NewFrameScheduler creates a scheduler ticking fps times per second
func NewFrameScheduler(fps int) *FrameScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &FrameScheduler{interval: time.Second / time.Duration(fps)}
}

// ScheduleFrame queues fn for the next tick
func (f *FrameScheduler) ScheduleFrame(fn animated.FrameFunc) {
	f.queue = append(f.queue, fn)
}

// Pending returns the number of queued frames
func (f *FrameScheduler) Pending() int {
	return len(f.queue)
}

// Cmd returns the tick for the next frame, or nil when nothing is queued or
// a tick is already on its way
func (f *FrameScheduler) Cmd() tea.Cmd {
	if f.ticking || len(f.queue) == 0 {
		return nil
	}
	f.ticking = true
	return tea.Tick(f.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Run runs the frames queued before this call
func (f *FrameScheduler) Run(now time.Time) int {
	f.ticking = false
	queue := f.queue
	f.queue = nil
	for _, fn := range queue {
		fn(now)
	}
	return len(queue)
}

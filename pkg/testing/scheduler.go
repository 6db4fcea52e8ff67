package testing

import (
	"sync"

	"github.com/go-drift/analogclock/pkg/animation"
)

// FakeScheduler is a frame scheduler pumped by hand. It records how often
// frames were requested and cancelled.
type FakeScheduler struct {
	sched *animation.Scheduler

	mu       sync.Mutex
	requests int
	cancels  int
}

// NewFakeScheduler creates an idle FakeScheduler.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{sched: animation.NewScheduler()}
}

// RequestFrame implements the frame scheduling capability.
func (s *FakeScheduler) RequestFrame(callback animation.FrameCallback) animation.FrameID {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
	return s.sched.RequestFrame(callback)
}

// CancelFrame implements the frame scheduling capability.
func (s *FakeScheduler) CancelFrame(id animation.FrameID) {
	s.mu.Lock()
	s.cancels++
	s.mu.Unlock()
	s.sched.CancelFrame(id)
}

// Pump runs one frame stamped with clk.Now() and returns how many callbacks ran.
func (s *FakeScheduler) Pump(clk animation.Clock) int {
	return s.sched.RunFrame(clk.Now())
}

// Active returns the number of outstanding frame callbacks.
func (s *FakeScheduler) Active() int {
	return s.sched.Pending()
}

// Requests returns how many times RequestFrame was called.
func (s *FakeScheduler) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Cancels returns how many times CancelFrame was called.
func (s *FakeScheduler) Cancels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancels
}

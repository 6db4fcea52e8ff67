// Package animation provides the timing primitives behind the clock loop:
// a wall-clock source and a frame scheduler with "run on the next display
// refresh" semantics.
//
// # Frame Scheduling
//
// [Scheduler.RequestFrame] registers a one-shot callback for the next frame.
// The engine calls [Scheduler.RunFrame] once per display refresh. A callback
// that wants to keep animating requests another frame from inside itself:
//
//	var loop animation.FrameCallback
//	loop = func(now time.Time) {
//	    update(now)
//	    id = sched.RequestFrame(loop)
//	}
//	id = sched.RequestFrame(loop)
//
// Cancel an outstanding request with [Scheduler.CancelFrame].
package animation

import (
	"sync"
	"time"

	"github.com/go-drift/analogclock/pkg/errors"
)

// FrameID identifies a requested frame callback. The zero value means none.
type FrameID uint64

// FrameCallback runs once on a display refresh. now is the frame timestamp.
type FrameCallback func(now time.Time)

// Scheduler holds one-shot frame callbacks until the next RunFrame.
//
// Request and cancel are safe from any goroutine; callbacks only run on the
// goroutine calling RunFrame.
type Scheduler struct {
	mu      sync.Mutex
	nextID  FrameID
	pending map[FrameID]FrameCallback
	order   []FrameID
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[FrameID]FrameCallback)}
}

// RequestFrame schedules callback for the next frame and returns its id.
// A nil callback is ignored and returns 0.
func (s *Scheduler) RequestFrame(callback FrameCallback) FrameID {
	if callback == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.pending[id] = callback
	s.order = append(s.order, id)
	return id
}

// CancelFrame removes a pending callback. Unknown, already-run and zero ids
// are ignored.
func (s *Scheduler) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// HasPending reports whether any callback is waiting for a frame.
func (s *Scheduler) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Pending returns the number of callbacks waiting for a frame.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// RunFrame runs every callback requested before this call, in request order,
// and returns how many ran. Callbacks requested while the frame runs wait for
// the next frame. A panicking callback is reported and does not stop the
// others.
func (s *Scheduler) RunFrame(now time.Time) int {
	s.mu.Lock()
	ids := s.order
	s.order = nil
	s.mu.Unlock()

	ran := 0
	for _, id := range ids {
		s.mu.Lock()
		callback, ok := s.pending[id]
		delete(s.pending, id)
		s.mu.Unlock()
		if !ok {
			continue
		}
		runCallback(callback, now)
		ran++
	}
	return ran
}

func runCallback(callback FrameCallback, now time.Time) {
	defer errors.Recover("animation.frame")
	callback(now)
}

package clock

import (
	"time"

	"github.com/go-drift/analogclock/pkg/animation"
)

// FrameScheduler runs callbacks on the next display refresh.
type FrameScheduler interface {
	RequestFrame(callback animation.FrameCallback) animation.FrameID
	CancelFrame(id animation.FrameID)
}

// DriverState is the state of the animation loop.
type DriverState int

const (
	// Paused means no frame is scheduled.
	Paused DriverState = iota
	// Running means exactly one frame is scheduled at any time.
	Running
)

func (s DriverState) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

// Driver keeps a self-rescheduling frame callback alive while the view is
// visible. It must be used from a single goroutine, the one running frames.
type Driver struct {
	sched  FrameScheduler
	render func(now time.Time)

	state  DriverState
	handle animation.FrameID
}

// NewDriver creates a paused driver that calls render once per frame.
func NewDriver(sched FrameScheduler, render func(now time.Time)) *Driver {
	return &Driver{sched: sched, render: render}
}

// State returns the current loop state.
func (d *Driver) State() DriverState {
	return d.state
}

// Handle returns the outstanding frame id, or 0 when none is scheduled.
func (d *Driver) Handle() animation.FrameID {
	return d.handle
}

// Start enters Running and schedules the first frame.
func (d *Driver) Start() {
	d.resume()
}

// SetHidden pauses the loop when hidden and resumes it when visible.
// Resuming does not replay missed frames: the next frame shows current time.
func (d *Driver) SetHidden(hidden bool) {
	if hidden {
		d.pause()
	} else {
		d.resume()
	}
}

func (d *Driver) pause() {
	d.state = Paused
	if d.handle != 0 {
		d.sched.CancelFrame(d.handle)
		d.handle = 0
	}
}

func (d *Driver) resume() {
	d.state = Running
	if d.handle == 0 {
		d.handle = d.sched.RequestFrame(d.frame)
	}
}

// frame re-arms before rendering so a failing render cannot end the loop.
func (d *Driver) frame(now time.Time) {
	d.handle = 0
	if d.state != Running {
		return
	}
	d.handle = d.sched.RequestFrame(d.frame)
	d.render(now)
}

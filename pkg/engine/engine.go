// Package engine runs the display refresh loop.
//
// All frame callbacks and dispatched work execute on the goroutine calling
// [Engine.Run], so code driven by the engine needs no locking. Other
// goroutines hand work to the loop with [Engine.Dispatch].
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/go-drift/analogclock/pkg/animation"
	"github.com/go-drift/analogclock/pkg/errors"
)

const (
	// DefaultFPS is the refresh rate used when none is configured.
	DefaultFPS = 60

	frameTimingSamples = 120
)

// Presenter publishes the rendered state after a frame changed it.
type Presenter interface {
	Present(frameTime time.Time) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(frameTime time.Time) error

// Present calls f.
func (f PresenterFunc) Present(frameTime time.Time) error { return f(frameTime) }

// Config configures an Engine.
type Config struct {
	// FPS is the display refresh rate. Zero means DefaultFPS.
	FPS int
	// Clock stamps frames. Nil means the system clock.
	Clock animation.Clock
	// Presenter is called after every frame that ran callbacks. Optional.
	Presenter Presenter
	Logger    *zap.Logger
}

// Engine paces display refreshes and flushes scheduled frame callbacks.
type Engine struct {
	scheduler *animation.Scheduler
	interval  time.Duration
	clock     animation.Clock
	presenter Presenter
	logger    *zap.Logger

	dispatchMu    sync.Mutex
	dispatchQueue []func()
	wake          chan struct{}

	frames  atomic.Uint64
	timings *FrameTimingBuffer
}

// New creates an engine with its own frame scheduler.
func New(cfg Config) *Engine {
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	clk := cfg.Clock
	if clk == nil {
		clk = animation.SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		scheduler: animation.NewScheduler(),
		interval:  time.Second / time.Duration(fps),
		clock:     clk,
		presenter: cfg.Presenter,
		logger:    logger,
		wake:      make(chan struct{}, 1),
		timings:   NewFrameTimingBuffer(frameTimingSamples),
	}
}

// Scheduler returns the frame scheduler flushed by this engine.
func (e *Engine) Scheduler() *animation.Scheduler {
	return e.scheduler
}

// Interval returns the time between display refreshes.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Dispatch queues callback to run on the loop goroutine. Safe to call from
// any goroutine; callbacks run in the order they were dispatched.
func (e *Engine) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	e.dispatchMu.Lock()
	e.dispatchQueue = append(e.dispatchQueue, callback)
	e.dispatchMu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Call runs fn on the loop goroutine and waits until it returns or ctx
// ends. fn still runs later if ctx ends first.
func (e *Engine) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	e.Dispatch(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) drainDispatchQueue() {
	e.dispatchMu.Lock()
	callbacks := e.dispatchQueue
	e.dispatchQueue = nil
	e.dispatchMu.Unlock()

	for _, cb := range callbacks {
		runDispatched(cb)
	}
}

func runDispatched(cb func()) {
	defer errors.Recover("engine.dispatch")
	cb()
}

// Run drives the loop until ctx is cancelled. Refreshes with no scheduled
// callback do no work, so an idle or paused clock only pays for ticker
// wakeups.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.logger.Info("engine started", zap.Duration("interval", e.interval))
	defer e.logger.Info("engine stopped", zap.Uint64("frames", e.frames.Load()))

	for {
		select {
		case <-ctx.Done():
			e.drainDispatchQueue()
			return nil
		case <-e.wake:
			e.drainDispatchQueue()
		case <-ticker.C:
			e.drainDispatchQueue()
			e.StepFrame()
		}
	}
}

// StepFrame runs one display refresh on the calling goroutine and reports
// whether any frame callback ran. Run calls it on every tick; tests and
// single-shot renderers call it directly.
func (e *Engine) StepFrame() bool {
	start := time.Now()
	if e.scheduler.RunFrame(e.clock.Now()) == 0 {
		return false
	}

	e.Present()

	e.timings.Add(time.Since(start))
	e.frames.Add(1)
	return true
}

// Present hands the current scene to the presenter outside of a frame.
// It must run on the loop goroutine; StepFrame calls it after callbacks ran
// and callers use it to publish a scene that changed without a frame, such
// as the first render of a clock mounted while hidden.
func (e *Engine) Present() {
	if e.presenter == nil {
		return
	}
	errors.Check("engine.present", errors.KindRender, e.presenter.Present(e.clock.Now()))
}

// Frames returns the number of frames that ran callbacks.
func (e *Engine) Frames() uint64 {
	return e.frames.Load()
}

// FrameTimings returns the ring buffer of recent frame durations.
func (e *Engine) FrameTimings() *FrameTimingBuffer {
	return e.timings
}

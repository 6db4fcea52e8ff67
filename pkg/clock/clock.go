// Package clock renders an analog clock onto an element tree.
//
// The clock binds three hand elements and a face container, generates twelve
// rim marks once, and then rotates the hands on every display frame while the
// view is visible:
//
//	c := clock.New(doc, scheduler, platform.Lifecycle, animation.SystemClock{})
//	c.Mount()
//	defer c.Unmount()
//
// Missing elements degrade the clock instead of failing it: whatever was
// bound keeps animating.
package clock

import (
	"time"

	"go.uber.org/zap"

	"github.com/go-drift/analogclock/pkg/animation"
	"github.com/go-drift/analogclock/pkg/rendering"
)

// Host is the rendering surface the clock lives in.
type Host interface {
	Surface
	ElementFactory
}

// Visibility reports whether the host view is on screen.
type Visibility interface {
	Hidden() bool
	// AddVisibilityHandler registers a change handler and returns its remover.
	AddVisibilityHandler(handler func(hidden bool)) func()
}

// Option configures an AnalogClock.
type Option func(*AnalogClock)

// WithSelectors overrides the element selectors.
func WithSelectors(sel Selectors) Option {
	return func(c *AnalogClock) { c.selectors = sel }
}

// WithTickStyle overrides the rim mark style.
func WithTickStyle(style TickStyle) Option {
	return func(c *AnalogClock) { c.ticks.Style = style }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *AnalogClock) { c.logger = l }
}

// WithDispatcher routes visibility changes through dispatch, which must run
// the function on the goroutine that runs frames.
func WithDispatcher(dispatch func(func())) Option {
	return func(c *AnalogClock) { c.dispatch = dispatch }
}

// AnalogClock ties element binding, rim marks and the frame loop together.
type AnalogClock struct {
	host       Host
	visibility Visibility
	clock      animation.Clock
	selectors  Selectors
	logger     *zap.Logger
	dispatch   func(func())

	ticks   *TickGenerator
	driver  *Driver
	handles ElementHandles

	mounted          bool
	removeVisibility func()
}

// New creates an unmounted clock.
func New(host Host, sched FrameScheduler, visibility Visibility, clk animation.Clock, opts ...Option) *AnalogClock {
	c := &AnalogClock{
		host:       host,
		visibility: visibility,
		clock:      clk,
		selectors:  DefaultSelectors(),
		logger:     zap.NewNop(),
		dispatch:   func(fn func()) { fn() },
		ticks:      NewTickGenerator(DefaultTickStyle()),
	}
	for _, o := range opts {
		o(c)
	}
	c.driver = NewDriver(sched, c.frame)
	return c
}

// Mount binds elements, draws the rim marks, shows the current time
// immediately and starts the frame loop. Calling Mount again does nothing.
func (c *AnalogClock) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true

	c.handles = Bind(c.host, c.selectors)
	marks := c.ticks.Generate(c.handles.Face, c.host)
	c.Update()
	c.driver.Start()

	if c.visibility != nil {
		c.removeVisibility = c.visibility.AddVisibilityHandler(func(hidden bool) {
			c.dispatch(func() { c.SetHidden(hidden) })
		})
		if c.visibility.Hidden() {
			c.driver.SetHidden(true)
		}
	}

	c.logger.Info("analog clock mounted",
		zap.Int("ticks", len(marks)),
		zap.Strings("missing", c.handles.Missing()),
		zap.Stringer("state", c.driver.State()),
	)
}

// Unmount stops the frame loop and detaches from visibility changes.
// Rim marks stay in place.
func (c *AnalogClock) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	if c.removeVisibility != nil {
		c.removeVisibility()
		c.removeVisibility = nil
	}
	c.driver.SetHidden(true)
}

// SetHidden forwards a visibility change to the frame loop.
func (c *AnalogClock) SetHidden(hidden bool) {
	if !c.mounted {
		return
	}
	c.driver.SetHidden(hidden)
	c.logger.Debug("analog clock visibility changed",
		zap.Bool("hidden", hidden),
		zap.Stringer("state", c.driver.State()),
	)
}

// Update rotates the hands to the clock's current time.
func (c *AnalogClock) Update() {
	Apply(c.handles, AnglesAt(c.clock.Now()))
}

// frame ignores the refresh timestamp: hands follow the wall clock, the
// frame time only paces redraws.
func (c *AnalogClock) frame(time.Time) {
	c.Update()
}

// Handles returns the bound elements.
func (c *AnalogClock) Handles() ElementHandles {
	return c.handles
}

// State returns the frame loop state.
func (c *AnalogClock) State() DriverState {
	return c.driver.State()
}

// TickState returns whether the rim marks were generated.
func (c *AnalogClock) TickState() TickState {
	return c.ticks.State()
}

// Angles returns the angles for the clock's current time.
func (c *AnalogClock) Angles() Angles {
	return AnglesAt(c.clock.Now())
}

var _ Host = (*rendering.Document)(nil)

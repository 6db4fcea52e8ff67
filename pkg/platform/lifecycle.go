// Package platform exposes host lifecycle state to the clock.
//
// Hosts report transitions with [LifecycleService.SetState]. The clock only
// cares whether it is visible: paused and detached views are hidden, resumed
// and inactive views are still on screen.
package platform

import (
	"fmt"
	"sync"
)

// Lifecycle is the process-wide lifecycle service.
var Lifecycle = NewLifecycleService()

// LifecycleState represents the current host view lifecycle state.
type LifecycleState string

const (
	// LifecycleStateResumed indicates the view is visible and responding to input.
	LifecycleStateResumed LifecycleState = "resumed"

	// LifecycleStateInactive indicates the view is visible but transitioning
	// (e.g., a system dialog is shown over it).
	LifecycleStateInactive LifecycleState = "inactive"

	// LifecycleStatePaused indicates the view is not visible but still running.
	LifecycleStatePaused LifecycleState = "paused"

	// LifecycleStateDetached indicates the runtime is alive but no view is attached.
	LifecycleStateDetached LifecycleState = "detached"
)

// ParseLifecycleState validates s.
func ParseLifecycleState(s string) (LifecycleState, error) {
	switch st := LifecycleState(s); st {
	case LifecycleStateResumed, LifecycleStateInactive, LifecycleStatePaused, LifecycleStateDetached:
		return st, nil
	default:
		return "", fmt.Errorf("unknown lifecycle state %q", s)
	}
}

// Hidden reports whether the state means the view is off screen.
func (s LifecycleState) Hidden() bool {
	return s == LifecycleStatePaused || s == LifecycleStateDetached
}

// LifecycleHandler is called when lifecycle state changes.
type LifecycleHandler func(state LifecycleState)

// LifecycleService tracks lifecycle state and notifies handlers on change.
type LifecycleService struct {
	mu       sync.RWMutex
	state    LifecycleState
	nextID   int
	handlers map[int]LifecycleHandler
	order    []int
}

// NewLifecycleService returns a service in the resumed state.
func NewLifecycleService() *LifecycleService {
	return &LifecycleService{
		state:    LifecycleStateResumed,
		handlers: make(map[int]LifecycleHandler),
	}
}

// State returns the current lifecycle state.
func (l *LifecycleService) State() LifecycleState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// IsResumed returns true if the view is in the resumed state.
func (l *LifecycleService) IsResumed() bool {
	return l.State() == LifecycleStateResumed
}

// Hidden reports whether the view is currently off screen.
func (l *LifecycleService) Hidden() bool {
	return l.State().Hidden()
}

// AddHandler registers a handler to be called on lifecycle changes.
// Returns a function that removes the handler; calling it twice is safe.
func (l *LifecycleService) AddHandler(handler LifecycleHandler) func() {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.handlers[id] = handler
	l.order = append(l.order, id)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.handlers, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
		l.mu.Unlock()
	}
}

// AddVisibilityHandler registers a handler that fires only when the view
// flips between hidden and visible.
func (l *LifecycleService) AddVisibilityHandler(handler func(hidden bool)) func() {
	var mu sync.Mutex
	last := l.Hidden()
	return l.AddHandler(func(state LifecycleState) {
		hidden := state.Hidden()
		mu.Lock()
		changed := hidden != last
		last = hidden
		mu.Unlock()
		if changed {
			handler(hidden)
		}
	})
}

// SetState updates the lifecycle state and notifies handlers. Setting the
// current state again is a no-op.
func (l *LifecycleService) SetState(newState LifecycleState) {
	l.mu.Lock()
	if l.state == newState {
		l.mu.Unlock()
		return
	}
	l.state = newState
	handlers := make([]LifecycleHandler, 0, len(l.order))
	for _, id := range l.order {
		handlers = append(handlers, l.handlers[id])
	}
	l.mu.Unlock()

	for _, h := range handlers {
		h(newState)
	}
}

// Package errors provides structured, non-fatal error reporting for the clock.
//
// Nothing reported here stops the animation loop. Components report what went
// wrong through [Report] and keep running in a degraded mode.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInit indicates an initialization error.
	KindInit
	// KindMissingElement indicates one or more visual elements could not be bound.
	KindMissingElement
	// KindDegenerateLayout indicates a container had no measurable size.
	KindDegenerateLayout
	// KindRender indicates a rendering or presentation error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindMissingElement:
		return "missing_element"
	case KindDegenerateLayout:
		return "degenerate_layout"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ClockError represents a structured error in the clock runtime.
type ClockError struct {
	// Op is the operation that failed (e.g., "clock.Bind").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.frame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// MissingElementError lists the element roles that could not be resolved.
type MissingElementError struct {
	// Roles names the missing elements (e.g., "second-hand").
	Roles []string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("required elements not found: %s", strings.Join(e.Roles, ", "))
}

// DegenerateLayoutError reports a container whose measured size is unusable.
type DegenerateLayoutError struct {
	Width  float64
	Height float64
}

func (e *DegenerateLayoutError) Error() string {
	return fmt.Sprintf("container has no usable size (%gx%g)", e.Width, e.Height)
}

// ErrorHandler receives errors reported by the clock runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ClockError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// stackDepth caps how many frames a captured stack keeps.
const stackDepth = 32

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// SetHandler routes clock errors and frame panics to h and returns the
// handler it replaced. nil restores a LogHandler on the global zap logger.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	prev := handler
	handler = h
	handlerMu.Unlock()
	return prev
}

// Handler returns the installed handler.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// Report hands err to the installed handler, stamping it if needed.
func Report(err *ClockError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// Check reports a non-nil err as a ClockError of the given kind and
// returns whether it did. Frame work uses it where a failure degrades the
// clock but must not stop the loop.
func Check(op string, kind ErrorKind, err error) bool {
	if err == nil {
		return false
	}
	Report(&ClockError{Op: op, Kind: kind, Err: err})
	return true
}

// ReportPanic hands a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in the deferring function under op and lets the
// caller carry on. Frame callbacks and dispatched work defer it:
//
//	defer errors.Recover("animation.frame")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line"
// entry per frame. Runtime internals such as the panic machinery are left
// out.
func CaptureStack() string {
	var pcs [stackDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

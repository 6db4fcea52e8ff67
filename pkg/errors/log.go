package errors

import (
	"go.uber.org/zap"
)

// LogHandler is an ErrorHandler that writes errors through zap.
type LogHandler struct {
	// Logger receives the entries. A nil Logger uses zap.L().
	Logger *zap.Logger
	// Verbose enables stack traces in the output.
	Verbose bool
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.L()
}

// HandleError logs a ClockError. Degraded-mode kinds are logged as warnings.
func (h *LogHandler) HandleError(err *ClockError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	switch err.Kind {
	case KindMissingElement, KindDegenerateLayout:
		h.logger().Warn("analog clock degraded", fields...)
	default:
		h.logger().Error("analog clock error", fields...)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("analog clock panic", fields...)
}

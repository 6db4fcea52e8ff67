package errors

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestClockErrorString(t *testing.T) {
	err := &ClockError{
		Op:   "clock.Bind",
		Kind: KindMissingElement,
		Err:  &MissingElementError{Roles: []string{"second-hand", "face"}},
	}
	got := err.Error()
	want := "clock.Bind [missing_element]: required elements not found: second-hand, face"
	if got != want {
		t.Errorf("ClockError.Error() = %q, want %q", got, want)
	}
}

func TestClockErrorUnwrap(t *testing.T) {
	inner := &DegenerateLayoutError{Width: 0, Height: 0}
	err := &ClockError{Op: "clock.Generate", Kind: KindDegenerateLayout, Err: inner}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the underlying error")
	}
	if !strings.Contains(err.Error(), "0x0") {
		t.Errorf("error string %q should contain the measured size", err.Error())
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInit, "init"},
		{KindMissingElement, "missing_element"},
		{KindDegenerateLayout, "degenerate_layout"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "engine.frame"
	if got, want := err.Error(), "panic in engine.frame: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *ClockError
	handler := &testHandler{onError: func(err *ClockError) { captured = err }}

	oldHandler := SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&ClockError{
		Op:   "test.op",
		Kind: KindInit,
		Err:  &MissingElementError{Roles: []string{"face"}},
	})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	handler := &testHandler{onError: func(*ClockError) { called = true }}

	oldHandler := SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(nil)
	if called {
		t.Error("Report(nil) should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	oldHandler := SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerReturnsPrevious(t *testing.T) {
	first := &testHandler{}
	oldHandler := SetHandler(first)
	defer SetHandler(oldHandler)

	if prev := SetHandler(nil); prev != first {
		t.Errorf("SetHandler returned %T, want the handler it replaced", prev)
	}
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install a LogHandler, got %T", Handler())
	}
}

func TestCheck(t *testing.T) {
	var captured []*ClockError
	oldHandler := SetHandler(&testHandler{onError: func(err *ClockError) { captured = append(captured, err) }})
	defer SetHandler(oldHandler)

	if Check("sink.Present", KindRender, nil) {
		t.Error("Check(nil) should report nothing")
	}
	cause := fmt.Errorf("disk full")
	if !Check("sink.Present", KindRender, cause) {
		t.Error("Check should report a non-nil error")
	}
	if len(captured) != 1 {
		t.Fatalf("captured %d errors, want 1", len(captured))
	}
	if got := captured[0]; got.Op != "sink.Present" || got.Kind != KindRender || got.Err != cause {
		t.Errorf("reported %+v", got)
	}
}

func TestCaptureStackSkipsRuntimeFrames(t *testing.T) {
	var stack string
	func() {
		defer func() {
			recover()
			stack = CaptureStack()
		}()
		panic("boom")
	}()
	if !strings.Contains(stack, "TestCaptureStackSkipsRuntimeFrames") {
		t.Errorf("stack should name the test function, got:\n%s", stack)
	}
	if strings.Contains(stack, "runtime.gopanic") {
		t.Errorf("stack should not contain runtime frames, got:\n%s", stack)
	}
}

func TestLogHandlerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := &LogHandler{Logger: zap.New(core)}

	h.HandleError(&ClockError{Op: "clock.Bind", Kind: KindMissingElement, Err: &MissingElementError{Roles: []string{"face"}}})
	h.HandleError(&ClockError{Op: "sink.Present", Kind: KindRender, Err: &DegenerateLayoutError{}})
	h.HandlePanic(&PanicError{Op: "engine.frame", Value: "boom"})

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d log entries, want 3", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("missing element logged at %v, want warn", entries[0].Level)
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Errorf("render error logged at %v, want error", entries[1].Level)
	}
	if got := entries[0].ContextMap()["op"]; got != "clock.Bind" {
		t.Errorf("op field = %v, want clock.Bind", got)
	}
	if entries[2].Message != "analog clock panic" {
		t.Errorf("panic message = %q", entries[2].Message)
	}
}

type testHandler struct {
	onError func(*ClockError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *ClockError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

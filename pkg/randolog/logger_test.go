package randolog

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLogger(zap.New(core)), logs
}

func TestLoggerEmitsExpectedEvents(t *testing.T) {
	l, logs := newObserved()

	l.RunStarted(42)
	l.Attempt(1)
	l.Retry(errors.New("boom"))
	l.OutOfLocations(2, 3, errors.New("stuck"))
	l.SphereAdvanced(0, 1, 5)
	l.ValidationFailed(errors.New("bad placement"))

	if got := logs.Len(); got != 6 {
		t.Fatalf("expected 6 log entries, got %d", got)
	}
	msgs := make([]string, 0, 6)
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	want := []string{
		"randomizer run started",
		"randomizer attempt started",
		"randomizer attempt retrying",
		"out of locations",
		"sphere advanced",
		"validation failed",
	}
	for i, w := range want {
		if msgs[i] != w {
			t.Fatalf("entry %d: expected %q, got %q", i, w, msgs[i])
		}
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.RunStarted(1)
	l.Attempt(1)
	l.Retry(errors.New("x"))
	l.OutOfLocations(0, 0, errors.New("x"))
	l.SphereAdvanced(0, 0, 0)
	l.ValidationFailed(errors.New("x"))

	nop := NopLogger()
	nop.RunStarted(1)
	nop.Attempt(1)
}

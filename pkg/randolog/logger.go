package randolog

import (
	"go.uber.org/zap"

	"github.com/randocore/randocore/pkg/rando"
)

// Logger wraps a *zap.Logger with the handful of events the randomizer
// pipeline reports. A nil *Logger, and the Logger without a zap logger
// that NopLogger returns, are safe to call every method on.
type Logger struct {
	zl *zap.Logger
}

// NewLogger wraps zl. Passing a nil zl is equivalent to NopLogger().
func NewLogger(zl *zap.Logger) *Logger {
	return &Logger{zl: zl}
}

// NopLogger returns a Logger that discards everything.
func NopLogger() *Logger {
	return &Logger{}
}

var _ rando.Monitor = (*Logger)(nil)

// RunStarted logs the seed a Randomizer.Run attempt was constructed
// with, before any stage has been placed.
func (l *Logger) RunStarted(seed uint64) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Info("randomizer run started", zap.Uint64("seed", seed))
}

// Attempt implements rando.Monitor, logging the start of attempt n
// (1-indexed, per Randomizer.Run's own counting).
func (l *Logger) Attempt(n int) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Info("randomizer attempt started", zap.Int("attempt", n))
}

// Retry implements rando.Monitor, logging an OutOfLocationsError that
// triggered a whole-attempt restart.
func (l *Logger) Retry(err error) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Warn("randomizer attempt retrying", zap.Error(err))
}

// OutOfLocations logs an OutOfLocationsError with its originating stage
// and attempt number, independent of the generic Retry hook, so a
// caller filtering logs for this one failure mode doesn't have to
// parse error text.
func (l *Logger) OutOfLocations(stage int, attempt int, cause error) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Warn("out of locations",
		zap.Int("stage", stage),
		zap.Int("attempt", attempt),
		zap.Error(cause),
	)
}

// SphereAdvanced logs one completed SphereBuilder.Advance call: how
// many items the latest sphere accepted.
func (l *Logger) SphereAdvanced(stage int, sphereIndex int, accepted int) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Debug("sphere advanced",
		zap.Int("stage", stage),
		zap.Int("sphere", sphereIndex),
		zap.Int("accepted", accepted),
	)
}

// ValidationFailed logs a failed post-run Validate call.
func (l *Logger) ValidationFailed(err error) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Error("validation failed", zap.Error(err))
}

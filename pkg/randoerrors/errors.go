package randoerrors

import "fmt"

// DomainError reports a programmer mistake: an unknown field/term/state
// name, an operation invoked on an empty stack, or any other invariant
// violation that is fatal to the current run and must propagate to the
// caller unmodified.
type DomainError struct {
	Op  string // the operation that detected the mistake, e.g. "StateManager.GetBool"
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// NewDomainError constructs a DomainError with a formatted message.
func NewDomainError(op, format string, args ...interface{}) *DomainError {
	return &DomainError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// OutOfLocationsError signals that a SphereBuilder could not make
// progress, or that a GroupItemSelector's cap went negative. The
// Randomizer recovers from this by logging, resetting, and retrying; it
// only escapes Run when the caller has imposed an explicit attempt
// limit via rando.WithMaxAttempts.
type OutOfLocationsError struct {
	Stage    int
	Selector string
	Cause    string
}

func (e *OutOfLocationsError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("stage %d: out of locations (selector %q): %s", e.Stage, e.Selector, e.Cause)
	}
	return fmt.Sprintf("stage %d: out of locations: %s", e.Stage, e.Cause)
}

// ValidationError reports that a completed run violated a post-run
// invariant: placement count mismatch, or an unreachable placement. It
// is always surfaced to the caller unconditionally.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Violations[0])
	}
	return fmt.Sprintf("validation failed with %d violations: %v", len(e.Violations), e.Violations)
}

// Is supports errors.Is(err, &ValidationError{}) style matching against
// the bare type, ignoring Violations content.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// Is supports errors.Is(err, &OutOfLocationsError{}) style matching
// against the bare type, ignoring field content.
func (e *OutOfLocationsError) Is(target error) bool {
	_, ok := target.(*OutOfLocationsError)
	return ok
}

// Is supports errors.Is(err, &DomainError{}) style matching against the
// bare type, ignoring field content.
func (e *DomainError) Is(target error) bool {
	_, ok := target.(*DomainError)
	return ok
}

// Package forestx is a tick-driven behavior tree runtime.
//
// A compiled tree (RTree) is advanced by calling Tick once per control
// cycle. Each tick produces exactly one of Success, Failure or Running for
// the whole tree; Running means the session continues on a subsequent tick.
// Leaf nodes dispatch to registered actions through an ActionKeeper, shared
// state lives in a BlackBoard, and asynchronous actions are polled across
// ticks without ever blocking the tick loop.
package forestx

import (
	"errors"
	"fmt"
)

type tickKind int

const (
	tickSuccess tickKind = iota
	tickFailure
	tickRunning
)

// TickResult is the outcome of ticking a node once. Success and Failure
// terminate the current activation; Running is the only value requiring
// continuation on a future tick. Failure is a normal control-flow outcome,
// never an error.
type TickResult struct {
	kind   tickKind
	reason string
}

// Success returns the successful outcome.
func Success() TickResult { return TickResult{kind: tickSuccess} }

// Running returns the in-progress outcome.
func Running() TickResult { return TickResult{kind: tickRunning} }

// Failure returns the failed outcome carrying a human-readable reason.
// The reason is informational; it does not participate in control flow.
func Failure(reason string) TickResult {
	return TickResult{kind: tickFailure, reason: reason}
}

func (r TickResult) IsSuccess() bool { return r.kind == tickSuccess }
func (r TickResult) IsFailure() bool { return r.kind == tickFailure }
func (r TickResult) IsRunning() bool { return r.kind == tickRunning }

// Reason returns the failure reason, empty for Success and Running.
func (r TickResult) Reason() string { return r.reason }

func (r TickResult) String() string {
	switch r.kind {
	case tickSuccess:
		return "Success"
	case tickFailure:
		if r.reason == "" {
			return "Failure"
		}
		return "Failure(" + r.reason + ")"
	default:
		return "Running"
	}
}

// ErrorKind classifies runtime errors.
type ErrorKind int

const (
	// UnImplementedAction: a tree references an action name with no
	// registered implementation.
	UnImplementedAction ErrorKind = iota
	// BlackBoardError: a lock/unlock/key-state contract violation.
	BlackBoardError
	// IOError: an action-local I/O failure.
	IOError
	// Unexpected: an invariant violation surfaced as data, including
	// argument-resolution failures.
	Unexpected
)

func (k ErrorKind) String() string {
	switch k {
	case UnImplementedAction:
		return "UnImplementedAction"
	case BlackBoardError:
		return "BlackBoardError"
	case IOError:
		return "IOError"
	default:
		return "Unexpected"
	}
}

// RuntimeError is the single error type produced by the engine. Composite
// nodes never swallow a child error into Failure; an error aborts the whole
// tick and propagates to the driver unchanged.
type RuntimeError struct {
	Kind ErrorKind
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// NewRuntimeError builds a RuntimeError of the given kind.
func NewRuntimeError(kind ErrorKind, format string, a ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}

// KindOf extracts the ErrorKind from err. Reports false if err is not a
// RuntimeError.
func KindOf(err error) (ErrorKind, bool) {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}

func errUnimplemented(name string) error {
	return NewRuntimeError(UnImplementedAction, "the action %s is not registered", name)
}

func errBB(format string, a ...any) error {
	return NewRuntimeError(BlackBoardError, format, a...)
}

func errUex(format string, a ...any) error {
	return NewRuntimeError(Unexpected, format, a...)
}

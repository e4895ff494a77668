package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure.
type Kind int

const (
	// KindCommand means the domain itself rejected the operation (rule
	// violation, unknown entity). No state or log mutation occurred.
	KindCommand Kind = iota

	// KindSystem means the surrounding machinery failed: log replay, log
	// append, or codec encode/decode. The live state is also unmutated.
	KindSystem
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command failure"
	case KindSystem:
		return "system failure"
	default:
		return "unknown failure"
	}
}

// Phases reported in engine errors.
const (
	PhaseReplay  = "replaying events"
	PhaseExecute = "executing command"
	PhaseAppend  = "appending command"
	PhaseQuery   = "executing query"
)

// Error is the failure type returned by the engine. It wraps the
// underlying cause with the execution phase and the name of the acting
// command or query type.
type Error struct {
	Kind  Kind
	Phase string
	Op    string // type name of the command/query, or the log component
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s while %s %s: %v", e.Kind, e.Phase, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewCommandFailure wraps a domain-level rejection.
func NewCommandFailure(err error, phase, op string) *Error {
	return &Error{Kind: KindCommand, Phase: phase, Op: op, Err: err}
}

// NewSystemFailure wraps an infrastructure failure.
func NewSystemFailure(err error, phase, op string) *Error {
	return &Error{Kind: KindSystem, Phase: phase, Op: op, Err: err}
}

// IsCommandFailure reports whether err is (or wraps) a domain rejection.
func IsCommandFailure(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindCommand
}

// IsSystemFailure reports whether err is (or wraps) an infrastructure failure.
func IsSystemFailure(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindSystem
}

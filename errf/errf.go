// Package errf defines the error taxonomy used throughout the engine.
//
// Every failure the engine can report belongs to one of a small set of
// kinds: type errors (an operation is not defined for the given storage
// types), value errors (out-of-range indexes, incompatible row counts),
// key errors (unknown column names), not-implemented errors, and runtime
// errors (internal invariant violations, treated as bugs).
//
// Errors carry an optional "position" that is filled in as they unwind
// through the expression evaluator, so a failure can be attributed to the
// sub-expression that produced it:
//
//	_, err := expr.Eval(frame, nil, badNode, nil, nil)
//	if errf.IsKind(err, errf.KindType) {
//	    // the expression used an operator on incompatible column types
//	}
package errf

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error.
type Kind int

const (
	// KindType means an operator or cast is not defined for the given
	// storage or logical types.
	KindType Kind = iota + 1

	// KindValue means an out-of-range index, incompatible row counts, or a
	// malformed slice/range.
	KindValue

	// KindKey means an unknown column name.
	KindKey

	// KindNotImplemented means a recognized but unimplemented
	// operator/type combination.
	KindNotImplemented

	// KindRuntime means an internal invariant was violated. This is a
	// program bug, not a user input problem.
	KindRuntime
)

// String returns the conventional name of the kind.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "TypeError"
	case KindValue:
		return "ValueError"
	case KindKey:
		return "KeyError"
	case KindNotImplemented:
		return "NotImplementedError"
	case KindRuntime:
		return "RuntimeError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the concrete error type produced by the engine.
type Error struct {
	kind Kind
	msg  string
	pos  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.pos != "" {
		return fmt.Sprintf("%s: %s (in %s)", e.kind, e.msg, e.pos)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Pos returns the expression position attached to the error, if any.
func (e *Error) Pos() string { return e.pos }

// Type creates a TypeError.
func Type(format string, args ...interface{}) *Error {
	return &Error{kind: KindType, msg: fmt.Sprintf(format, args...)}
}

// Value creates a ValueError.
func Value(format string, args ...interface{}) *Error {
	return &Error{kind: KindValue, msg: fmt.Sprintf(format, args...)}
}

// Key creates a KeyError. If suggestion is non-empty it is appended as a
// "did you mean" hint.
func Key(name, suggestion string) *Error {
	msg := fmt.Sprintf("column %q does not exist", name)
	if suggestion != "" {
		msg = fmt.Sprintf("%s; did you mean %q?", msg, suggestion)
	}
	return &Error{kind: KindKey, msg: msg}
}

// NotImplemented creates a NotImplementedError.
func NotImplemented(format string, args ...interface{}) *Error {
	return &Error{kind: KindNotImplemented, msg: fmt.Sprintf(format, args...)}
}

// Runtime creates a RuntimeError.
func Runtime(format string, args ...interface{}) *Error {
	return &Error{kind: KindRuntime, msg: fmt.Sprintf(format, args...)}
}

// WithPos attaches a syntactic position to an engine error. The first
// position wins: once an error is attributed to a sub-expression, outer
// expressions do not overwrite it. Non-engine errors pass through
// unchanged.
func WithPos(err error, pos string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if e.pos == "" {
		e.pos = pos
	}
	return err
}

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == k
}

// errors.go: the single fail-fast error channel of the engine.
//
// Every fault the evaluator can detect is reported as a *RuntimeError
// carrying a Kind (a stable, machine-checkable tag) and a human-readable
// message. There is no recovery path: any RuntimeError aborts the run and is
// surfaced unchanged through the public Run/Eval entry points.
//
// Kinds are part of the engine's contract; tests and the CLI match on them
// via ErrKindOf rather than on message text.
package lullabyte

import (
	"errors"
	"fmt"
)

// ErrorKind tags a RuntimeError with the class of fault it reports.
type ErrorKind string

const (
	ErrUndeclaredIdentifier      ErrorKind = "UndeclaredIdentifier"
	ErrUndefinedFunction         ErrorKind = "UndefinedFunction"
	ErrArityMismatch             ErrorKind = "ArityMismatch"
	ErrTypeMismatch              ErrorKind = "TypeMismatch"
	ErrInvalidOperation          ErrorKind = "InvalidOperation"
	ErrNotAnArray                ErrorKind = "NotAnArray"
	ErrInvalidIndex              ErrorKind = "InvalidIndex"
	ErrIndexOutOfBounds          ErrorKind = "IndexOutOfBounds"
	ErrEmptyArrayLiteral         ErrorKind = "EmptyArrayLiteral"
	ErrHeterogeneousArrayLiteral ErrorKind = "HeterogeneousArrayLiteral"
	ErrWrongArgumentType         ErrorKind = "WrongArgumentType"
	ErrInvalidMixdownArgs        ErrorKind = "InvalidMixdownArgs"
	ErrNotMixable                ErrorKind = "NotMixable"
	ErrMainNotFound              ErrorKind = "MainNotFound"
)

// RuntimeError is an execution-time failure. It aborts the whole run; the
// engine never retries or isolates per-statement.
type RuntimeError struct {
	Kind ErrorKind
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR [%s]: %s", e.Kind, e.Msg)
}

// failf builds a RuntimeError with a formatted message.
func failf(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ErrKindOf extracts the ErrorKind from err, or "" when err is not a
// RuntimeError (nil included).
func ErrKindOf(err error) ErrorKind {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// DecodeError reports a malformed serialized program tree handed to
// DecodeProgram. It is deliberately distinct from RuntimeError: the engine
// proper only ever rejects well-formed trees, and only on semantic grounds.
type DecodeError struct {
	Msg string
}

func (e *DecodeError) Error() string { return "DECODE ERROR: " + e.Msg }

func decodeFailf(format string, args ...any) *DecodeError {
	return &DecodeError{Msg: fmt.Sprintf(format, args...)}
}

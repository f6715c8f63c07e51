package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge the error occurred.
type Phase string

const (
	PhaseModel    Phase = "model"    // mapping and header reads
	PhaseRegistry Phase = "registry" // handle lifecycle
	PhaseOptions  Phase = "options"  // foreign options reads
	PhaseHost     Phase = "host"     // host module / guest memory
	PhaseEncoder  Phase = "encoder"  // encoder config serialization
)

// Kind categorizes the error.
type Kind string

const (
	KindIO           Kind = "io"
	KindInvalidData  Kind = "invalid_data"
	KindInvalidInput Kind = "invalid_input"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindNotFound     Kind = "not_found"
	KindClosed       Kind = "closed"
	KindUnsupported  Kind = "unsupported"
)

// Error is the structured error type used inside the bridge. It never
// crosses the caller boundary; boundary operations translate every failure
// into their type's neutral value.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by phase and kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// New creates a structured error.
func New(phase Phase, kind Kind, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Phase: phase, Kind: kind, Detail: detail}
}

// Wrap wraps an existing error with phase and kind context.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{Phase: phase, Kind: kind, Detail: detail, Cause: cause}
}

// IO creates an I/O error for a model source operation.
func IO(phase Phase, op string, cause error) *Error {
	return &Error{Phase: phase, Kind: KindIO, Detail: op, Cause: cause}
}

// InvalidData creates an invalid data error.
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{Phase: phase, Kind: KindInvalidData, Path: path, Detail: detail}
}

// InvalidInput creates an invalid input error.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{Phase: phase, Kind: KindInvalidInput, Detail: detail}
}

// OutOfBounds creates an out of bounds error.
func OutOfBounds(phase Phase, index, length int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("offset %d out of bounds (length %d)", index, length),
	}
}

// NotFound creates a not-found error.
func NotFound(phase Phase, what string) *Error {
	return &Error{Phase: phase, Kind: KindNotFound, Detail: what}
}

// Closed creates an error for operations against a closed table or mapping.
func Closed(phase Phase, what string) *Error {
	return &Error{Phase: phase, Kind: KindClosed, Detail: fmt.Sprintf("%s closed", what)}
}

// Unsupported creates an unsupported operation error.
func Unsupported(phase Phase, what string) *Error {
	return &Error{Phase: phase, Kind: KindUnsupported, Detail: what}
}

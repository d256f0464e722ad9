package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConstruct Phase = "construct" // image constructors
	PhaseMarshal   Phase = "marshal"   // call descriptor building
	PhaseCall      Phase = "call"      // native transform operations
	PhaseSave      Phase = "save"      // serialization operations
	PhaseLookup    Phase = "lookup"    // symbol resolution
	PhaseBorrow    Phase = "borrow"    // borrowed buffer scopes
	PhaseRelease   Phase = "release"   // anchored buffer reclamation
	PhaseStartup   Phase = "startup"   // library lifecycle
)

// Kind categorizes the error
type Kind string

const (
	KindNative        Kind = "native"
	KindTypeMismatch  Kind = "type_mismatch"
	KindShapeMismatch Kind = "shape_mismatch"
	KindOverflow      Kind = "overflow"
	KindUnsupported   Kind = "unsupported"
	KindNotFound      Kind = "not_found"
	KindInvalidInput  Kind = "invalid_input"
	KindNilPointer    Kind = "nil_pointer"
	KindReleased      Kind = "released"
	KindExpired       Kind = "expired"
	KindAllocation    Kind = "allocation"
	KindInvalidToken  Kind = "invalid_token"
)

// Sentinels for errors.Is. An empty Phase matches any phase.
var (
	ErrNative   = &Error{Kind: KindNative}
	ErrReleased = &Error{Kind: KindReleased}
	ErrExpired  = &Error{Kind: KindExpired}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Option string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
		if e.Option != "" {
			b.WriteByte('(')
			b.WriteString(e.Option)
			b.WriteByte(')')
		}
	} else if e.Option != "" {
		b.WriteString(" at option ")
		b.WriteString(e.Option)
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

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the native operation name
func (b *Builder) Op(name string) *Builder {
	b.err.Op = name
	return b
}

// Option sets the optional argument name
func (b *Builder) Option(name string) *Builder {
	b.err.Option = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Native wraps the native library's error text for a failed operation.
func Native(phase Phase, op, text string) *Error {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "unknown error from libvips"
	}
	return &Error{
		Phase:  phase,
		Kind:   KindNative,
		Op:     op,
		Detail: text,
	}
}

// TypeMismatch creates a type mismatch error for an argument
func TypeMismatch(op, option string, value any, want string) *Error {
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindTypeMismatch,
		Op:     op,
		Option: option,
		Value:  value,
		Detail: fmt.Sprintf("cannot use %T as %s", value, want),
	}
}

// ShapeMismatch creates an error for a malformed positional prefix
func ShapeMismatch(op string, detail string) *Error {
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindShapeMismatch,
		Op:     op,
		Detail: detail,
	}
}

// Overflow creates an overflow error
func Overflow(op, option string, value any, target string) *Error {
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindOverflow,
		Op:     op,
		Option: option,
		Value:  value,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
	}
}

// UnknownOption creates an error for an option the signature does not declare
func UnknownOption(op, option string) *Error {
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindNotFound,
		Op:     op,
		Option: option,
		Detail: fmt.Sprintf("option %q not declared", option),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Op:     op,
		Detail: detail,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, op, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Op:     op,
		Detail: fmt.Sprintf("nil %s", what),
	}
}

// Released creates an error for use of a handle after Close
func Released(op string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindReleased,
		Op:     op,
		Detail: "image handle already released",
	}
}

// Expired creates an error for use of an image after its borrowed buffer scope ended
func Expired(op string) *Error {
	return &Error{
		Phase:  PhaseBorrow,
		Kind:   KindExpired,
		Op:     op,
		Detail: "borrowed buffer scope has ended",
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// InvalidToken creates an error for an ownership token the anchor table does not know
func InvalidToken(token uint32) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindInvalidToken,
		Value:  token,
		Detail: fmt.Sprintf("ownership token %d is not anchored", token),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Startup creates a library initialization error
func Startup(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseStartup,
		Kind:   KindNative,
		Detail: detail,
		Cause:  cause,
	}
}

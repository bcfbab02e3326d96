package litematic

import "fmt"

// Kind identifies the category of failure carried by an *Error.
type Kind int

const (
	// InvalidIdentifier marks a non-conforming block or entity identifier string.
	InvalidIdentifier Kind = iota
	// RequiredKeyMissing marks an NBT compound missing a required key.
	RequiredKeyMissing
	// IndexOutOfRange marks a BitArray index or Region coordinate outside its valid bounds.
	IndexOutOfRange
	// ValueOutOfRange marks a BitArray write whose value does not fit the cell width.
	ValueOutOfRange
	// LengthMismatch marks a packed long-array whose length is inconsistent with (N, bits).
	LengthMismatch
	// UnsupportedVersion marks a format version outside {6, 7}.
	UnsupportedVersion
	// CorruptedSchematic marks any other structural or semantic decode violation.
	CorruptedSchematic
	// DiscriminationError marks a DiscriminatingMap rejection.
	DiscriminationError
)

func (k Kind) String() string {
	switch k {
	case InvalidIdentifier:
		return "InvalidIdentifier"
	case RequiredKeyMissing:
		return "RequiredKeyMissing"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case ValueOutOfRange:
		return "ValueOutOfRange"
	case LengthMismatch:
		return "LengthMismatch"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case CorruptedSchematic:
		return "CorruptedSchematic"
	case DiscriminationError:
		return "DiscriminationError"
	default:
		return "Unknown"
	}
}

// Error is the single exported error type used across the module. Callers
// can errors.As into it and switch on Kind.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func wrapError(kind Kind, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, err: cause}
}

// Kind returns the error's category.
func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

func errIndexOutOfRange(format string, args ...any) *Error {
	return newError(IndexOutOfRange, fmt.Sprintf(format, args...))
}

func errValueOutOfRange(format string, args ...any) *Error {
	return newError(ValueOutOfRange, fmt.Sprintf(format, args...))
}

func errLengthMismatch(format string, args ...any) *Error {
	return newError(LengthMismatch, fmt.Sprintf(format, args...))
}

func errInvalidIdentifier(format string, args ...any) *Error {
	return newError(InvalidIdentifier, fmt.Sprintf(format, args...))
}

func errDiscrimination(reason string) *Error {
	return newError(DiscriminationError, reason)
}

func errUnsupportedVersion(version int) *Error {
	return newError(UnsupportedVersion, fmt.Sprintf("unsupported Litematica version: %d", version))
}

func errCorruptedSchematic(format string, args ...any) *Error {
	return newError(CorruptedSchematic, fmt.Sprintf(format, args...))
}

func errRequiredKeyMissing(format string, args ...any) *Error {
	return newError(RequiredKeyMissing, fmt.Sprintf(format, args...))
}

// NewUnsupportedVersionError reports a decode attempt against a format
// version outside {6, 7}. Exported so the litefmt codec can surface it.
func NewUnsupportedVersionError(version int) *Error {
	return errUnsupportedVersion(version)
}

// NewCorruptedSchematicError reports any other structural or semantic
// decode violation. Exported so the litefmt codec can surface it.
func NewCorruptedSchematicError(format string, args ...any) *Error {
	return errCorruptedSchematic(format, args...)
}

// NewLengthMismatchError reports a packed long-array whose length is
// inconsistent with (N, bits). Exported so the litefmt codec can surface it
// when a decoded BlockStates array doesn't match its expected word count.
func NewLengthMismatchError(format string, args ...any) *Error {
	return errLengthMismatch(format, args...)
}

// NewRequiredKeyMissingError reports an NBT compound missing a required key
// (e.g. an entity with no "id"). Exported so the litefmt codec can surface
// it.
func NewRequiredKeyMissingError(format string, args ...any) *Error {
	return errRequiredKeyMissing(format, args...)
}

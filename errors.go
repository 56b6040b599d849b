package forge

import "errors"

// ErrorCode is the value stored in a Context's sticky error slot.
//
// ErrorCode implements error so that resource constructors can return it
// wrapped with detail; errors.Is(err, InvalidEnum) works on those errors.
type ErrorCode uint8

const (
	// NoError means no failure was recorded since the last GetError.
	NoError ErrorCode = iota
	// InvalidEnum reports an unrecognized mode, format, flag or parameter.
	InvalidEnum
	// StackOverflow reports a matrix push beyond capacity or a pop of the last element.
	StackOverflow
	// InvalidOperation reports a call that is not allowed in the current state,
	// an out-of-range argument, or use of a deleted resource.
	InvalidOperation
	// OutOfMemory reports a failed resource allocation.
	OutOfMemory
)

// String returns a string representation of the error code.
func (e ErrorCode) String() string {
	switch e {
	case NoError:
		return "NoError"
	case InvalidEnum:
		return "InvalidEnum"
	case StackOverflow:
		return "StackOverflow"
	case InvalidOperation:
		return "InvalidOperation"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// Error implements the error interface.
func (e ErrorCode) Error() string {
	return "forge: " + e.String()
}

// codeOf extracts the ErrorCode carried by err. Errors that do not wrap an
// ErrorCode map to InvalidOperation.
func codeOf(err error) ErrorCode {
	if err == nil {
		return NoError
	}
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return InvalidOperation
}

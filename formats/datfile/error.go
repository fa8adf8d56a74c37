package datfile

import "fmt"

// Error specifies errors returned during dat file decoding.
type Error struct {
	reason, details string
}

func NewError(reason string) *Error {
	return &Error{reason: reason}
}

func (e *Error) Error() string {
	if e.details == "" {
		return e.reason
	}

	return fmt.Sprintf("%s: %s", e.reason, e.details)
}

func (e *Error) AddDetails(format string, args ...interface{}) *Error {
	return &Error{
		reason:  e.reason,
		details: fmt.Sprintf(format, args...),
	}
}

var (
	// ErrUnknownKey is returned when a record word carries a key outside
	// the enumerated set; the dat file is malformed or uses an
	// unsupported record type.
	ErrUnknownKey = NewError("unknown key in mass record")
	// ErrUnknownDataType is returned when a data word carries a detector
	// category outside analog, pulse and faraday.
	ErrUnknownDataType = NewError("unknown data type in mass record")
	// ErrMalformedMass is returned when a mass record violates the
	// format, e.g. sets a set-once attribute twice.
	ErrMalformedMass = NewError("malformed mass record")
	// ErrTruncated is returned when the file ends in the middle of a
	// header, index table or mass record.
	ErrTruncated = NewError("truncated dat file")
)

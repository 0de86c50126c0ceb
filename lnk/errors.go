package lnk

import (
	"errors"
	"fmt"

	"github.com/andrewstucki/shortcut/internal"
)

var (
	// ErrTruncated is returned when a read would run past the end of the file.
	ErrTruncated = internal.ErrTruncated
	// ErrInvalidHeader is returned when the fixed header is missing or its
	// size field is not 0x4C. Nothing past the header can be decoded.
	ErrInvalidHeader = errors.New("invalid shell link header")
	// ErrMalformedOffset is returned when an embedded size or offset points
	// outside of the file or of its enclosing structure.
	ErrMalformedOffset = errors.New("malformed offset")
	// ErrUnknownBlockSignature marks an extra data block with an unrecognized
	// signature. It never stops decoding.
	ErrUnknownBlockSignature = errors.New("unknown extra data block signature")
	// ErrInvalidTimestamp marks a FILETIME that cannot be represented.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrInvalidDate marks a DOS date/time that is not a calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// FieldError records a failure that was contained to a single section or
// field of the file.
type FieldError struct {
	Section string
	Field   string
	Offset  int
	Err     error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s @0x%x: %v", e.Section, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s.%s @0x%x: %v", e.Section, e.Field, e.Offset, e.Err)
}

// MarshalText renders the same value as Error.
func (e *FieldError) MarshalText() ([]byte, error) {
	return []byte(e.Error()), nil
}

// Unwrap returns the underlying sentinel error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedOffset, fmt.Sprintf(format, args...))
}

package pesel

import (
	"errors"
	"fmt"
)

// Reason classifies why a candidate value failed validation.
type Reason string

const (
	// ReasonInvalidFormat indicates the value is outside [0, 10^11) or a
	// string input has the wrong length or non-digit characters.
	ReasonInvalidFormat Reason = "invalid_format"

	// ReasonInvalidDate indicates the decoded year, month and day do not
	// form an existing calendar date, including month sections that map to
	// no defined band.
	ReasonInvalidDate Reason = "invalid_date"

	// ReasonChecksumMismatch indicates the stored control digit differs
	// from the digit recomputed over the first ten digits.
	ReasonChecksumMismatch Reason = "checksum_mismatch"
)

// ValidationError describes a rejected construction. Construction is
// all-or-nothing: a ValidationError means no value object was produced.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pesel: %s: %s", e.Reason, e.Message)
}

// Is lets errors.Is match two validation errors by reason alone.
func (e *ValidationError) Is(target error) bool {
	var other *ValidationError
	if errors.As(target, &other) {
		return e.Reason == other.Reason
	}
	return false
}

// ReasonOf extracts the failure reason from an error, or "" for errors
// that did not originate here.
func ReasonOf(err error) Reason {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}

// IsReason reports whether err is a ValidationError with the given reason.
func IsReason(err error, reason Reason) bool {
	return ReasonOf(err) == reason
}

func newError(reason Reason, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

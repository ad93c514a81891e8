package sim

import (
	"errors"
	"fmt"
)

// Error represents a failure detected while configuring or executing a
// simulation. It is raised synchronously at the point of detection and is
// never retried: any failure indicates an invalid input and the session
// must be discarded.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes simulation errors.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates an unrecognized simulation mode or an
	// inconsistent simulator option.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"

	// ErrCodeStateKind indicates an initial state that is neither a ket of
	// the register's dimension nor a valid density operator.
	ErrCodeStateKind ErrorCode = "STATE_KIND"

	// ErrCodeClassicalBits indicates a classical-control predicate
	// referencing a classical bit the program never declared.
	ErrCodeClassicalBits ErrorCode = "CLASSICAL_BITS"

	// ErrCodeOutcomes indicates a forced-outcome sequence shorter than the
	// number of measurements it has to feed.
	ErrCodeOutcomes ErrorCode = "OUTCOMES"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsConfiguration returns true if the error is a configuration error.
// Uses errors.As to handle wrapped errors.
func IsConfiguration(err error) bool {
	return hasCode(err, ErrCodeConfiguration)
}

// IsStateKind returns true if the error reports an unusable initial state.
func IsStateKind(err error) bool {
	return hasCode(err, ErrCodeStateKind)
}

// IsClassicalBits returns true if the error reports an undeclared
// classical-bit reference.
func IsClassicalBits(err error) bool {
	return hasCode(err, ErrCodeClassicalBits)
}

// IsOutcomes returns true if the error reports an exhausted forced-outcome
// sequence.
func IsOutcomes(err error) bool {
	return hasCode(err, ErrCodeOutcomes)
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// Package decompose implements the pure program-to-program rewriting
// passes: the universal-basis resolver, the two-qubit basis transformer and
// the adjacency linearizer. Each pass takes an immutable circuit and
// returns a freshly built equivalent one.
package decompose

import (
	"errors"
	"fmt"

	"github.com/claretgrace0801/qutip-qip/internal/gates"
)

// ErrorCode categorizes decomposition failures.
type ErrorCode string

const (
	// ErrCodeSequencing indicates a pass was invoked on a program that
	// already contains measurements. Decomposition is unitary-only and
	// must run before measurements are appended.
	ErrCodeSequencing ErrorCode = "SEQUENCING"

	// ErrCodeInvalidBasis indicates a malformed or contradictory basis
	// request.
	ErrCodeInvalidBasis ErrorCode = "INVALID_BASIS"

	// ErrCodeUnsupportedGate indicates no rewrite or adjacency rule is
	// registered for a gate name.
	ErrCodeUnsupportedGate ErrorCode = "UNSUPPORTED_GATE"
)

// Error is a structured decomposition error.
type Error struct {
	Code    ErrorCode
	Message string

	// Gate names the offending gate for ErrCodeUnsupportedGate.
	Gate gates.Kind
}

func (e *Error) Error() string {
	if e.Gate != "" {
		return fmt.Sprintf("%s: %s (gate=%s)", e.Code, e.Message, e.Gate)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsSequencing reports whether err is a sequencing error.
func IsSequencing(err error) bool {
	return hasCode(err, ErrCodeSequencing)
}

// IsInvalidBasis reports whether err is an invalid-basis error.
func IsInvalidBasis(err error) bool {
	return hasCode(err, ErrCodeInvalidBasis)
}

// IsUnsupportedGate reports whether err is an unsupported-gate error.
func IsUnsupportedGate(err error) bool {
	return hasCode(err, ErrCodeUnsupportedGate)
}

func hasCode(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

func newSequencingError(pass string) *Error {
	return &Error{
		Code:    ErrCodeSequencing,
		Message: pass + " must be called before measurements are added to the circuit",
	}
}

func newInvalidBasisError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidBasis, Message: fmt.Sprintf(format, args...)}
}

func newUnsupportedGateError(gate gates.Kind, context string) *Error {
	return &Error{
		Code:    ErrCodeUnsupportedGate,
		Message: context,
		Gate:    gate,
	}
}

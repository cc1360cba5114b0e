package kmc

import (
	"fmt"
)

// ErrorCode classifies the two failure taxonomies the engine recognises:
// construction-time validation and runtime anomalies raised while driving
// a simulation.
type ErrorCode int

const (
	CodeUnknown ErrorCode = iota

	// Validation errors, raised by BuildLattice.
	CodeInvalidDimensions
	CodeInvalidProportions
	CodeInvalidCarrierCount
	CodeInvalidTransferRadius
	CodeInsufficientSites

	// Runtime anomalies, raised by Operations.
	CodeClockRegression
	CodeRateNonFinite
	CodeStepCapExceeded
)

func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidDimensions:
		return "InvalidDimensions"
	case CodeInvalidProportions:
		return "InvalidProportions"
	case CodeInvalidCarrierCount:
		return "InvalidCarrierCount"
	case CodeInvalidTransferRadius:
		return "InvalidTransferRadius"
	case CodeInsufficientSites:
		return "InsufficientSites"
	case CodeClockRegression:
		return "ClockRegression"
	case CodeRateNonFinite:
		return "RateNonFinite"
	case CodeStepCapExceeded:
		return "StepCapExceeded"
	default:
		return "Unknown"
	}
}

// EventSnapshot is a compact record of an executed event, retained in a
// ring buffer so a runtime anomaly can be reported with recent history
// instead of forcing a re-run.
type EventSnapshot struct {
	Step  uint64
	Clock float64
	Kind  Kind
	Tau   float64
}

// Error is the engine's single error type. It carries a typed code, an
// optional wrapped cause, and an optional trailing snapshot of recently
// executed events for diagnosing runtime anomalies.
type Error struct {
	Code    ErrorCode
	Message string
	Detail  string
	Cause   error
	Recent  []EventSnapshot
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s(%d)] %s", e.Code, int(e.Code), e.Message)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail returns a copy of e with Detail set, leaving e untouched.
func (e *Error) WithDetail(detail string) *Error {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithRecent returns a copy of e carrying the given event history snapshot.
func (e *Error) WithRecent(recent []EventSnapshot) *Error {
	cp := *e
	cp.Recent = recent
	return &cp
}

// newError constructs a fresh *Error with the given code and message.
func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// wrapError wraps cause under the given code and message. If cause is
// already a *Error and code is CodeUnknown, the original code is preserved.
func wrapError(cause error, code ErrorCode, message string) *Error {
	if code == CodeUnknown {
		if existing, ok := cause.(*Error); ok {
			code = existing.Code
		}
	}
	return &Error{Code: code, Message: message, Cause: cause}
}

// IsCode reports whether err is, or wraps, a *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if ae, ok := err.(*Error); ok {
			if ae.Code == code {
				return true
			}
			err = ae.Cause
			continue
		}
		return false
	}
	return false
}

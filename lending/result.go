/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package lending

import (
	"fmt"
	"strings"

	bookerrors "github.com/suparena/booklending/errors"
)

// Outcome is the kind of a Result.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeRejected
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Reason says why a request was rejected.
type Reason int

const (
	// ReasonValidation marks input that broke one or more record rules.
	ReasonValidation Reason = iota + 1
	// ReasonUnavailable marks a checkout or return whose precondition did not hold:
	// the book does not exist or is in the wrong state.
	ReasonUnavailable
)

func (r Reason) String() string {
	switch r {
	case ReasonValidation:
		return "validation"
	case ReasonUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Rejection carries the caller-facing messages of a rejected request.
type Rejection struct {
	Reason   Reason
	Messages []string
}

// Unit is the payload of operations that return nothing.
type Unit struct{}

// Result is the outcome of a lending operation. Value is meaningful only for OutcomeOK,
// Rejection only for OutcomeRejected. Cause holds the underlying error when there is one.
type Result[T any] struct {
	Outcome   Outcome
	Value     T
	Rejection *Rejection
	Cause     error
}

// Ok wraps a successful payload.
func Ok[T any](value T) Result[T] {
	return Result[T]{Outcome: OutcomeOK, Value: value}
}

// Rejected builds a rejection with the given reason and messages.
func Rejected[T any](reason Reason, messages ...string) Result[T] {
	return Result[T]{
		Outcome:   OutcomeRejected,
		Rejection: &Rejection{Reason: reason, Messages: messages},
	}
}

// Failed wraps an unexpected failure.
func Failed[T any](cause error) Result[T] {
	if cause == nil {
		cause = bookerrors.ErrStoreFailure
	}
	return Result[T]{Outcome: OutcomeFailed, Cause: cause}
}

// IsOK reports whether the operation succeeded.
func (r Result[T]) IsOK() bool {
	return r.Outcome == OutcomeOK
}

// Messages returns the rejection messages, or nil.
func (r Result[T]) Messages() []string {
	if r.Rejection == nil {
		return nil
	}
	return r.Rejection.Messages
}

// Err projects r back onto the errors taxonomy. It returns nil for OutcomeOK.
func (r Result[T]) Err() error {
	switch r.Outcome {
	case OutcomeOK:
		return nil
	case OutcomeRejected:
		if r.Cause != nil {
			return r.Cause
		}
		if r.Rejection != nil && r.Rejection.Reason == ReasonValidation {
			return bookerrors.NewValidationError(r.Rejection.Messages...)
		}
		return fmt.Errorf("%w: %s", bookerrors.ErrConditionFailed, strings.Join(r.Messages(), "; "))
	default:
		if r.Cause != nil {
			return r.Cause
		}
		return bookerrors.ErrStoreFailure
	}
}

// Project maps a store error onto a Result. A validation error becomes a validation
// rejection and a condition failure becomes an unavailable rejection with message
// unavailable; anything else is a failure.
func Project[T any](err error, unavailable string) Result[T] {
	var zero T
	switch {
	case err == nil:
		return Ok(zero)
	case bookerrors.IsValidationError(err):
		r := Rejected[T](ReasonValidation, bookerrors.ValidationMessages(err)...)
		r.Cause = err
		return r
	case bookerrors.IsConditionFailed(err):
		r := Rejected[T](ReasonUnavailable, unavailable)
		r.Cause = err
		return r
	default:
		return Failed[T](err)
	}
}

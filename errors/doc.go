/*
Package errors provides semantic error types for the book lending service.

The taxonomy has three kinds of failure, each with a sentinel that can be
checked with the standard errors.Is() function or the provided helpers:

	var (
	    ErrInvalidInput    = errors.New("invalid input")          // field rule violations
	    ErrConditionFailed = errors.New("condition check failed") // conditional write rejected
	    ErrStoreFailure    = errors.New("store failure")          // anything else from the store
	)

Usage:

	err := store.UpdateWithCondition(ctx, id, params)
	switch {
	case errors.IsConditionFailed(err):
	    // record missing or in the wrong state; the store cannot tell which
	case errors.IsStoreFailure(err):
	    // opaque internal error
	}

	err := errors.NewValidationError("Title is required", "ISBN is required")
	msgs := errors.ValidationMessages(err)

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors

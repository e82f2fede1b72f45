/*
Package lending implements adding, listing, checking out and returning books.

Every operation returns a Result instead of an error, so callers handle all three outcomes:

	svc, err := lending.New(store, lending.Config{TableName: "Books"},
	    lending.WithLogger(slog.Default()),
	)

	res := svc.Checkout(ctx, id)
	switch res.Outcome {
	case lending.OutcomeOK:
	    // checked out
	case lending.OutcomeRejected:
	    // res.Rejection.Messages[0] == lending.MsgCheckoutUnavailable
	case lending.OutcomeFailed:
	    // res.Cause is the store error
	}

Checkout and Return are single conditional writes, so concurrent requests for the same
book are linearized by the store: of two concurrent checkouts, exactly one succeeds.
A missing book and a book in the wrong state give the same rejection.

Result.Err converts a Result back into the errors package taxonomy for callers that
prefer plain Go errors.
*/
package lending

/*
Package booklending is a small book lending core on a single DynamoDB table.

Books are added, listed, checked out and returned. Checkout and return are single
conditional writes, so the table itself guarantees that a book is never checked out
twice, however many clients race for it.

Layout:
  - storagemodels: the Book record, its validation rules and store parameters
  - registry: key templates ("BOOK#{Id}", "METADATA#{Id}") and their expansion
  - datastore: the store interface, with DynamoDB (ddb) and in-memory (mock) implementations
  - lending: the Add/List/Checkout/Return service returning Ok/Rejected/Failed results
  - transport: HTTP (httpapi) and API Gateway (lambdafn) adapters
  - config, telemetry: configuration loading, logging and tracing setup

Basic Usage:

	store, _ := ddb.NewDynamodbDataStoreFromConfig[storagemodels.Book](ctx, ddb.ClientConfig{Region: "us-east-1"}, "Books")
	svc, _ := lending.New(store, lending.Config{TableName: "Books"})

	added := svc.Add(ctx, &storagemodels.Book{Title: "T", Author: "A", ISBN: "123"})
	res := svc.Checkout(ctx, added.Value.ID)
	if res.Outcome == lending.OutcomeRejected {
	    // already checked out, or no such book
	}

Executables live under cmd: booksvc (HTTP server), booklambda (AWS Lambda) and bookctl (CLI).
*/
package booklending

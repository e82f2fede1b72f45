/*
Package datastore defines the core interface for the lending service's persistence layer.

The main interface is DataStore[T], the three store operations the service relies on:

	type DataStore[T any] interface {
	    Put(ctx context.Context, entity T) error
	    UpdateWithCondition(ctx context.Context, key string, params *storagemodels.UpdateParams) error
	    Scan(ctx context.Context, params *storagemodels.ScanParams, opts ...storagemodels.ScanOption) ([]T, error)
	}

Every operation either succeeds, fails with errors.ErrConditionFailed (UpdateWithCondition
only), or fails with any other error. Errors returned by the backend itself match
errors.ErrStoreFailure; the rest report malformed input such as an unregistered type.

Implementations:
  - ddb: DynamoDB implementation with support for single-table design
  - mock: In-memory implementation honouring the same keys and conditions, for testing
*/
package datastore

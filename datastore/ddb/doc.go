/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "BOOK#{Id}")
  - Conditional updates for optimistic concurrency
  - Paginated filtered scans

Key Features:

Macro Expansion:
Keys use macros that are replaced with entity field values:

	indexMap := map[string]string{
	    "PK": "BOOK#{Id}",        // Becomes "BOOK#123"
	    "SK": "METADATA#{Id}",    // Becomes "METADATA#123"
	}

Conditional Updates:
A condition-check failure is reported as errors.ErrConditionFailed; the store does not
tell a missing item apart from an item holding the wrong value:

	err := store.UpdateWithCondition(ctx, "123", &storagemodels.UpdateParams{
	    Operation:     "checkout",
	    Set:           map[string]any{"IsCheckedOut": true},
	    RequireExists: true,
	    Expect:        map[string]any{"IsCheckedOut": false},
	})
	// UpdateExpression:    SET #f0 = :v0
	// ConditionExpression: attribute_exists(#pk) AND #c0 = :c0

Client:
NewDynamoDBClient loads the default AWS configuration, optionally with static
credentials and an endpoint override for DynamoDB Local.

For usage examples, see the integration tests.
*/
package ddb

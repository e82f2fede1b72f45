/*
Package registry manages index mapping for the book lending store.

An index map associates a Go type with the DynamoDB key patterns of its items.
Macros in braces are filled from the entity's marshaled attributes:

	registry.RegisterIndexMap[Book](map[string]string{
	    "PK": "BOOK#{Id}",
	    "SK": "METADATA#{Id}",
	})

	keys, _ := registry.KeysOf(book)        // {"PK": "BOOK#42", "SK": "METADATA#42"}
	key, _ := registry.KeyFor[Book]("42")   // PK/SK attribute map for GetItem/UpdateItem

The registry is thread-safe and should be populated during initialization,
typically in init() functions.
*/
package registry

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/suparena/booklending/registry"
)

// Key prefixes and attribute names of book items.
const (
	BookPartitionPrefix = "BOOK#"
	BookSortPrefix      = "METADATA#"

	AttrIsCheckedOut = "IsCheckedOut"
)

// BookIndexMap is the key scheme of book items. The METADATA# sort key leaves room for
// per-book sub-records under the same partition.
var BookIndexMap = map[string]string{
	registry.PartitionKey: BookPartitionPrefix + "{Id}",
	registry.SortKey:      BookSortPrefix + "{Id}",
}

func init() {
	registry.RegisterIndexMap[Book](BookIndexMap)
}

// Book is the only entity of the lending service.
type Book struct {
	// Assigned by the service on creation, immutable afterwards.
	ID string `dynamodbav:"Id" json:"id"`

	// Required: true
	// Max Length: 500
	Title string `dynamodbav:"Title" json:"title"`

	// Required: true
	// Max Length: 200
	Author string `dynamodbav:"Author" json:"author"`

	// Required: true
	ISBN string `dynamodbav:"ISBN" json:"isbn"`

	// A missing attribute decodes as false.
	IsCheckedOut bool `dynamodbav:"IsCheckedOut" json:"isCheckedOut"`
}

// UpdateParams describes a single conditional update of one item.
type UpdateParams struct {
	// Operation names the update in errors and logs (e.g. "checkout").
	Operation string
	// Set maps attribute names to their new values.
	Set map[string]any
	// RequireExists adds attribute_exists(PK) to the condition.
	RequireExists bool
	// Expect maps attribute names to the values they must currently hold.
	Expect map[string]any
}

// ScanParams defines a filtered full-table scan.
type ScanParams struct {
	// SortKeyPrefix keeps only items whose SK begins with it. Empty means no filter.
	SortKeyPrefix string
}

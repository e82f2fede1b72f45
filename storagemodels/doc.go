/*
Package storagemodels defines the data structures used throughout the lending store.

Key Types:

Book:
The only entity. Stored as a single item keyed by PK "BOOK#<id>" and SK "METADATA#<id>":

	PK           (S)    "BOOK#" + id
	SK           (S)    "METADATA#" + id
	Id           (S)
	Title        (S)
	Author       (S)
	ISBN         (S)
	IsCheckedOut (BOOL)

Validate checks a Book against its field rules and reports every violation in rule order.

UpdateParams:
A single conditional update. The condition holds only if every Expect entry matches
the stored value (and the item exists, when RequireExists is set):

	params := &UpdateParams{
	    Operation:     "checkout",
	    Set:           map[string]any{AttrIsCheckedOut: true},
	    RequireExists: true,
	    Expect:        map[string]any{AttrIsCheckedOut: false},
	}

ScanParams / ScanOptions:
A filtered full scan and its tuning knobs:

	books, err := store.Scan(ctx, &ScanParams{SortKeyPrefix: BookSortPrefix},
	    WithPageSize(100),
	    WithPageHandler(func(p ScanProgress) {
	        log.Printf("scanned %d items", p.ItemsScanned)
	    }),
	)
*/
package storagemodels

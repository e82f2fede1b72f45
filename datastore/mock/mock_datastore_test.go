/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/booklending/datastore"
	"github.com/suparena/booklending/datastore/mock"
	bookerrors "github.com/suparena/booklending/errors"
	"github.com/suparena/booklending/storagemodels"
)

var _ datastore.DataStore[storagemodels.Book] = (*mock.DataStore[storagemodels.Book])(nil)

func checkout() *storagemodels.UpdateParams {
	return &storagemodels.UpdateParams{
		Operation:     "checkout",
		Set:           map[string]any{storagemodels.AttrIsCheckedOut: true},
		RequireExists: true,
		Expect:        map[string]any{storagemodels.AttrIsCheckedOut: false},
	}
}

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		store := mock.New[storagemodels.Book]()

		book := storagemodels.Book{ID: "123", Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"}
		if err := store.Put(ctx, book); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		item, ok := store.Item("123")
		if !ok {
			t.Fatal("Expected item to be stored")
		}
		if pk := item["PK"].(*types.AttributeValueMemberS).Value; pk != "BOOK#123" {
			t.Errorf("Expected PK BOOK#123, got %s", pk)
		}
		if sk := item["SK"].(*types.AttributeValueMemberS).Value; sk != "METADATA#123" {
			t.Errorf("Expected SK METADATA#123, got %s", sk)
		}

		books, err := store.Scan(ctx, &storagemodels.ScanParams{SortKeyPrefix: storagemodels.BookSortPrefix})
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(books) != 1 || books[0] != book {
			t.Fatalf("Unexpected scan result: %+v", books)
		}
	})

	t.Run("ConditionalUpdate", func(t *testing.T) {
		store := mock.New[storagemodels.Book]()
		_ = store.Put(ctx, storagemodels.Book{ID: "1", Title: "T", Author: "A", ISBN: "I"})

		if err := store.UpdateWithCondition(ctx, "1", checkout()); err != nil {
			t.Fatalf("First checkout failed: %v", err)
		}
		err := store.UpdateWithCondition(ctx, "1", checkout())
		if !bookerrors.IsConditionFailed(err) {
			t.Fatalf("Expected condition failure on second checkout, got %v", err)
		}

		books, _ := store.Scan(ctx, &storagemodels.ScanParams{})
		if !books[0].IsCheckedOut {
			t.Error("Expected book to be checked out")
		}
	})

	t.Run("MissingItemFailsCondition", func(t *testing.T) {
		store := mock.New[storagemodels.Book]()

		err := store.UpdateWithCondition(ctx, "nope", checkout())
		if !bookerrors.IsConditionFailed(err) {
			t.Fatalf("Expected condition failure, got %v", err)
		}
		if store.Len() != 0 {
			t.Fatal("A failed update must not create an item")
		}
	})

	t.Run("MissingAttributeNeverMatches", func(t *testing.T) {
		store := mock.New[storagemodels.Book]()
		_ = store.PutRaw(map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: "BOOK#legacy"},
			"SK": &types.AttributeValueMemberS{Value: "METADATA#legacy"},
			"Id": &types.AttributeValueMemberS{Value: "legacy"},
		})

		err := store.UpdateWithCondition(ctx, "legacy", checkout())
		if !bookerrors.IsConditionFailed(err) {
			t.Fatalf("Expected condition failure, got %v", err)
		}

		books, err := store.Scan(ctx, &storagemodels.ScanParams{SortKeyPrefix: storagemodels.BookSortPrefix})
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(books) != 1 || books[0].IsCheckedOut {
			t.Fatalf("Expected one available book, got %+v", books)
		}
	})

	t.Run("ScanFiltersBySortKeyPrefix", func(t *testing.T) {
		store := mock.New[storagemodels.Book]()
		_ = store.Put(ctx, storagemodels.Book{ID: "1", Title: "T", Author: "A", ISBN: "I"})
		_ = store.PutRaw(map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: "BOOK#1"},
			"SK": &types.AttributeValueMemberS{Value: "LOAN#2024"},
		})

		var progress storagemodels.ScanProgress
		books, err := store.Scan(ctx,
			&storagemodels.ScanParams{SortKeyPrefix: storagemodels.BookSortPrefix},
			storagemodels.WithPageHandler(func(p storagemodels.ScanProgress) { progress = p }),
		)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(books) != 1 {
			t.Fatalf("Expected 1 book, got %d", len(books))
		}
		if progress.ItemsScanned != 2 || progress.ItemsMatched != 1 {
			t.Errorf("Unexpected progress %+v", progress)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		boom := errors.New("boom")
		store := mock.New[storagemodels.Book]().
			WithPutError(boom).
			WithUpdateError(boom).
			WithScanError(boom)

		if err := store.Put(ctx, storagemodels.Book{ID: "1"}); !errors.Is(err, boom) {
			t.Errorf("Expected put error, got %v", err)
		}
		if err := store.UpdateWithCondition(ctx, "1", checkout()); !errors.Is(err, boom) {
			t.Errorf("Expected update error, got %v", err)
		}
		if _, err := store.Scan(ctx, nil); !errors.Is(err, boom) {
			t.Errorf("Expected scan error, got %v", err)
		}

		calls := store.Calls()
		if calls.Puts != 1 || calls.Updates != 1 || calls.Scans != 1 {
			t.Errorf("Unexpected call counts %+v", calls)
		}
	})
}

func TestConcurrentCheckoutSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := mock.New[storagemodels.Book]()
	_ = store.Put(ctx, storagemodels.Book{ID: "race", Title: "T", Author: "A", ISBN: "I"})

	const workers = 32
	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.UpdateWithCondition(ctx, "race", checkout())
			switch {
			case err == nil:
				wins.Add(1)
			case bookerrors.IsConditionFailed(err):
				conflicts.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("Expected exactly one successful checkout, got %d", wins.Load())
	}
	if conflicts.Load() != workers-1 {
		t.Fatalf("Expected %d conflicts, got %d", workers-1, conflicts.Load())
	}
}

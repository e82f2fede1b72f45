/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	bookerrors "github.com/suparena/booklending/errors"
	"github.com/suparena/booklending/storagemodels"
)

// fakeClient records requests and replays canned responses.
type fakeClient struct {
	mu      sync.Mutex
	puts    []*sdk.PutItemInput
	updates []*sdk.UpdateItemInput
	scans   []*sdk.ScanInput

	pages     [][]map[string]types.AttributeValue
	putErr    error
	updateErr error
	scanErr   error
}

func (f *fakeClient) PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, params)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, params)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &sdk.UpdateItemOutput{}, nil
}

func (f *fakeClient) Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans = append(f.scans, params)
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	page := 0
	if n, ok := params.ExclusiveStartKey["page"].(*types.AttributeValueMemberN); ok {
		page, _ = strconv.Atoi(n.Value)
	}
	out := &sdk.ScanOutput{}
	if page < len(f.pages) {
		out.Items = f.pages[page]
		out.ScannedCount = int32(len(f.pages[page]) + 1)
	}
	if page+1 < len(f.pages) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"page": &types.AttributeValueMemberN{Value: strconv.Itoa(page + 1)},
		}
	}
	return out, nil
}

func newTestStore(t *testing.T, client *fakeClient) *DynamodbDataStore[storagemodels.Book] {
	t.Helper()
	store, err := NewDynamodbDataStore[storagemodels.Book](client, "Books-Test")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func stringAttr(t *testing.T, item map[string]types.AttributeValue, name string) string {
	t.Helper()
	s, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		t.Fatalf("Attribute %s is not a string: %#v", name, item[name])
	}
	return s.Value
}

func boolAttr(t *testing.T, item map[string]types.AttributeValue, name string) bool {
	t.Helper()
	b, ok := item[name].(*types.AttributeValueMemberBOOL)
	if !ok {
		t.Fatalf("Attribute %s is not a bool: %#v", name, item[name])
	}
	return b.Value
}

func bookItem(id, title string, checkedOut *bool) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"PK":     &types.AttributeValueMemberS{Value: "BOOK#" + id},
		"SK":     &types.AttributeValueMemberS{Value: "METADATA#" + id},
		"Id":     &types.AttributeValueMemberS{Value: id},
		"Title":  &types.AttributeValueMemberS{Value: title},
		"Author": &types.AttributeValueMemberS{Value: "Author " + id},
		"ISBN":   &types.AttributeValueMemberS{Value: "ISBN-" + id},
	}
	if checkedOut != nil {
		item["IsCheckedOut"] = &types.AttributeValueMemberBOOL{Value: *checkedOut}
	}
	return item
}

func TestNewDynamodbDataStore(t *testing.T) {
	t.Run("RequiresTableName", func(t *testing.T) {
		_, err := NewDynamodbDataStore[storagemodels.Book](&fakeClient{}, "")
		if err == nil {
			t.Fatal("Expected error for empty table name")
		}
	})

	t.Run("RequiresClient", func(t *testing.T) {
		_, err := NewDynamodbDataStore[storagemodels.Book](nil, "Books")
		if err == nil {
			t.Fatal("Expected error for nil client")
		}
	})

	t.Run("RequiresIndexMap", func(t *testing.T) {
		type unmapped struct{ ID string }
		_, err := NewDynamodbDataStore[unmapped](&fakeClient{}, "Books")
		if !errors.Is(err, bookerrors.ErrNoIndexMap) {
			t.Fatalf("Expected ErrNoIndexMap, got %v", err)
		}
	})
}

func TestPutWritesItemLayout(t *testing.T) {
	client := &fakeClient{}
	store := newTestStore(t, client)

	book := storagemodels.Book{
		ID:     "b-1",
		Title:  "The Pragmatic Programmer",
		Author: "Andrew Hunt",
		ISBN:   "978-0201616224",
	}
	if err := store.Put(context.Background(), book); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if len(client.puts) != 1 {
		t.Fatalf("Expected 1 PutItem call, got %d", len(client.puts))
	}
	input := client.puts[0]
	if *input.TableName != "Books-Test" {
		t.Errorf("Expected table Books-Test, got %s", *input.TableName)
	}
	if input.ConditionExpression != nil {
		t.Errorf("Put must be unconditional, got %q", *input.ConditionExpression)
	}

	item := input.Item
	expected := map[string]string{
		"PK":     "BOOK#b-1",
		"SK":     "METADATA#b-1",
		"Id":     "b-1",
		"Title":  "The Pragmatic Programmer",
		"Author": "Andrew Hunt",
		"ISBN":   "978-0201616224",
	}
	for name, want := range expected {
		if got := stringAttr(t, item, name); got != want {
			t.Errorf("Expected %s=%q, got %q", name, want, got)
		}
	}
	if boolAttr(t, item, "IsCheckedOut") {
		t.Error("Expected IsCheckedOut=false")
	}
	if len(item) != 7 {
		t.Errorf("Expected exactly 7 attributes, got %d", len(item))
	}
}

func TestPutStoreFailure(t *testing.T) {
	client := &fakeClient{putErr: errors.New("throttled")}
	store := newTestStore(t, client)

	err := store.Put(context.Background(), storagemodels.Book{ID: "1", Title: "T", Author: "A", ISBN: "I"})
	if !bookerrors.IsStoreFailure(err) {
		t.Fatalf("Expected store failure, got %v", err)
	}
}

func checkoutParams() *storagemodels.UpdateParams {
	return &storagemodels.UpdateParams{
		Operation:     "checkout",
		Set:           map[string]any{storagemodels.AttrIsCheckedOut: true},
		RequireExists: true,
		Expect:        map[string]any{storagemodels.AttrIsCheckedOut: false},
	}
}

func TestUpdateWithConditionRequest(t *testing.T) {
	client := &fakeClient{}
	store := newTestStore(t, client)

	if err := store.UpdateWithCondition(context.Background(), "test-id", checkoutParams()); err != nil {
		t.Fatalf("UpdateWithCondition failed: %v", err)
	}

	if len(client.updates) != 1 {
		t.Fatalf("Expected 1 UpdateItem call, got %d", len(client.updates))
	}
	input := client.updates[0]

	if got := stringAttr(t, input.Key, "PK"); got != "BOOK#test-id" {
		t.Errorf("Expected PK BOOK#test-id, got %s", got)
	}
	if got := stringAttr(t, input.Key, "SK"); got != "METADATA#test-id" {
		t.Errorf("Expected SK METADATA#test-id, got %s", got)
	}
	if *input.UpdateExpression != "SET #f0 = :v0" {
		t.Errorf("Unexpected update expression %q", *input.UpdateExpression)
	}
	if input.ConditionExpression == nil || *input.ConditionExpression != "attribute_exists(#pk) AND #c0 = :c0" {
		t.Fatalf("Unexpected condition expression %v", input.ConditionExpression)
	}

	names := input.ExpressionAttributeNames
	if names["#f0"] != "IsCheckedOut" || names["#c0"] != "IsCheckedOut" || names["#pk"] != "PK" {
		t.Errorf("Unexpected attribute names %v", names)
	}
	if !boolAttr(t, input.ExpressionAttributeValues, ":v0") {
		t.Error("Expected :v0 to set IsCheckedOut=true")
	}
	if boolAttr(t, input.ExpressionAttributeValues, ":c0") {
		t.Error("Expected :c0 to require IsCheckedOut=false")
	}
}

func TestUpdateWithConditionErrors(t *testing.T) {
	t.Run("ConditionalCheckFailed", func(t *testing.T) {
		client := &fakeClient{updateErr: &types.ConditionalCheckFailedException{Message: strPtr("The conditional request failed")}}
		store := newTestStore(t, client)

		err := store.UpdateWithCondition(context.Background(), "x", checkoutParams())
		if !bookerrors.IsConditionFailed(err) {
			t.Fatalf("Expected condition failure, got %v", err)
		}
		if bookerrors.IsStoreFailure(err) {
			t.Fatal("Condition failure must not be a store failure")
		}
	})

	t.Run("OtherError", func(t *testing.T) {
		client := &fakeClient{updateErr: &types.InternalServerError{}}
		store := newTestStore(t, client)

		err := store.UpdateWithCondition(context.Background(), "x", checkoutParams())
		if !bookerrors.IsStoreFailure(err) {
			t.Fatalf("Expected store failure, got %v", err)
		}
		var ise *types.InternalServerError
		if !errors.As(err, &ise) {
			t.Error("Expected the SDK error to stay reachable")
		}
	})

	t.Run("NoUpdates", func(t *testing.T) {
		client := &fakeClient{}
		store := newTestStore(t, client)

		err := store.UpdateWithCondition(context.Background(), "x", &storagemodels.UpdateParams{})
		if err == nil {
			t.Fatal("Expected error for empty update")
		}
		if len(client.updates) != 0 {
			t.Fatal("No request should be sent for an empty update")
		}
	})
}

func TestBuildUpdateExpressionIsDeterministic(t *testing.T) {
	updates := map[string]any{"Title": "T", "Author": "A", "IsCheckedOut": true}

	first, names, _, err := buildUpdateExpression(updates)
	if err != nil {
		t.Fatalf("buildUpdateExpression failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _, _, _ := buildUpdateExpression(updates)
		if again != first {
			t.Fatalf("Expression changed between calls: %q vs %q", first, again)
		}
	}
	if first != "SET #f0 = :v0, #f1 = :v1, #f2 = :v2" {
		t.Errorf("Unexpected expression %q", first)
	}
	if names["#f0"] != "Author" || names["#f1"] != "IsCheckedOut" || names["#f2"] != "Title" {
		t.Errorf("Expected fields in name order, got %v", names)
	}
}

func TestScan(t *testing.T) {
	checked := true
	notChecked := false

	t.Run("FollowsPagesAndDecodes", func(t *testing.T) {
		client := &fakeClient{pages: [][]map[string]types.AttributeValue{
			{bookItem("1", "Book 1", &notChecked), bookItem("2", "Book 2", &checked)},
			{bookItem("3", "Book 3", nil)},
		}}
		store := newTestStore(t, client)

		var progress []storagemodels.ScanProgress
		books, err := store.Scan(context.Background(),
			&storagemodels.ScanParams{SortKeyPrefix: storagemodels.BookSortPrefix},
			storagemodels.WithPageSize(2),
			storagemodels.WithPageHandler(func(p storagemodels.ScanProgress) {
				progress = append(progress, p)
			}),
		)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}

		if len(books) != 3 {
			t.Fatalf("Expected 3 books, got %d", len(books))
		}
		if books[0].Title != "Book 1" || books[0].IsCheckedOut {
			t.Errorf("Unexpected first book %+v", books[0])
		}
		if books[1].ID != "2" || !books[1].IsCheckedOut {
			t.Errorf("Unexpected second book %+v", books[1])
		}
		// Missing IsCheckedOut decodes as false
		if books[2].ID != "3" || books[2].IsCheckedOut {
			t.Errorf("Unexpected third book %+v", books[2])
		}

		if len(client.scans) != 2 {
			t.Fatalf("Expected 2 Scan calls, got %d", len(client.scans))
		}
		first := client.scans[0]
		if *first.FilterExpression != "begins_with(#sk, :skPrefix)" {
			t.Errorf("Unexpected filter %q", *first.FilterExpression)
		}
		if first.ExpressionAttributeNames["#sk"] != "SK" {
			t.Errorf("Expected #sk to name SK, got %v", first.ExpressionAttributeNames)
		}
		if got := stringAttr(t, first.ExpressionAttributeValues, ":skPrefix"); got != "METADATA#" {
			t.Errorf("Expected prefix METADATA#, got %q", got)
		}
		if first.Limit == nil || *first.Limit != 2 {
			t.Errorf("Expected page size 2, got %v", first.Limit)
		}

		if len(progress) != 2 || progress[1].ItemsMatched != 3 || progress[1].PagesProcessed != 2 {
			t.Errorf("Unexpected progress %+v", progress)
		}
	})

	t.Run("EmptyTable", func(t *testing.T) {
		store := newTestStore(t, &fakeClient{})

		books, err := store.Scan(context.Background(), &storagemodels.ScanParams{SortKeyPrefix: storagemodels.BookSortPrefix})
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if books == nil || len(books) != 0 {
			t.Fatalf("Expected empty non-nil slice, got %#v", books)
		}
	})

	t.Run("StoreFailure", func(t *testing.T) {
		store := newTestStore(t, &fakeClient{scanErr: context.DeadlineExceeded})

		_, err := store.Scan(context.Background(), &storagemodels.ScanParams{})
		if !bookerrors.IsStoreFailure(err) {
			t.Fatalf("Expected store failure, got %v", err)
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Error("Expected the deadline error to stay reachable")
		}
	})
}

func strPtr(s string) *string {
	return &s
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DataStore interface for testing.
//
// Items are held in their DynamoDB attribute form under the keys produced by the
// registered index map, and conditional updates are evaluated atomically under a
// single lock, so the store behaves like one DynamoDB table for the operations it
// supports.
package mock

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	bookerrors "github.com/suparena/booklending/errors"
	"github.com/suparena/booklending/registry"
	"github.com/suparena/booklending/storagemodels"
)

// Calls counts the operations a DataStore has received, including failed ones.
type Calls struct {
	Puts    int
	Updates int
	Scans   int
}

// DataStore is a mock implementation of datastore.DataStore[T] for testing
type DataStore[T any] struct {
	mu          sync.Mutex
	items       map[string]map[string]types.AttributeValue
	order       []string
	calls       Calls
	putError    error
	updateError error
	scanError   error
}

// New creates a new, empty mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithUpdateError makes UpdateWithCondition operations return an error
func (m *DataStore[T]) WithUpdateError(err error) *DataStore[T] {
	m.updateError = err
	return m
}

// WithScanError makes Scan operations return an error
func (m *DataStore[T]) WithScanError(err error) *DataStore[T] {
	m.scanError = err
	return m
}

// Calls returns the operation counters.
func (m *DataStore[T]) Calls() Calls {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Len returns the number of stored items.
func (m *DataStore[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Item returns a copy of the raw attributes stored under the key of id.
func (m *DataStore[T]) Item(id string) (map[string]types.AttributeValue, bool) {
	key, err := registry.KeyFor[T](id)
	if err != nil {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemKey(key)]
	if !ok {
		return nil, false
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out, true
}

// PutRaw stores item as is, for seeding records written by other producers.
func (m *DataStore[T]) PutRaw(item map[string]types.AttributeValue) error {
	if _, ok := item[registry.PartitionKey]; !ok {
		return errors.New("item has no partition key")
	}
	if _, ok := item[registry.SortKey]; !ok {
		return errors.New("item has no sort key")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(itemKey(item), item)
	return nil
}

// Put stores an entity, replacing any item with the same key.
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Puts++

	if m.putError != nil {
		return m.putError
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}
	expanded, err := registry.KeysOf(entity)
	if err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	m.store(itemKey(av), av)
	return nil
}

// UpdateWithCondition applies params.Set when every precondition of params holds.
// An attribute absent from the item never matches an expected value.
func (m *DataStore[T]) UpdateWithCondition(ctx context.Context, key string, params *storagemodels.UpdateParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Updates++

	if m.updateError != nil {
		return m.updateError
	}
	if params == nil || len(params.Set) == 0 {
		return errors.New("no updates provided")
	}

	keyMap, err := registry.KeyFor[T](key)
	if err != nil {
		return fmt.Errorf("failed to build key: %w", err)
	}
	k := itemKey(keyMap)

	item, exists := m.items[k]
	if !exists && (params.RequireExists || len(params.Expect) > 0) {
		return bookerrors.NewConditionFailedError(params.Operation, key)
	}
	for field, want := range params.Expect {
		wantAV, err := attributevalue.Marshal(want)
		if err != nil {
			return fmt.Errorf("unhandled condition value type for field '%s': %w", field, err)
		}
		got, ok := item[field]
		if !ok || !reflect.DeepEqual(got, wantAV) {
			return bookerrors.NewConditionFailedError(params.Operation, key)
		}
	}

	updated := make(map[string]types.AttributeValue, len(item)+len(params.Set))
	if exists {
		for f, v := range item {
			updated[f] = v
		}
	} else {
		for f, v := range keyMap {
			updated[f] = v
		}
	}
	for field, value := range params.Set {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("unhandled update value type for field '%s': %w", field, err)
		}
		updated[field] = av
	}

	m.store(k, updated)
	return nil
}

// Scan returns the stored items whose sort key begins with params.SortKeyPrefix,
// in insertion order. Page options are honoured by the page handler only.
func (m *DataStore[T]) Scan(ctx context.Context, params *storagemodels.ScanParams, opts ...storagemodels.ScanOption) ([]T, error) {
	options := storagemodels.ApplyScanOptions(opts...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Scans++

	if m.scanError != nil {
		return nil, m.scanError
	}
	if err := ctx.Err(); err != nil {
		return nil, bookerrors.NewStoreError("Scan", err)
	}

	prefix := ""
	if params != nil {
		prefix = params.SortKeyPrefix
	}

	matched := make([]map[string]types.AttributeValue, 0, len(m.order))
	for _, k := range m.order {
		item := m.items[k]
		sk, ok := item[registry.SortKey].(*types.AttributeValueMemberS)
		if !ok || !strings.HasPrefix(sk.Value, prefix) {
			continue
		}
		matched = append(matched, item)
	}

	results := make([]T, 0, len(matched))
	if err := attributevalue.UnmarshalListOfMaps(matched, &results); err != nil {
		return nil, bookerrors.NewStoreError("Scan", fmt.Errorf("failed to unmarshal items: %w", err))
	}

	if options.PageHandler != nil {
		options.PageHandler(storagemodels.ScanProgress{
			PagesProcessed: 1,
			ItemsScanned:   int64(len(m.order)),
			ItemsMatched:   int64(len(matched)),
		})
	}
	return results, nil
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]map[string]types.AttributeValue)
	m.order = nil
}

func (m *DataStore[T]) store(k string, item map[string]types.AttributeValue) {
	if _, exists := m.items[k]; !exists {
		m.order = append(m.order, k)
	}
	m.items[k] = item
}

// itemKey renders the primary key of item as "PK|SK".
func itemKey(item map[string]types.AttributeValue) string {
	var pk, sk string
	if v, ok := item[registry.PartitionKey].(*types.AttributeValueMemberS); ok {
		pk = v.Value
	}
	if v, ok := item[registry.SortKey].(*types.AttributeValueMemberS); ok {
		sk = v.Value
	}
	return pk + "|" + sk
}

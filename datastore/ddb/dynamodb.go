/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	bookerrors "github.com/suparena/booklending/errors"
	"github.com/suparena/booklending/registry"
	"github.com/suparena/booklending/storagemodels"
)

// DynamodbDataStore implements datastore.DataStore[T] by using AWS DynamoDB as the underlying data store.
type DynamodbDataStore[T any] struct {
	client    DynamoDBAPI
	tableName string
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for type T on an existing client.
func NewDynamodbDataStore[T any](client DynamoDBAPI, tableName string) (*DynamodbDataStore[T], error) {
	if client == nil {
		return nil, errors.New("dynamodb client is nil")
	}
	if tableName == "" {
		return nil, errors.New("DynamoDB table name is not configured")
	}
	if _, ok := registry.GetIndexMap[T](); !ok {
		return nil, fmt.Errorf("%w %T", bookerrors.ErrNoIndexMap, *new(T))
	}

	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
	}, nil
}

// NewDynamodbDataStoreFromConfig creates the client from cfg and wraps it.
func NewDynamodbDataStoreFromConfig[T any](ctx context.Context, cfg ClientConfig, tableName string) (*DynamodbDataStore[T], error) {
	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewDynamodbDataStore[T](client, tableName)
}

// TableName returns the table the store writes to.
func (d *DynamodbDataStore[T]) TableName() string {
	return d.tableName
}

// Put stores the given 'entity' using macros in its index map to populate
// the partition/sort keys. The write is unconditional.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := registry.KeysOf(entity)
	if err != nil {
		return err
	}

	// Insert the expanded fields as PK, SK, etc.
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return bookerrors.NewStoreError("PutItem", err)
	}
	return nil
}

// UpdateWithCondition applies params.Set to the item identified by key in a single
// UpdateItem call. The existence and value checks are evaluated by DynamoDB in the same
// atomic step as the write.
func (d *DynamodbDataStore[T]) UpdateWithCondition(ctx context.Context, key string, params *storagemodels.UpdateParams) error {
	if params == nil {
		return errors.New("no update parameters provided")
	}

	keyMap, err := registry.KeyFor[T](key)
	if err != nil {
		return fmt.Errorf("failed to build key: %w", err)
	}

	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression(params.Set)
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	condExpr, err := buildConditionExpression(params, exprAttrNames, exprAttrValues)
	if err != nil {
		return fmt.Errorf("failed to build condition expression: %w", err)
	}

	input := &sdk.UpdateItemInput{
		TableName:                 &d.tableName,
		Key:                       keyMap,
		UpdateExpression:          &updateExpr,
		ExpressionAttributeNames:  exprAttrNames,
		ExpressionAttributeValues: exprAttrValues,
		ReturnValues:              types.ReturnValueNone,
	}
	if condExpr != "" {
		input.ConditionExpression = aws.String(condExpr)
	}

	_, err = d.client.UpdateItem(ctx, input)
	if err != nil {
		// If the condition fails, DynamoDB returns a ConditionalCheckFailedException
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return bookerrors.NewConditionFailedError(params.Operation, key)
		}
		return bookerrors.NewStoreError("UpdateItem", err)
	}

	return nil
}

// buildUpdateExpression transforms a map of field->value into:
//   - an "update expression" (e.g., "SET #f0 = :v0, #f1 = :v1")
//   - a corresponding map of expression attribute names
//   - a corresponding map of expression attribute values
//
// Fields are numbered in name order so the same updates always give the same expression.
func buildUpdateExpression(updates map[string]any) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	if len(updates) == 0 {
		return "", nil, nil, errors.New("no updates provided")
	}

	setClauses := make([]string, 0, len(updates))
	exprAttrNames := make(map[string]string)
	exprAttrValues := make(map[string]types.AttributeValue)

	for i, field := range sortedKeys(updates) {
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		av, err := attributevalue.Marshal(updates[field])
		if err != nil {
			return "", nil, nil, fmt.Errorf("unhandled update value type for field '%s': %w", field, err)
		}

		setClauses = append(setClauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		exprAttrNames[placeholderName] = field
		exprAttrValues[placeholderValue] = av
	}

	return "SET " + strings.Join(setClauses, ", "), exprAttrNames, exprAttrValues, nil
}

// buildConditionExpression renders the preconditions of params, adding its placeholders
// to names and values. It returns "" when params carries no precondition.
func buildConditionExpression(params *storagemodels.UpdateParams,
	names map[string]string,
	values map[string]types.AttributeValue) (string, error) {

	var clauses []string
	if params.RequireExists {
		names["#pk"] = registry.PartitionKey
		clauses = append(clauses, "attribute_exists(#pk)")
	}

	for i, field := range sortedKeys(params.Expect) {
		placeholderName := fmt.Sprintf("#c%d", i)
		placeholderValue := fmt.Sprintf(":c%d", i)

		av, err := attributevalue.Marshal(params.Expect[field])
		if err != nil {
			return "", fmt.Errorf("unhandled condition value type for field '%s': %w", field, err)
		}

		clauses = append(clauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		names[placeholderName] = field
		values[placeholderValue] = av
	}

	return strings.Join(clauses, " AND "), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

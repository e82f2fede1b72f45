/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	bookerrors "github.com/suparena/booklending/errors"
	"github.com/suparena/booklending/registry"
	"github.com/suparena/booklending/storagemodels"
)

// Scan reads the whole table, following LastEvaluatedKey until it is exhausted, and
// returns every item whose sort key begins with params.SortKeyPrefix in the order
// DynamoDB returned them. The result is not a consistent snapshot of the table.
func (d *DynamodbDataStore[T]) Scan(ctx context.Context, params *storagemodels.ScanParams, opts ...storagemodels.ScanOption) ([]T, error) {
	options := storagemodels.ApplyScanOptions(opts...)

	input := &sdk.ScanInput{
		TableName: &d.tableName,
	}
	if params != nil && params.SortKeyPrefix != "" {
		input.FilterExpression = aws.String("begins_with(#sk, :skPrefix)")
		input.ExpressionAttributeNames = map[string]string{"#sk": registry.SortKey}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":skPrefix": &types.AttributeValueMemberS{Value: params.SortKeyPrefix},
		}
	}
	if options.PageSize > 0 {
		input.Limit = aws.Int32(options.PageSize)
	}
	if options.ConsistentRead {
		input.ConsistentRead = aws.Bool(true)
	}

	results := make([]T, 0)
	var progress storagemodels.ScanProgress

	paginator := sdk.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, bookerrors.NewStoreError("Scan", err)
		}

		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, bookerrors.NewStoreError("Scan", fmt.Errorf("failed to unmarshal items: %w", err))
		}
		results = append(results, page...)

		progress.PagesProcessed++
		progress.ItemsScanned += int64(out.ScannedCount)
		progress.ItemsMatched += int64(len(out.Items))
		if options.PageHandler != nil {
			options.PageHandler(progress)
		}
	}

	return results, nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/booklending/errors"
)

// Key attribute names of the table.
const (
	PartitionKey = "PK"
	SortKey      = "SK"
)

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// ExpandKeys fills the macros of every template in indexMap from the attributes of entity.
// A macro naming a missing or non-scalar attribute expands to "".
func ExpandKeys(indexMap map[string]string, entity any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			val, ok := av[strings.Trim(macro, "{}")]
			if !ok {
				return ""
			}
			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
	}
	return res, nil
}

// ExpandStringKey replaces every macro of every template with key.
func ExpandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// PrimaryKey builds the PK/SK attribute map from an expanded index map.
func PrimaryKey(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded[PartitionKey]
	sk, okSK := expanded[SortKey]
	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		PartitionKey: &types.AttributeValueMemberS{Value: pk},
		SortKey:      &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// KeyFor resolves the primary key of the T identified by id.
func KeyFor[T any](id string) (map[string]types.AttributeValue, error) {
	indexMap, ok := GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w %T", errors.ErrNoIndexMap, *new(T))
	}
	return PrimaryKey(ExpandStringKey(indexMap, id))
}

// KeysOf resolves every templated attribute (PK, SK, ...) of entity.
func KeysOf[T any](entity T) (map[string]string, error) {
	indexMap, ok := GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w %T", errors.ErrNoIndexMap, entity)
	}
	return ExpandKeys(indexMap, entity)
}

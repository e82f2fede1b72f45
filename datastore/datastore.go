/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/booklending/storagemodels"
)

type DataStore[T any] interface {
	Put(ctx context.Context, entity T) error

	UpdateWithCondition(ctx context.Context, key string, params *storagemodels.UpdateParams) error

	Scan(ctx context.Context, params *storagemodels.ScanParams, opts ...storagemodels.ScanOption) ([]T, error)
}

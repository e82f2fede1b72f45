/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command bookctl adds, lists, checks out and returns books directly against DynamoDB.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/suparena/booklending/config"
	"github.com/suparena/booklending/datastore/ddb"
	"github.com/suparena/booklending/lending"
	"github.com/suparena/booklending/storagemodels"
	"github.com/suparena/booklending/telemetry"
	"github.com/suparena/booklending/transport"
)

func main() {
	if err := newRootCmd(openService).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func openService(ctx context.Context, configPath string) (transport.BookService, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	store, err := ddb.NewDynamodbDataStoreFromConfig[storagemodels.Book](ctx, cfg.ClientConfig(), cfg.DynamoDB.TableName)
	if err != nil {
		return nil, fmt.Errorf("failed to open book store: %w", err)
	}

	svc, err := lending.New(store, lending.Config{TableName: cfg.DynamoDB.TableName},
		lending.WithLogger(telemetry.NewLogger(os.Stderr, cfg.Log.Level)),
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

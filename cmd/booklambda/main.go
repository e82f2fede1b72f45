/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command booklambda is the AWS Lambda entry point of the book lending API.
// The table is selected by TABLE_NAME; credentials come from the execution role.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/suparena/booklending/config"
	"github.com/suparena/booklending/datastore/ddb"
	"github.com/suparena/booklending/lending"
	"github.com/suparena/booklending/storagemodels"
	"github.com/suparena/booklending/telemetry"
	"github.com/suparena/booklending/transport/lambdafn"
)

func main() {
	handler, err := newHandler(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "booklambda: %v\n", err)
		os.Exit(1)
	}
	lambda.Start(handler.Handle)
}

func newHandler(ctx context.Context) (*lambdafn.Handler, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	logger := telemetry.NewLogger(os.Stdout, cfg.Log.Level)

	store, err := ddb.NewDynamodbDataStoreFromConfig[storagemodels.Book](ctx, cfg.ClientConfig(), cfg.DynamoDB.TableName)
	if err != nil {
		return nil, fmt.Errorf("failed to open book store: %w", err)
	}

	svc, err := lending.New(store, lending.Config{TableName: cfg.DynamoDB.TableName}, lending.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return lambdafn.NewHandler(svc, logger), nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command booksvc serves the book lending HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suparena/booklending"
	"github.com/suparena/booklending/config"
	"github.com/suparena/booklending/datastore/ddb"
	"github.com/suparena/booklending/lending"
	"github.com/suparena/booklending/storagemodels"
	"github.com/suparena/booklending/telemetry"
	"github.com/suparena/booklending/transport/httpapi"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "", "Path to a YAML config file")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := booklending.GetVersionInfo()
		fmt.Printf("booksvc version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "booksvc: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := telemetry.NewLogger(os.Stdout, cfg.Log.Level)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	store, err := ddb.NewDynamodbDataStoreFromConfig[storagemodels.Book](ctx, cfg.ClientConfig(), cfg.DynamoDB.TableName)
	if err != nil {
		return fmt.Errorf("failed to open book store: %w", err)
	}

	svc, err := lending.New(store, lending.Config{TableName: cfg.DynamoDB.TableName}, lending.WithLogger(logger))
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.NewRouter(svc, httpapi.OptionsFromConfig(cfg.HTTP, logger)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("booksvc listening", "addr", cfg.HTTP.Addr, "table", cfg.DynamoDB.TableName, "version", booklending.Version)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

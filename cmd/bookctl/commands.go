/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suparena/booklending"
	"github.com/suparena/booklending/lending"
	"github.com/suparena/booklending/storagemodels"
	"github.com/suparena/booklending/transport"
)

// serviceFactory opens the lending service described by the config file at path.
type serviceFactory func(ctx context.Context, configPath string) (transport.BookService, error)

func newRootCmd(open serviceFactory) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "bookctl",
		Short:        "Manage the book lending table",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	service := func(cmd *cobra.Command) (transport.BookService, error) {
		return open(cmd.Context(), configPath)
	}

	root.AddCommand(
		newAddCmd(service),
		newListCmd(service),
		newStateCmd(service, "checkout", "Check a book out", func(ctx context.Context, svc transport.BookService, id string) lending.Result[lending.Unit] {
			return svc.Checkout(ctx, id)
		}, transport.MsgCheckoutSucceeded),
		newStateCmd(service, "return", "Return a checked out book", func(ctx context.Context, svc transport.BookService, id string) lending.Result[lending.Unit] {
			return svc.Return(ctx, id)
		}, transport.MsgReturnSucceeded),
		newVersionCmd(),
	)
	return root
}

func newAddCmd(service func(*cobra.Command) (transport.BookService, error)) *cobra.Command {
	var book storagemodels.Book

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service(cmd)
			if err != nil {
				return err
			}
			res := svc.Add(cmd.Context(), &book)
			if !res.IsOK() {
				return resultError(res.Outcome, res.Messages(), res.Err())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", res.Value.ID, res.Value.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&book.Title, "title", "", "book title")
	cmd.Flags().StringVar(&book.Author, "author", "", "book author")
	cmd.Flags().StringVar(&book.ISBN, "isbn", "", "book ISBN")
	return cmd
}

func newListCmd(service func(*cobra.Command) (transport.BookService, error)) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service(cmd)
			if err != nil {
				return err
			}
			res := svc.List(cmd.Context())
			if !res.IsOK() {
				return resultError(res.Outcome, res.Messages(), res.Err())
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res.Value)
			}
			printBooks(cmd.OutOrStdout(), res.Value)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print books as JSON")
	return cmd
}

func newStateCmd(service func(*cobra.Command) (transport.BookService, error), use, short string,
	apply func(context.Context, transport.BookService, string) lending.Result[lending.Unit], done string) *cobra.Command {

	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service(cmd)
			if err != nil {
				return err
			}
			res := apply(cmd.Context(), svc, args[0])
			if !res.IsOK() {
				return resultError(res.Outcome, res.Messages(), res.Err())
			}
			fmt.Fprintln(cmd.OutOrStdout(), done)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := booklending.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bookctl version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
		},
	}
}

// resultError turns a non-OK result into the error cobra reports.
func resultError(outcome lending.Outcome, messages []string, cause error) error {
	if outcome == lending.OutcomeRejected && len(messages) > 0 {
		return errors.New(strings.Join(messages, "; "))
	}
	return cause
}

func printBooks(w io.Writer, books []storagemodels.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books in library.")
		return
	}

	fmt.Fprintf(w, "%-36s %-30s %-25s %-15s %s\n", "ID", "Title", "Author", "ISBN", "Checked Out")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, b := range books {
		checkedOut := "No"
		if b.IsCheckedOut {
			checkedOut = "Yes"
		}
		fmt.Fprintf(w, "%-36s %-30s %-25s %-15s %s\n",
			b.ID,
			truncateString(b.Title, 30),
			truncateString(b.Author, 25),
			truncateString(b.ISBN, 15),
			checkedOut)
	}
}

func truncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength-3]) + "..."
}

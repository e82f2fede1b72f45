/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package lending

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/suparena/booklending/datastore"
	"github.com/suparena/booklending/storagemodels"
)

// Caller-facing rejection messages of Checkout and Return.
const (
	MsgCheckoutUnavailable = "Book is already checked out or does not exist"
	MsgReturnUnavailable   = "Book is not checked out or does not exist"
)

const tracerName = "github.com/suparena/booklending/lending"

// Config is the explicit configuration of a Service.
type Config struct {
	TableName string
}

// Validate reports whether c can back a Service.
func (c Config) Validate() error {
	if c.TableName == "" {
		return errors.New("DynamoDB table name is not configured")
	}
	return nil
}

// Service implements the lending operations on top of a book store.
// It holds no mutable state; concurrent calls are safe when the store is.
type Service struct {
	store  datastore.DataStore[storagemodels.Book]
	table  string
	logger ContextualLogger
	tracer trace.Tracer
	newID  func() string
}

// New creates a Service over store.
func New(store datastore.DataStore[storagemodels.Book], cfg Config, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("book store is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		store:  store,
		table:  cfg.TableName,
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add validates book and stores it under a freshly generated id, always available.
// An invalid book is rejected before the store is touched. The caller's ID and
// IsCheckedOut are ignored.
func (s *Service) Add(ctx context.Context, book *storagemodels.Book) Result[storagemodels.Book] {
	ctx, span := s.startSpan(ctx, "lending.Add")
	defer span.End()

	if ok, msgs := storagemodels.Validate(book); !ok {
		s.logger.InfoContext(ctx, "book rejected", "table", s.table, "errors", msgs)
		return finish(span, Rejected[storagemodels.Book](ReasonValidation, msgs...))
	}

	stored := storagemodels.Book{
		ID:           s.newID(),
		Title:        book.Title,
		Author:       book.Author,
		ISBN:         book.ISBN,
		IsCheckedOut: false,
	}
	span.SetAttributes(attribute.String("book.id", stored.ID))

	if err := s.store.Put(ctx, stored); err != nil {
		s.logger.ErrorContext(ctx, "failed to add book", "table", s.table, "book_id", stored.ID, "error", err)
		return finish(span, Failed[storagemodels.Book](err))
	}

	s.logger.InfoContext(ctx, "book added", "table", s.table, "book_id", stored.ID)
	return finish(span, Ok(stored))
}

// List returns every book in the table in store order.
func (s *Service) List(ctx context.Context) Result[[]storagemodels.Book] {
	ctx, span := s.startSpan(ctx, "lending.List")
	defer span.End()

	books, err := s.store.Scan(ctx, &storagemodels.ScanParams{SortKeyPrefix: storagemodels.BookSortPrefix})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list books", "table", s.table, "error", err)
		return finish(span, Failed[[]storagemodels.Book](err))
	}
	if books == nil {
		books = []storagemodels.Book{}
	}

	span.SetAttributes(attribute.Int("book.count", len(books)))
	s.logger.DebugContext(ctx, "books listed", "table", s.table, "count", len(books))
	return finish(span, Ok(books))
}

// Checkout marks the book id as checked out. It is rejected when the book does not
// exist or is already checked out; the two cases are not told apart.
func (s *Service) Checkout(ctx context.Context, id string) Result[Unit] {
	return s.toggle(ctx, "lending.Checkout", id, "checkout", true, MsgCheckoutUnavailable)
}

// Return marks the book id as available again. It is rejected when the book does not
// exist or is not checked out.
func (s *Service) Return(ctx context.Context, id string) Result[Unit] {
	return s.toggle(ctx, "lending.Return", id, "return", false, MsgReturnUnavailable)
}

// toggle flips IsCheckedOut of id to checkedOut in one conditional write that requires
// the item to exist and to hold the opposite value.
func (s *Service) toggle(ctx context.Context, spanName, id, operation string, checkedOut bool, unavailable string) Result[Unit] {
	ctx, span := s.startSpan(ctx, spanName, attribute.String("book.id", id))
	defer span.End()

	err := s.store.UpdateWithCondition(ctx, id, &storagemodels.UpdateParams{
		Operation:     operation,
		Set:           map[string]any{storagemodels.AttrIsCheckedOut: checkedOut},
		RequireExists: true,
		Expect:        map[string]any{storagemodels.AttrIsCheckedOut: !checkedOut},
	})

	result := Project[Unit](err, unavailable)
	switch result.Outcome {
	case OutcomeOK:
		s.logger.InfoContext(ctx, "book "+operation+" succeeded", "table", s.table, "book_id", id)
	case OutcomeRejected:
		s.logger.InfoContext(ctx, "book "+operation+" rejected", "table", s.table, "book_id", id, "reason", result.Rejection.Reason.String())
	default:
		s.logger.ErrorContext(ctx, "book "+operation+" failed", "table", s.table, "book_id", id, "error", err)
	}
	return finish(span, result)
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.system", "dynamodb"),
		attribute.String("db.table", s.table),
	)
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finish records the outcome of r on span and returns r.
func finish[T any](span trace.Span, r Result[T]) Result[T] {
	span.SetAttributes(attribute.String("lending.outcome", r.Outcome.String()))
	switch r.Outcome {
	case OutcomeRejected:
		span.SetAttributes(attribute.String("lending.reason", r.Rejection.Reason.String()))
	case OutcomeFailed:
		span.RecordError(r.Cause)
		span.SetStatus(codes.Error, r.Cause.Error())
	}
	return r
}

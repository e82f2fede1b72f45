/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package lending

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/trace"
)

// ContextualLogger is the logging surface the service writes to. *slog.Logger satisfies it.
// Every call passes the operation's span context.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Option defines a functional option for configuring a Service.
type Option func(*Service) error

// WithLogger sets the logger for the Service.
//
// Info level: accepted writes and rejections
// Error level: store failures
// Debug level: reads
func WithLogger(logger ContextualLogger) Option {
	return func(s *Service) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		s.logger = logger
		return nil
	}
}

// WithIDGenerator replaces the generator of new book ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) error {
		if newID == nil {
			return errors.New("id generator is nil")
		}
		s.newID = newID
		return nil
	}
}

// WithTracer sets the tracer spans are started on.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) error {
		if tracer == nil {
			return errors.New("tracer is nil")
		}
		s.tracer = tracer
		return nil
	}
}

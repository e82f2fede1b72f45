/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConditionFailed is returned when a conditional write is rejected by the store
	ErrConditionFailed = errors.New("condition check failed")

	// ErrStoreFailure is returned for any other failure talking to the store
	ErrStoreFailure = errors.New("store failure")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")
)

// ValidationError represents one or more field rule violations.
// Messages keeps the order in which the rules were evaluated.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Messages, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional operation.
// The store does not say which part of the condition failed.
type ConditionFailedError struct {
	Operation string
	Key       string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation on key %q", e.Operation, e.Key)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// StoreError wraps an unexpected error returned by the underlying store.
type StoreError struct {
	Operation string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewValidationError creates a new ValidationError
func NewValidationError(messages ...string) error {
	return &ValidationError{Messages: messages}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, key string) error {
	return &ConditionFailedError{Operation: operation, Key: key}
}

// NewStoreError creates a new StoreError
func NewStoreError(operation string, err error) error {
	return &StoreError{Operation: operation, Err: err}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsStoreFailure checks if an error is a store failure
func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}

// ValidationMessages returns the violation messages carried by err, if any.
func ValidationMessages(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Messages
	}
	return nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package transport maps lending results onto HTTP status codes and JSON bodies.
// The HTTP server and the Lambda handler both render these responses.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/suparena/booklending/lending"
	"github.com/suparena/booklending/storagemodels"
)

// Caller-facing messages.
const (
	MsgBodyRequired      = "Request body is required"
	MsgInvalidBody       = "Invalid request body"
	MsgBodyTooLarge      = "Request body too large"
	MsgListFailed        = "Could not retrieve books"
	MsgAddFailed         = "Could not add book"
	MsgCheckoutFailed    = "Could not checkout book"
	MsgReturnFailed      = "Could not return book"
	MsgCheckoutSucceeded = "Book checked out successfully"
	MsgReturnSucceeded   = "Book returned successfully"
	MsgNotFound          = "Not found"
	MsgMethodNotAllowed  = "Method not allowed"
	MsgTooManyRequests   = "Too many requests"
	MsgInternalError     = "Internal server error"
)

// BookService is the lending surface the transports call.
type BookService interface {
	Add(ctx context.Context, book *storagemodels.Book) lending.Result[storagemodels.Book]
	List(ctx context.Context) lending.Result[[]storagemodels.Book]
	Checkout(ctx context.Context, id string) lending.Result[lending.Unit]
	Return(ctx context.Context, id string) lending.Result[lending.Unit]
}

var _ BookService = (*lending.Service)(nil)

// Response is a status code with a JSON-encodable body.
type Response struct {
	Status int
	Body   any
}

// ErrorBody is the body of single-message failures.
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorsBody is the body of validation failures.
type ErrorsBody struct {
	Errors []string `json:"errors"`
}

// MessageBody is the body of successful state changes.
type MessageBody struct {
	Message string `json:"message"`
}

// Error builds a single-message failure response.
func Error(status int, msg string) Response {
	return Response{Status: status, Body: ErrorBody{Error: msg}}
}

// DecodeBook parses a request body into a book. ok is false when the body is
// empty or not a JSON object, and resp then holds the 400 to send.
func DecodeBook(body []byte) (book *storagemodels.Book, resp Response, ok bool) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, Error(http.StatusBadRequest, MsgBodyRequired), false
	}
	if err := json.Unmarshal(body, &book); err != nil || book == nil {
		return nil, Error(http.StatusBadRequest, MsgInvalidBody), false
	}
	return book, Response{}, true
}

// List renders the result of BookService.List.
func List(r lending.Result[[]storagemodels.Book]) Response {
	if r.IsOK() {
		return Response{Status: http.StatusOK, Body: r.Value}
	}
	return Error(http.StatusInternalServerError, MsgListFailed)
}

// Add renders the result of BookService.Add.
func Add(r lending.Result[storagemodels.Book]) Response {
	switch r.Outcome {
	case lending.OutcomeOK:
		return Response{Status: http.StatusCreated, Body: r.Value}
	case lending.OutcomeRejected:
		return Response{Status: http.StatusBadRequest, Body: ErrorsBody{Errors: r.Messages()}}
	default:
		return Error(http.StatusInternalServerError, MsgAddFailed)
	}
}

// Checkout renders the result of BookService.Checkout.
func Checkout(r lending.Result[lending.Unit]) Response {
	return stateChange(r, MsgCheckoutSucceeded, MsgCheckoutFailed)
}

// Return renders the result of BookService.Return.
func Return(r lending.Result[lending.Unit]) Response {
	return stateChange(r, MsgReturnSucceeded, MsgReturnFailed)
}

func stateChange(r lending.Result[lending.Unit], succeeded, failed string) Response {
	switch r.Outcome {
	case lending.OutcomeOK:
		return Response{Status: http.StatusOK, Body: MessageBody{Message: succeeded}}
	case lending.OutcomeRejected:
		msg := failed
		if msgs := r.Messages(); len(msgs) > 0 {
			msg = msgs[0]
		}
		return Error(http.StatusBadRequest, msg)
	default:
		return Error(http.StatusInternalServerError, failed)
	}
}

// Encode marshals the body of resp. A body that cannot be encoded turns into a 500.
func Encode(resp Response) (int, []byte) {
	data, err := json.Marshal(resp.Body)
	if err != nil {
		data, _ = json.Marshal(ErrorBody{Error: MsgInternalError})
		return http.StatusInternalServerError, data
	}
	return resp.Status, data
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package lambdafn serves the lending operations behind API Gateway proxy integration.
//
// One Handler answers every route; API Gateway is expected to map
//
//	GET  /books
//	POST /books
//	POST /books/{id}/checkout
//	POST /books/{id}/return
//
// to the same function.
package lambdafn

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/suparena/booklending/transport"
)

// API Gateway resource templates.
const (
	ResourceBooks    = "/books"
	ResourceCheckout = "/books/{id}/checkout"
	ResourceReturn   = "/books/{id}/return"
)

// Handler adapts API Gateway proxy events to a BookService.
type Handler struct {
	svc    transport.BookService
	logger *slog.Logger
}

// NewHandler creates a Handler. A nil logger discards request logs.
func NewHandler(svc transport.BookService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{svc: svc, logger: logger}
}

// Handle dispatches req on its HTTP method and resource template.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logger.InfoContext(ctx, "request",
		"method", req.HTTPMethod,
		"resource", req.Resource,
		"path", req.Path,
		"path_parameters", req.PathParameters,
		"request_id", req.RequestContext.RequestID,
	)

	id := req.PathParameters["id"]

	var resp transport.Response
	switch {
	case req.Resource == ResourceBooks && req.HTTPMethod == http.MethodGet:
		resp = transport.List(h.svc.List(ctx))
	case req.Resource == ResourceBooks && req.HTTPMethod == http.MethodPost:
		resp = h.add(ctx, req)
	case req.Resource == ResourceCheckout && req.HTTPMethod == http.MethodPost:
		resp = transport.Checkout(h.svc.Checkout(ctx, id))
	case req.Resource == ResourceReturn && req.HTTPMethod == http.MethodPost:
		resp = transport.Return(h.svc.Return(ctx, id))
	case req.Resource == ResourceBooks || req.Resource == ResourceCheckout || req.Resource == ResourceReturn:
		resp = transport.Error(http.StatusMethodNotAllowed, transport.MsgMethodNotAllowed)
	default:
		resp = transport.Error(http.StatusNotFound, transport.MsgNotFound)
	}

	if resp.Status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", "resource", req.Resource, "book_id", id, "status", resp.Status)
	}
	return render(resp), nil
}

func (h *Handler) add(ctx context.Context, req events.APIGatewayProxyRequest) transport.Response {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return transport.Error(http.StatusBadRequest, transport.MsgInvalidBody)
		}
		body = decoded
	}

	book, resp, ok := transport.DecodeBook(body)
	if !ok {
		return resp
	}
	return transport.Add(h.svc.Add(ctx, book))
}

func render(resp transport.Response) events.APIGatewayProxyResponse {
	status, data := transport.Encode(resp)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(data),
	}
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suparena/booklending/transport"
)

type handler struct {
	svc    transport.BookService
	logger *slog.Logger
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, transport.Response{Status: http.StatusOK, Body: map[string]string{"status": "ok"}})
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, transport.List(h.svc.List(r.Context())))
}

func (h *handler) add(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeResponse(w, transport.Error(http.StatusRequestEntityTooLarge, transport.MsgBodyTooLarge))
			return
		}
		h.logger.WarnContext(r.Context(), "failed to read request body", "error", err)
		writeResponse(w, transport.Error(http.StatusBadRequest, transport.MsgInvalidBody))
		return
	}

	book, resp, ok := transport.DecodeBook(body)
	if !ok {
		writeResponse(w, resp)
		return
	}
	writeResponse(w, transport.Add(h.svc.Add(r.Context(), book)))
}

func (h *handler) checkout(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, transport.Checkout(h.svc.Checkout(r.Context(), chi.URLParam(r, "id"))))
}

func (h *handler) returnBook(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, transport.Return(h.svc.Return(r.Context(), chi.URLParam(r, "id"))))
}

func writeResponse(w http.ResponseWriter, resp transport.Response) {
	status, data := transport.Encode(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

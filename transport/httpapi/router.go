/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package httpapi serves the lending operations over HTTP.
//
//	GET  /api/books
//	POST /api/books
//	POST /api/books/{id}/checkout
//	POST /api/books/{id}/return
//	GET  /healthz
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/suparena/booklending/config"
	"github.com/suparena/booklending/transport"
)

// Options configures the middleware stack of the router.
type Options struct {
	Logger             *slog.Logger
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxBodyBytes       int64
}

// OptionsFromConfig derives router options from the HTTP section of cfg.
func OptionsFromConfig(cfg config.HTTPConfig, logger *slog.Logger) Options {
	return Options{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		MaxBodyBytes:       cfg.MaxBodyBytes,
	}
}

// NewRouter wires the book routes and middleware around svc.
// A zero RateLimitRPS disables rate limiting.
func NewRouter(svc transport.BookService, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(logger))
	r.Use(Recover(logger))
	r.Use(CORS(opts.CORSAllowedOrigins))
	if opts.RateLimitRPS > 0 {
		r.Use(NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Middleware)
	}
	if opts.MaxBodyBytes > 0 {
		r.Use(middleware.RequestSize(opts.MaxBodyBytes))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, transport.Error(http.StatusNotFound, transport.MsgNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, transport.Error(http.StatusMethodNotAllowed, transport.MsgMethodNotAllowed))
	})

	r.Get("/healthz", h.health)
	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.add)
		r.Post("/{id}/checkout", h.checkout)
		r.Post("/{id}/return", h.returnBook)
	})
	return r
}

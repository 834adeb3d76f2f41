// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine and provides the middlewares
// which are shared by all resources, so other packages do not need to
// know how the access logs, panics, CORS headers, and request ids are
// handled. Resources are registered by the routes package.
package gin

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	ginlogger "github.com/FabienMht/ginslog/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/soutside/bookweb/pkg/core/log"
)

// RequestIDHeader is read from requests and echoed in responses.
const RequestIDHeader = "X-Request-ID"

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// New creates a gin engine which uses the given middlewares. Requests
// without a matching route get a 404 JSON error which names their
// (normalized) path, while OPTIONS requests on any path are accepted.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.RedirectTrailingSlash = false
	e.Use(middlewares...)
	e.OPTIONS("/*path", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
			"path":  c.Request.URL.Path,
		})
	})
	return e
}

// Logger writes one access log record per request using l. The record
// carries the request id which was attached by RequestID, so the
// logger must be installed after it.
func Logger(l *slog.Logger) HandlerFunc {
	return ginlogger.New(l,
		ginlogger.WithoutRequestID(),
		ginlogger.WithCustomFields(func(c *gin.Context) []slog.Attr {
			rid := log.RequestID(c.Request.Context())
			return []slog.Attr{slog.String(log.RequestIDKey, rid)}
		}),
	)
}

// Recovery turns panics of the next handlers into 500 JSON errors.
func Recovery() HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		msg := fmt.Sprint(rec)
		log.Error(c, "handler panicked",
			slog.String("panic", msg),
			slog.String("stack", string(debug.Stack())),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": msg,
		})
	})
}

// CORS allows any origin to call the API with the JSON content type
// and a bearer authorization header. Preflight requests are answered
// with 200. The allowance headers are sent on every response, even
// when the request has no Origin header.
func CORS() HandlerFunc {
	methods := []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodDelete, http.MethodOptions,
	}
	headers := []string{"Content-Type", "Authorization"}
	preflight := cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              methods,
		AllowHeaders:              headers,
		OptionsResponseStatusCode: http.StatusOK,
	})
	allowMethods := strings.Join(methods, ", ")
	allowHeaders := strings.Join(headers, ", ")
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		preflight(c)
	}
}

// RequestID attaches a request identifier to the request context, so
// all logs of that request carry it. The client provided identifier
// is kept, otherwise a random UUID is generated.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(
			log.WithRequestID(c.Request.Context(), rid),
		)
		c.Next()
	}
}

// Handler wraps e so request paths are normalized (see NormalizePath)
// before being routed.
func Handler(e *Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := NormalizePath(r.URL.Path); p != r.URL.Path {
			u := *r.URL
			u.Path, u.RawPath = p, ""
			r = r.WithContext(r.Context())
			r.URL = &u
		}
		e.ServeHTTP(w, r)
	})
}

// NormalizePath removes the trailing slashes of p and then its
// leading /api segment. So /api/drivers/ and /drivers are the same
// path, while /apis is kept. The root path is returned as "/".
func NormalizePath(p string) string {
	p = strings.TrimRight(p, "/")
	if rest, ok := strings.CutPrefix(p, "/api"); ok {
		if rest == "" || rest[0] == '/' {
			p = rest
		}
	}
	if p == "" {
		return "/"
	}
	return p
}

// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package log wraps log/slog with functions which take a context and
// statically typed slog.Attr arguments (through slog.LogAttrs) instead
// of interleaved key and value "any" arguments.
//
// Attributes may be attached to a context with WithAttrs, so every
// record which is logged with that context (or its children) carries
// them. The restful adapter attaches the request_id attribute this way
// and use cases log it without knowing about requests.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"time"
)

// RequestIDKey is the attribute key of request identifiers.
const RequestIDKey = "request_id"

type attrsKey struct{}

// WithAttrs returns a child of ctx which carries attrs in addition to
// the attributes which ctx already carries.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	prev := contextAttrs(ctx)
	all := append(slices.Clip(prev), attrs...)
	return context.WithValue(ctx, attrsKey{}, all)
}

// WithRequestID attaches the rid request identifier to ctx. An empty
// rid is ignored and ctx is returned unchanged.
func WithRequestID(ctx context.Context, rid string) context.Context {
	if rid == "" {
		return ctx
	}
	return WithAttrs(ctx, slog.String(RequestIDKey, rid))
}

// RequestID returns the latest request identifier which was attached
// to ctx, or an empty string.
func RequestID(ctx context.Context) string {
	aa := contextAttrs(ctx)
	for i := len(aa) - 1; i >= 0; i-- {
		if aa[i].Key == RequestIDKey {
			return aa[i].Value.String()
		}
	}
	return ""
}

func contextAttrs(ctx context.Context) []slog.Attr {
	aa, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return aa
}

// Debug logs msg and attrs with the given context at the debug level.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelDebug, msg, attrs)
}

// Info logs msg and attrs with the given context at the info level.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelInfo, msg, attrs)
}

// Warn logs msg and attrs with the given context at the warning level.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelWarn, msg, attrs)
}

// Error logs msg and attrs with the given context at the error level.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelError, msg, attrs)
}

// logAttrs must only be called by the exported functions above, since
// it skips exactly one frame of this package when it records the
// source position.
func logAttrs(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	l := slog.Default()
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // runtime.Callers, logAttrs, Info/...
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.AddAttrs(contextAttrs(ctx)...)
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}

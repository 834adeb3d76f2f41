// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/soutside/bookweb/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool represents a database connection pool.
// It may be used concurrently from different goroutines.
type Pool struct {
	*gorm.DB
}

// LogConfig specifies how GORM reports the executed statements.
// Statements which take longer than SlowThreshold are reported as
// warnings, while Level decides which other messages are reported.
type LogConfig struct {
	SlowThreshold time.Duration
	Level         logger.LogLevel
}

// DefaultLogConfig reports errors and statements slower than 200ms.
var DefaultLogConfig = LogConfig{
	SlowThreshold: 200 * time.Millisecond,
	Level:         logger.Warn,
}

// ParseLogLevel converts a configuration string, namely silent, error,
// warn, or info, to a GORM logger level.
func ParseLogLevel(s string) (logger.LogLevel, error) {
	switch s {
	case "silent":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "warn":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	default:
		return 0, fmt.Errorf("unknown db log level: %q", s)
	}
}

// NewPool connects to the url database and returns its connections
// pool. One connection is acquired and released before returning in
// order to make sure that the database is reachable.
func NewPool(ctx context.Context, url string, lc LogConfig) (*Pool, error) {
	return open(ctx, postgres.Open(url), lc)
}

// NewPoolFromDB wraps an already opened *sql.DB, such as a sqlmock
// database in unit tests, as a Pool.
func NewPoolFromDB(
	ctx context.Context, db *sql.DB, lc LogConfig,
) (*Pool, error) {
	return open(ctx, postgres.New(postgres.Config{Conn: db}), lc)
}

func open(
	ctx context.Context, dialector gorm.Dialector, lc LogConfig,
) (*Pool, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(slogWriter{}, logger.Config{
			SlowThreshold:             lc.SlowThreshold,
			LogLevel:                  lc.Level,
			IgnoreRecordNotFoundError: true,
			// Set to false in order to log with replaced vars
			ParameterizedQueries: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

// slogWriter passes the GORM logger messages to the default slog
// logger, so they share the configured handler and format.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	slog.Info(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}

// ConnHandler is a handler function which takes a context and a
// database connection which should be used solely from the current
// goroutine (or by proper synchronization).
type ConnHandler = repo.ConnHandler

// NoOpConnHandler is a connection handler which does nothing.
// It may be passed to Pool.Conn in order to check the connectivity.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a database connection, passes it into the f handler
// function, and releases it when f returns. Errors of f are returned
// as they are, so they may be checked by errors.Is or errors.As.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Close closes all connections of the pool.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

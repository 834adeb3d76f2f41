// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer starts a disposable postgres:16 container for the
// integration suites and connects a *postgres.Pool to it.
//
// A docker compatible daemon must be reachable. For podman, start the
// podman.service and export
// DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock beforehand.
// Suites are skipped when tests run with the -short flag.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/soutside/bookweb/pkg/adapter/db/postgres"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// DBMSVersion is the postgres image tag which is started.
const DBMSVersion = "16"

// sqlStateStartingUp is reported while the server is still booting.
const sqlStateStartingUp = "57P03"

// Container is a running database server and a pool connected to it.
type Container struct {
	URL  string
	Pool *postgres.Pool
}

// New starts the container and waits up to timeout until it accepts
// connections. The pool and the container are released by t.Cleanup,
// in that order. Failures stop t.
func New(ctx context.Context, t *testing.T, timeout time.Duration) *Container {
	t.Helper()
	if testing.Short() {
		t.Skip("database container is not started in short mode")
	}
	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(startCtx, DBMSVersion)
	require.NoError(t, err, "starting the database container")
	t.Cleanup(func() {
		if err := pg.Shutdown(ctx); err != nil {
			t.Errorf("shutting down the database container: %v", err)
		}
	})
	c := &Container{URL: pg.ConnectionString()}
	c.Pool, err = connect(startCtx, c.URL)
	require.NoError(t, err, "connecting to the database container")
	t.Cleanup(func() {
		if err := c.Pool.Close(); err != nil {
			t.Errorf("closing the pool: %v", err)
		}
	})
	return c
}

func connect(ctx context.Context, url string) (*postgres.Pool, error) {
	lc := postgres.LogConfig{SlowThreshold: time.Second, Level: logger.Silent}
	for {
		p, err := postgres.NewPool(ctx, url, lc)
		if err == nil || ctx.Err() != nil || !transient(err) {
			return p, err
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func transient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == sqlStateStartingUp
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

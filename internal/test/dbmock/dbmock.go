// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbmock is an internal helper for the test packages.
// It creates a *postgres.Pool over a go-sqlmock database, so the
// repositories and resources can be tested at the SQL level without
// a PostgreSQL server. Expected statements are matched exactly (after
// collapsing white spaces).
package dbmock

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/soutside/bookweb/pkg/adapter/db/postgres"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// New returns a pool and its mock controller. The expectations are
// checked and the pool is closed when t finishes.
func New(t *testing.T) (*postgres.Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
	)
	require.NoError(t, err, "sqlmock init")
	pool, err := postgres.NewPoolFromDB(
		context.Background(), db,
		postgres.LogConfig{Level: logger.Silent},
	)
	require.NoError(t, err, "wrapping sqlmock db")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet(), "unmet expectations")
		_ = pool.Close()
	})
	return pool, mock
}

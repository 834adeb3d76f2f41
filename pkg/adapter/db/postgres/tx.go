// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/soutside/bookweb/pkg/core/repo"
	"gorm.io/gorm"
)

// Tx represents an ongoing database transaction, as passed to the
// Conn.Tx handlers. It is unsafe to be used concurrently.
// By default, a READ-COMMITTED transaction is expected from the
// PostgreSQL server.
type Tx struct {
	*gorm.DB
}

// Exec runs the sql statement with args and returns the number of
// affected rows. When args are given, sql must contain exactly one
// statement and its parameters should be numbered like $1, $2, etc.
// In absence of args, sql may contain many semi-colon separated
// statements, as used for the DDL scripts.
//
// The sql text must not contain the ? and @ characters when args are
// given, because GORM treats them as placeholders too.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return execute(tx.DB.WithContext(ctx), sql, args)
}

// Query runs the sql statement with args and returns its result set.
// The placeholders follow the Exec rules. Query or Exec may not be
// called again until the returned Rows is closed.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return query(tx.DB.WithContext(ctx), sql, args)
}

// IsTx method prevents a non-Tx object (such as a Conn) to
// mistakenly implement the Tx interface.
func (tx *Tx) IsTx() {
}

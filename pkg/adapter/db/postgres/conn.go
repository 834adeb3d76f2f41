// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/soutside/bookweb/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn represents one acquired database connection.
// It is unsafe to be used concurrently. Each statement which runs on
// a Conn is committed on its own, unless Tx is used to group them.
type Conn struct {
	*gorm.DB
}

// TxHandler is a handler function which takes a context and an
// ongoing transaction.
type TxHandler = repo.TxHandler

// Tx runs f in a transaction of c, using the GORM Transaction method.
// The transaction is committed if f returns nil and is rolled back
// otherwise. A panic of f is rolled back too and is reported as a
// PanicError.
func (c *Conn) Tx(ctx context.Context, f TxHandler) error {
	err := c.DB.WithContext(ctx).Transaction(func(db *gorm.DB) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r}
			}
		}()
		return f(ctx, &Tx{DB: db})
	})
	if err != nil {
		return fmt.Errorf("tx: %w", err)
	}
	return nil
}

// PanicError reports a recovered panic of a transaction handler.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// Exec runs the sql statement with args and returns the number of
// affected rows. See Tx.Exec for the placeholders syntax.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return execute(c.DB.WithContext(ctx), sql, args)
}

// Query runs the sql statement with args and returns its result set.
// See Tx.Query for the placeholders syntax.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return query(c.DB.WithContext(ctx), sql, args)
}

// IsConn method prevents a non-Conn object (such as a Tx) to
// mistakenly implement the Conn interface.
func (c *Conn) IsConn() {
}

func execute(db *gorm.DB, sql string, args []any) (int64, error) {
	tt := db.Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

func query(db *gorm.DB, sql string, args []any) (repo.Rows, error) {
	rr, err := db.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return newRows(rr)
}

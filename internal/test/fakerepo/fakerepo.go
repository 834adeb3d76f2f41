// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakerepo is an internal helper for the use cases tests.
// It provides an in-memory repo.Pool and repo.Records pair which keep
// rows per table and mimic the SQL semantics of the records repository
// (visible filtering, limits, defaults, and COALESCE updates), so use
// cases can be tested without a database server.
package fakerepo

import (
	"context"
	"errors"
	"sync"

	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
)

// ErrNoQueryer is returned by the Queryer methods of the fake
// connections since the fake records repository never uses them.
var ErrNoQueryer = errors.New("fake connections run no SQL")

// Pool is a fake connection pool. Its Conn method counts acquisitions.
type Pool struct {
	mu    sync.Mutex
	Conns int
}

// Conn passes a fake connection to handler.
func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	p.mu.Lock()
	p.Conns++
	p.mu.Unlock()
	return handler(ctx, conn{})
}

type conn struct{}

func (conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrNoQueryer
}

func (conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrNoQueryer
}

func (conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	return handler(ctx, tx{})
}

func (conn) IsConn() {}

type tx struct{}

func (tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrNoQueryer
}

func (tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrNoQueryer
}

func (tx) IsTx() {}

// Records is an in-memory records repository.
// Err may be set in order to make all operations fail.
type Records struct {
	mu     sync.Mutex
	tables map[string][]model.Record
	nextID int64

	Err error
}

// New returns an empty in-memory records repository.
func New() *Records {
	return &Records{tables: make(map[string][]model.Record)}
}

// Conn returns r itself as the connection queryer.
func (r *Records) Conn(repo.Conn) repo.RecordsConnQueryer {
	return r
}

// Tx returns r itself as the transaction queryer.
func (r *Records) Tx(repo.Tx) repo.RecordsTxQueryer {
	return r
}

// Rows returns a copy of all rows of the table, in insertion order.
func (r *Records) Rows(table string) []model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	rr := make([]model.Record, 0, len(r.tables[table]))
	for _, row := range r.tables[table] {
		rr = append(rr, clone(row))
	}
	return rr
}

// List returns the visible rows, newest first, which approximates
// the ORDER BY terms of the descriptors.
func (r *Records) List(
	_ context.Context, s *model.Schema, q model.ListQuery,
) ([]model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	rows := r.tables[s.Table]
	rr := make([]model.Record, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		if s.Visible != "" && rows[i][s.Visible] != true {
			continue
		}
		if q.Limit > 0 && len(rr) == q.Limit {
			break
		}
		rr = append(rr, clone(rows[i]))
	}
	return rr, nil
}

// Insert stores all fields of s, applying their defaults.
func (r *Records) Insert(
	_ context.Context, s *model.Schema, rec model.Record,
) (model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.nextID++
	row := model.Record{"id": r.nextID}
	for _, f := range s.Fields {
		v := rec[f.Name]
		if v == nil {
			v = f.Default
		}
		row[f.Name] = v
	}
	r.tables[s.Table] = append(r.tables[s.Table], row)
	return clone(row), nil
}

// Update applies the non-nil mutable values of rec to the id row.
func (r *Records) Update(
	_ context.Context, s *model.Schema, id model.ID, rec model.Record,
) (model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, row := range r.tables[s.Table] {
		if row["id"] != int64(id) {
			continue
		}
		for _, f := range s.MutableFields() {
			if v := rec[f.Name]; v != nil {
				row[f.Name] = v
			}
		}
		return clone(row), nil
	}
	return model.Record{}, nil
}

// Delete removes the id row if it exists.
func (r *Records) Delete(
	_ context.Context, s *model.Schema, id model.ID,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	rows := r.tables[s.Table]
	for i, row := range rows {
		if row["id"] == int64(id) {
			r.tables[s.Table] = append(rows[:i:i], rows[i+1:]...)
			break
		}
	}
	return nil
}

// Counts reports the number of rows of each table.
func (r *Records) Counts(
	_ context.Context, tables []string,
) ([]model.TableCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	tc := make([]model.TableCount, len(tables))
	for i, t := range tables {
		tc[i] = model.TableCount{Table: t, Count: int64(len(r.tables[t]))}
	}
	return tc, nil
}

func clone(r model.Record) model.Record {
	c := make(model.Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

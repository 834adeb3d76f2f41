// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package recordsrp is the PostgreSQL records repository. It realizes
// the repo.Records interface by deriving its SQL statements from the
// model.Schema descriptors, so one implementation serves all tables of
// both catalog variants.
package recordsrp

import (
	"context"

	"github.com/soutside/bookweb/pkg/adapter/db/postgres"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
)

// Repo represents the records repository instance.
type Repo struct {
}

// New creates a records repository.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn takes a Conn interface instance, unwraps it as required,
// and returns a RecordsConnQueryer interface which (with access to
// the implementation-dependent connection object) can run the
// records queries.
func (rp *Repo) Conn(c repo.Conn) repo.RecordsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) List(
	ctx context.Context, s *model.Schema, q model.ListQuery,
) ([]model.Record, error) {
	return List(ctx, cq.Conn, s, q)
}

func (cq connQueryer) Insert(
	ctx context.Context, s *model.Schema, r model.Record,
) (model.Record, error) {
	return Insert(ctx, cq.Conn, s, r)
}

func (cq connQueryer) Update(
	ctx context.Context, s *model.Schema, id model.ID, r model.Record,
) (model.Record, error) {
	return Update(ctx, cq.Conn, s, id, r)
}

func (cq connQueryer) Delete(
	ctx context.Context, s *model.Schema, id model.ID,
) error {
	return Delete(ctx, cq.Conn, s, id)
}

func (cq connQueryer) Counts(
	ctx context.Context, tables []string,
) ([]model.TableCount, error) {
	return Counts(ctx, cq.Conn, tables)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx takes a Tx interface instance, unwraps it as required,
// and returns a RecordsTxQueryer interface which runs the records
// queries in that transaction.
func (rp *Repo) Tx(tx repo.Tx) repo.RecordsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) List(
	ctx context.Context, s *model.Schema, q model.ListQuery,
) ([]model.Record, error) {
	return List(ctx, tq.Tx, s, q)
}

func (tq txQueryer) Insert(
	ctx context.Context, s *model.Schema, r model.Record,
) (model.Record, error) {
	return Insert(ctx, tq.Tx, s, r)
}

func (tq txQueryer) Update(
	ctx context.Context, s *model.Schema, id model.ID, r model.Record,
) (model.Record, error) {
	return Update(ctx, tq.Tx, s, id, r)
}

func (tq txQueryer) Delete(
	ctx context.Context, s *model.Schema, id model.ID,
) error {
	return Delete(ctx, tq.Tx, s, id)
}

func (tq txQueryer) Counts(
	ctx context.Context, tables []string,
) ([]model.TableCount, error) {
	return Counts(ctx, tq.Tx, tables)
}

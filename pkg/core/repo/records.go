// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/soutside/bookweb/pkg/core/model"
)

// RecordsConnQueryer lists the records operations which may run on
// an open connection, each statement being auto-committed.
type RecordsConnQueryer interface {
	RecordsQueryer
}

// RecordsTxQueryer lists the records operations which may run in an
// ongoing transaction.
type RecordsTxQueryer interface {
	RecordsQueryer
}

// RecordsQueryer runs single-statement queries over the table which
// is described by a model.Schema. Table and column names are taken
// from the schema, while all values are bound as query parameters.
type RecordsQueryer interface {
	// List returns the visible rows of s (all rows if s.Visible is
	// empty) in the s.OrderBy order. A positive q.Limit caps the
	// number of returned rows.
	List(
		ctx context.Context, s *model.Schema, q model.ListQuery,
	) ([]model.Record, error)

	// Insert creates one row with all s.Fields columns. Absent or nil
	// values are replaced by their field Default (which may be nil).
	// The created row is returned, including its generated columns.
	Insert(
		ctx context.Context, s *model.Schema, r model.Record,
	) (model.Record, error)

	// Update changes the mutable columns of the id row, keeping the
	// current value of columns which are absent or nil in r. The
	// s.Touch column (if any) is set to the current time.
	// The updated row is returned, or an empty non-nil record if no
	// row had the given id.
	Update(
		ctx context.Context, s *model.Schema, id model.ID, r model.Record,
	) (model.Record, error)

	// Delete removes the id row. Deleting a missing row is not an
	// error.
	Delete(ctx context.Context, s *model.Schema, id model.ID) error

	// Counts reports the number of rows of each table, in order.
	Counts(ctx context.Context, tables []string) ([]model.TableCount, error)
}

// Records is the records repository. It unwraps the connections and
// transactions which are acquired by use cases.
type Records interface {
	Conn(Conn) RecordsConnQueryer
	Tx(Tx) RecordsTxQueryer
}

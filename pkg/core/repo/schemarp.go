// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/soutside/bookweb/pkg/core/model"
)

// SchemaInitializer interface is exposed by the schema repository for
// each catalog variant. It provides two methods of InitDevSchema and
// InitProdSchema in order to create the variant tables and optionally
// fill them with sample rows.
// Each implementation should contain the relevant information for
// finding the destination database (such as a database transaction)
// so the SchemaInitializer does not need to take any argument.
type SchemaInitializer interface {
	// InitDevSchema creates the missing tables of the variant and
	// fills them with the development suitable sample rows.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema creates the missing tables of the variant
	// without inserting any rows.
	InitProdSchema(ctx context.Context) error
}

// Schema interface presents expectations from a repository which
// manages the database tables of a catalog variant.
type Schema interface {
	// Tx takes a Tx interface instance, unwraps it as required,
	// and returns a SchemaInitializer for the v variant which runs
	// its statements in that transaction. Unknown variants cause an
	// error.
	Tx(tx Tx, v model.Variant) (SchemaInitializer, error)
}

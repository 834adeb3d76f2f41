// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create the catalog tables of each variant and
// fill them with sample rows. The DDL and seed scripts are embedded
// in the binary, so the db commands need no other files.
package schemarp

import (
	"context"
	"fmt"

	"github.com/soutside/bookweb/pkg/adapter/db/postgres"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
)

// Repo represents a schema management repository.
type Repo struct {
}

// New instantiates a schema management Repo struct.
func New() *Repo {
	return &Repo{}
}

type initializer struct {
	*postgres.Tx
	scripts scripts
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer, and returns a
// repo.SchemaInitializer which runs the v variant scripts in it.
func (schema *Repo) Tx(tx repo.Tx, v model.Variant) (
	repo.SchemaInitializer, error,
) {
	s, ok := variantScripts[v]
	if !ok {
		return nil, fmt.Errorf("variant %d: %w", int(v), model.ErrUnknownVariant)
	}
	tt := tx.(*postgres.Tx)
	return initializer{Tx: tt, scripts: s}, nil
}

// InitDevSchema creates the missing tables and inserts the sample
// rows into the empty ones.
func (si initializer) InitDevSchema(ctx context.Context) error {
	if err := run(ctx, si.Tx, "schema", si.scripts.schema); err != nil {
		return err
	}
	return run(ctx, si.Tx, "seed", si.scripts.seed)
}

// InitProdSchema creates the missing tables only.
func (si initializer) InitProdSchema(ctx context.Context) error {
	return run(ctx, si.Tx, "schema", si.scripts.schema)
}

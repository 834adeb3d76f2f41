// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemauc contains the database initialization UseCase. It
// may be used to create the catalog tables, with the development
// suitable sample rows or without any rows, as asked by the InitDev
// and InitProd methods.
// Existing tables are kept as they are, so it is no migration tool.
package schemauc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soutside/bookweb/pkg/core/log"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
)

// UseCase represents the database initialization use case.
type UseCase struct {
	pool       repo.Pool
	schemaRepo repo.Schema
	variant    model.Variant
}

// New creates a database initialization use case for the v variant.
func New(p repo.Pool, s repo.Schema, v model.Variant) *UseCase {
	return &UseCase{pool: p, schemaRepo: s, variant: v}
}

// InitDev creates the missing tables and fills them with the
// development suitable sample rows, in one transaction.
func (uc *UseCase) InitDev(ctx context.Context) error {
	return uc.initDB(
		ctx, "dev",
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitDevSchema(ctx)
		},
	)
}

// InitProd creates the missing tables without any rows.
func (uc *UseCase) InitProd(ctx context.Context) error {
	return uc.initDB(
		ctx, "prod",
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitProdSchema(ctx)
		},
	)
}

func (uc *UseCase) initDB(
	ctx context.Context,
	mode string,
	dbi func(ctx context.Context, si repo.SchemaInitializer) error,
) error {
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := uc.schemaRepo.Tx(tx, uc.variant)
			if err != nil {
				return fmt.Errorf("creating SchemaInitializer: %w", err)
			}
			if err := dbi(ctx, si); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("%s initialization: %w", mode, err)
	}
	log.Info(ctx, "database initialized",
		slog.String("variant", uc.variant.String()),
		slog.String("mode", mode),
	)
	return nil
}

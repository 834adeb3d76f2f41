// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package statusuc contains the status UseCase which reports the
// service liveness and the row counts of the catalog tables.
package statusuc

import (
	"context"
	"fmt"

	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
)

// UseCase represents the status use case.
type UseCase struct {
	pool      repo.Pool
	recordsrp repo.Records
	catalog   *model.Catalog
}

// New instantiates a status use case for the c catalog.
func New(p repo.Pool, r repo.Records, c *model.Catalog) *UseCase {
	return &UseCase{pool: p, recordsrp: r, catalog: c}
}

// Health reports that the service is up. The database is not queried.
func (uc *UseCase) Health(context.Context) model.Health {
	return model.Health{OK: true, Service: uc.catalog.Service}
}

// Counts returns the number of rows of each catalog table.
func (uc *UseCase) Counts(ctx context.Context) (tc []model.TableCount, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		tc, err = uc.recordsrp.Conn(c).Counts(ctx, uc.catalog.Tables())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}
	return tc, nil
}

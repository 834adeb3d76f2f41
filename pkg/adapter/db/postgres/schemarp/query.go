// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/soutside/bookweb/pkg/adapter/db/postgres"
	"github.com/soutside/bookweb/pkg/core/model"
)

var (
	//go:embed sql/supercar_schema.sql
	supercarSchema string
	//go:embed sql/supercar_seed.sql
	supercarSeed string
	//go:embed sql/tours_schema.sql
	toursSchema string
	//go:embed sql/tours_seed.sql
	toursSeed string
)

type scripts struct {
	schema string
	seed   string
}

var variantScripts = map[model.Variant]scripts{
	model.VariantSupercar: {schema: supercarSchema, seed: supercarSeed},
	model.VariantTours:    {schema: toursSchema, seed: toursSeed},
}

// run executes a multi-statement script. No arguments are passed, so
// the script is sent using the simple query protocol as is.
func run[Q postgres.Queryer](
	ctx context.Context, q Q, name, script string,
) error {
	if _, err := q.Exec(ctx, script); err != nil {
		return fmt.Errorf("running %s script: %w", name, err)
	}
	return nil
}

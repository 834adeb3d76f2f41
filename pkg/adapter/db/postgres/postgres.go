// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres is the PostgreSQL adapter of the repo interfaces.
// It provides a connections Pool, and its Conn and Tx types, using the
// GORM framework (over the pgx driver). Repository packages, such as
// recordsrp and schemarp, unwrap the repo.Conn and repo.Tx instances
// which are passed by use cases into *Conn and *Tx in order to run
// their statements.
package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/soutside/bookweb/pkg/core/repo"
)

// Queryer constrains the generic statement functions of repository
// packages to *Conn and *Tx.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
}

// Ident quotes a (possibly schema qualified) identifier, so it can be
// embedded in a SQL statement. Table and column names of descriptors
// are fixed by the model layer, but are quoted anyway in order to
// survive reserved words and mixed-case names.
// For example, Ident("public", "tours") returns "public"."tours".
func Ident(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

// Idents quotes each one of names and joins them with commas.
func Idents(names ...string) string {
	qq := make([]string, len(names))
	for i, n := range names {
		qq[i] = Ident(n)
	}
	return strings.Join(qq, ", ")
}

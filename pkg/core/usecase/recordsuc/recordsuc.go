// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package recordsuc contains the generic records UseCase which lists,
// creates, updates, and deletes rows of one entity table, as described
// by its model.Schema. Staff and offerings resources are served by this
// use case directly, while bookings and reviews use cases embed it and
// add their own rules.
package recordsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soutside/bookweb/pkg/core/cerr"
	"github.com/soutside/bookweb/pkg/core/log"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
)

// Validator checks one value against a tag string, such as the Rules
// of a model.Field. It is realized by the validation adapter.
type Validator interface {
	Var(field any, tag string) error
}

// UseCase represents a records use case. It holds a database
// connection pool, the records repository instance (to be guided with
// the DB pool), and the descriptor of its entity table.
type UseCase struct {
	pool      repo.Pool
	recordsrp repo.Records
	schema    *model.Schema

	validator Validator // nil disables the creation checks
}

// New instantiates a records use case for the s entity descriptor.
// Required parameters are passed individually, while optional
// parameters are passed as a series of functional options.
func New(
	p repo.Pool, r repo.Records, s *model.Schema, opts ...Option,
) (*UseCase, error) {
	if s == nil {
		return nil, fmt.Errorf("nil schema")
	}
	uc := &UseCase{pool: p, recordsrp: r, schema: s}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return uc, nil
}

// Schema returns the entity descriptor of this use case.
func (uc *UseCase) Schema() *model.Schema {
	return uc.schema
}

// List returns the publicly visible rows. The rawLimit is the client
// provided `?limit=` value (possibly empty) which is clamped based on
// the schema Limits.
func (uc *UseCase) List(
	ctx context.Context, rawLimit string,
) (rr []model.Record, err error) {
	q := uc.schema.ListQuery(rawLimit)
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rr, err = uc.recordsrp.Conn(c).List(ctx, uc.schema, q)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", uc.schema.Table, err)
	}
	return rr, nil
}

// Create checks the raw request record and inserts it as a new row.
// If a Validator was configured, Required fields must not be missing
// and present values must satisfy their field Rules.
// The created row is returned.
func (uc *UseCase) Create(
	ctx context.Context, raw model.Record,
) (model.Record, error) {
	r, err := uc.Prepare(raw, false)
	if err != nil {
		return nil, err
	}
	return uc.Insert(ctx, r)
}

// Insert stores an already prepared record as a new row.
func (uc *UseCase) Insert(
	ctx context.Context, r model.Record,
) (created model.Record, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		created, err = uc.recordsrp.Conn(c).Insert(ctx, uc.schema, r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inserting into %s: %w", uc.schema.Table, err)
	}
	log.Info(ctx, "row created", log.Table(uc.schema.Table), idAttr(created))
	return created, nil
}

// Update checks the raw request record, which may only contain the
// mutable fields, and applies it to the id row. Absent and null values
// keep their columns intact. The updated row is returned, or an empty
// record if there was no such row.
func (uc *UseCase) Update(
	ctx context.Context, id model.ID, raw model.Record,
) (model.Record, error) {
	r, err := uc.Prepare(raw, true)
	if err != nil {
		return nil, err
	}
	return uc.Apply(ctx, id, r)
}

// Apply changes the id row using an already prepared record.
func (uc *UseCase) Apply(
	ctx context.Context, id model.ID, r model.Record,
) (updated model.Record, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		updated, err = uc.recordsrp.Conn(c).Update(ctx, uc.schema, id, r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf(
			"updating %s row %d: %w", uc.schema.Table, id, err,
		)
	}
	if len(updated) == 0 {
		log.Debug(ctx, "no row to update", log.Table(uc.schema.Table),
			slog.Int64("id", int64(id)))
	}
	return updated, nil
}

// Delete removes the id row. Missing rows are ignored.
func (uc *UseCase) Delete(ctx context.Context, id model.ID) error {
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.recordsrp.Conn(c).Delete(ctx, uc.schema, id)
	})
	if err != nil {
		return fmt.Errorf(
			"deleting %s row %d: %w", uc.schema.Table, id, err,
		)
	}
	log.Info(ctx, "row deleted", log.Table(uc.schema.Table),
		slog.Int64("id", int64(id)))
	return nil
}

// Prepare coerces the raw record based on the schema and, for new
// rows, runs the configured checks. Problems are reported as one
// *cerr.ValidationError listing all offending field names in the
// schema fields order, followed by the unknown keys.
func (uc *UseCase) Prepare(raw model.Record, update bool) (model.Record, error) {
	r, bad := uc.schema.Coerce(raw, update)
	verr := &cerr.ValidationError{Fields: bad}
	if !update {
		uc.check(r, verr)
	}
	verr.Fields = uc.schema.SortFields(verr.Fields)
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *UseCase) check(r model.Record, verr *cerr.ValidationError) {
	if uc.validator == nil {
		return
	}
	for _, f := range uc.schema.Fields {
		switch {
		case f.Required && r.Missing(f):
			verr.Add(f.Name)
		case f.Rules == "" || r[f.Name] == nil:
		case uc.validator.Var(r[f.Name], f.Rules) != nil:
			verr.Add(f.Name)
		}
	}
}

func idAttr(r model.Record) slog.Attr {
	return slog.Any("id", r["id"])
}

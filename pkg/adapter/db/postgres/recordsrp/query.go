// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package recordsrp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/soutside/bookweb/pkg/adapter/db/postgres"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
)

const dateLayout = "2006-01-02"

// List returns the visible rows of s in the s.OrderBy order.
// A positive q.Limit is bound as the LIMIT parameter.
func List[Q postgres.Queryer](
	ctx context.Context, q Q, s *model.Schema, lq model.ListQuery,
) ([]model.Record, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT * FROM %s", postgres.Ident(s.Table))
	if s.Visible != "" {
		fmt.Fprintf(&b, " WHERE %s = true", postgres.Ident(s.Visible))
	}
	if len(s.OrderBy) > 0 {
		fmt.Fprintf(&b, " ORDER BY %s", orderBy(s.OrderBy))
	}
	var args []any
	if lq.Limit > 0 {
		b.WriteString(" LIMIT $1")
		args = append(args, lq.Limit)
	}
	rows, err := q.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return collect(rows, s)
}

// Insert stores one row with every s.Fields column and returns it.
// Absent or nil values are replaced by the field Default.
func Insert[Q postgres.Queryer](
	ctx context.Context, q Q, s *model.Schema, r model.Record,
) (model.Record, error) {
	cols := make([]string, len(s.Fields))
	params := make([]string, len(s.Fields))
	args := make([]any, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = f.Name
		params[i] = fmt.Sprintf("$%d", i+1)
		v := r[f.Name]
		if v == nil {
			v = f.Default
		}
		args[i] = v
	}
	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		postgres.Ident(s.Table), postgres.Idents(cols...),
		strings.Join(params, ", "),
	)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	rr, err := collect(rows, s)
	if err != nil {
		return nil, err
	}
	if len(rr) != 1 {
		return nil, fmt.Errorf("insert returned %d rows", len(rr))
	}
	return rr[0], nil
}

// Update changes the mutable columns of the id row. Each column keeps
// its current value if r has no (or a nil) value for it. The s.Touch
// column is set to now(). The updated row is returned, or an empty
// record if there is no such row.
func Update[Q postgres.Queryer](
	ctx context.Context, q Q, s *model.Schema, id model.ID, r model.Record,
) (model.Record, error) {
	mf := s.MutableFields()
	sets := make([]string, 0, len(mf)+1)
	args := make([]any, 0, len(mf)+1)
	for _, f := range mf {
		args = append(args, r[f.Name])
		col := postgres.Ident(f.Name)
		sets = append(sets, fmt.Sprintf(
			"%s = COALESCE($%d, %s)", col, len(args), col,
		))
	}
	if s.Touch != "" {
		sets = append(sets, postgres.Ident(s.Touch)+" = now()")
	}
	args = append(args, int64(id))
	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING *",
		postgres.Ident(s.Table), strings.Join(sets, ", "), len(args),
	)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	rr, err := collect(rows, s)
	if err != nil {
		return nil, err
	}
	if len(rr) == 0 {
		return model.Record{}, nil
	}
	return rr[0], nil
}

// Delete removes the id row. A missing row is not reported.
func Delete[Q postgres.Queryer](
	ctx context.Context, q Q, s *model.Schema, id model.ID,
) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE id = $1", postgres.Ident(s.Table))
	if _, err := q.Exec(ctx, sql, int64(id)); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Counts reports the number of rows of each one of tables, in order,
// using one UNION ALL statement.
func Counts[Q postgres.Queryer](
	ctx context.Context, q Q, tables []string,
) ([]model.TableCount, error) {
	if len(tables) == 0 {
		return nil, nil
	}
	parts := make([]string, len(tables))
	args := make([]any, len(tables))
	for i, t := range tables {
		parts[i] = fmt.Sprintf(
			`SELECT $%d::text AS "table", COUNT(*)::int AS "count" FROM %s`,
			i+1, postgres.Ident(t),
		)
		args[i] = t
	}
	rows, err := q.Query(ctx, strings.Join(parts, " UNION ALL "), args...)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	defer rows.Close()
	tc := make([]model.TableCount, 0, len(tables))
	for rows.Next() {
		m, err := rows.Map()
		if err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		table, _ := m["table"].(string)
		n, ok := m["count"].(int64)
		if !ok {
			return nil, fmt.Errorf("count of %q: unexpected %T", table, m["count"])
		}
		tc = append(tc, model.TableCount{Table: table, Count: n})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}
	return tc, nil
}

// orderBy quotes the column of each "column [ASC|DESC]" term.
func orderBy(terms []string) string {
	qq := make([]string, len(terms))
	for i, t := range terms {
		col, dir, _ := strings.Cut(t, " ")
		qq[i] = strings.TrimSpace(postgres.Ident(col) + " " + dir)
	}
	return strings.Join(qq, ", ")
}

// collect converts all rows into records and closes rows.
func collect(rows repo.Rows, s *model.Schema) ([]model.Record, error) {
	defer rows.Close()
	rr := make([]model.Record, 0)
	for rows.Next() {
		m, err := rows.Map()
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r := model.Record(m)
		for c, v := range r {
			r[c] = value(s, c, v)
		}
		rr = append(rr, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return rr, nil
}

// value formats date columns without their (zero) time part.
func value(s *model.Schema, col string, v any) any {
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	if f, ok := s.Field(col); ok && f.Kind == model.KindDate {
		return t.Format(dateLayout)
	}
	return t
}

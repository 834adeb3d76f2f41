// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"database/sql"
	"fmt"
)

type rows struct {
	*sql.Rows
	cols []string
}

func newRows(rr *sql.Rows) (*rows, error) {
	cols, err := rr.Columns()
	if err != nil {
		_ = rr.Close()
		return nil, fmt.Errorf("column-names: %w", err)
	}
	return &rows{Rows: rr, cols: cols}, nil
}

// Close releases the connection. Its error is reported by Err.
func (r *rows) Close() {
	_ = r.Rows.Close()
}

// Map scans the current row keyed by column names. Text values which
// the driver reports as bytes are converted to strings.
func (r *rows) Map() (map[string]any, error) {
	vals := make([]any, len(r.cols))
	ptrs := make([]any, len(r.cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := r.Scan(ptrs...); err != nil {
		return nil, err
	}
	m := make(map[string]any, len(r.cols))
	for i, c := range r.cols {
		if b, ok := vals[i].([]byte); ok {
			vals[i] = string(b)
		}
		m[c] = vals[i]
	}
	return m, nil
}

// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer runs SQL statements with $n numbered parameters.
// Both of Conn and Tx embed it.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is the result set of a Query call. It must be closed, and
// its Err must be checked after Next returns false.
type Rows interface {
	Close()
	Err() error
	Next() bool

	// Map scans the current row and returns its values keyed by
	// column names. Textual values are reported as strings.
	Map() (map[string]any, error)
}

// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"slices"
	"strconv"
)

// Kind specifies the value type of a schema Field. It decides how a
// decoded request value is checked and which Go type is bound to the
// corresponding SQL parameter.
type Kind int

// Valid values for the Kind enum.
const (
	KindInvalid Kind = iota // zero value is invalid

	KindText // bound as string
	KindInt  // bound as int64
	KindBool // bound as bool
	KindDate // bound as string, e.g. 2024-05-01
	KindTime // bound as string, e.g. 14:30
)

// String returns the lower-case name of k, as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field describes one writable column of an entity table.
type Field struct {
	Name string // column name, also used as the JSON key
	Kind Kind

	// Required fields must be present, non-null, and non-empty when a
	// record is created through a validated use case.
	Required bool

	// Rules is a validator tag string which is checked for present
	// values only, e.g. "min=0,max=5".
	Rules string

	// Mutable fields may be changed by an update. Updates use the
	// COALESCE semantics, so an absent or null value keeps the column.
	Mutable bool

	// Default is bound on insert when the value is absent or null.
	// A nil Default binds NULL.
	Default any

	// Lenient fields never fail the type check. A malformed value is
	// dropped, so the Default is used instead.
	Lenient bool
}

// Limits specifies how a `?limit=` query parameter is clamped.
type Limits struct {
	Default int // used when the limit is missing or unacceptable
	Max     int // inclusive upper bound
}

// Clamp parses raw as a base-10 integer and returns it if it is in the
// [1, l.Max] range. Otherwise, including for a non-numeric raw string,
// l.Default is returned.
func (l Limits) Clamp(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > l.Max {
		return l.Default
	}
	return n
}

// Validate ensures that l is a meaningful limits pair.
func (l Limits) Validate() error {
	switch {
	case l.Max <= 0:
		return fmt.Errorf("max limit (%d) is not positive", l.Max)
	case l.Default <= 0 || l.Default > l.Max:
		return fmt.Errorf(
			"default limit (%d) is not in [1, %d]", l.Default, l.Max,
		)
	}
	return nil
}

// ListQuery carries the already clamped listing parameters.
// A zero Limit means the listing is not limited.
type ListQuery struct {
	Limit int
}

// Schema is an entity descriptor. The generic records use cases and
// the records repository derive every SQL statement and every request
// body check from a Schema, so both product variants share one
// implementation and differ only in their descriptors.
type Schema struct {
	Name   string // resource name as used in URL paths, e.g. drivers
	Table  string // database table name, e.g. thrill_reviews
	Fields []Field

	// Visible names a boolean column which public listings filter on
	// (rows are listed only if it is true). Empty means no filtering.
	Visible string

	// OrderBy lists the ORDER BY terms of public listings, e.g.
	// "experience_years DESC". Terms are not client controlled.
	OrderBy []string

	// Limits is nil for listings which return all rows.
	Limits *Limits

	// Touch names a timestamp column which is set to now() on update.
	Touch string
}

// Field returns the named field descriptor and true, or a zero Field
// and false if name is not a column of s.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// MutableFields returns fields which may be changed by an update,
// keeping their declaration order.
func (s *Schema) MutableFields() []Field {
	ff := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Mutable {
			ff = append(ff, f)
		}
	}
	return ff
}

// SortFields returns the distinct names in the s.Fields order, followed
// by the names which are not fields of s in sorted order.
func (s *Schema) SortFields(names []string) []string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	out := make([]string, 0, len(seen))
	for _, f := range s.Fields {
		if seen[f.Name] {
			out = append(out, f.Name)
			delete(seen, f.Name)
		}
	}
	rest := make([]string, 0, len(seen))
	for n := range seen {
		rest = append(rest, n)
	}
	slices.Sort(rest)
	return append(out, rest...)
}

// ListQuery computes the listing parameters for the raw `?limit=`
// query parameter value. For schema without Limits, raw is ignored.
func (s *Schema) ListQuery(raw string) ListQuery {
	if s.Limits == nil {
		return ListQuery{}
	}
	return ListQuery{Limit: s.Limits.Clamp(raw)}
}

// ReadOnlyColumns are returned by the database but are never accepted
// from clients. They are silently dropped from request bodies, so a
// row which was fetched by a GET may be sent back with a PUT.
var ReadOnlyColumns = []string{"id", "created_at", "updated_at"}

// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"strconv"
)

// ID identifies one row of an entity table (a serial primary key).
type ID int64

// ErrInvalidID indicates that a path segment is not a row identifier.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses the base-10 string form of an ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return ID(n), nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Record is one row (or one partial row in a request) keyed by column
// names. Request records only hold the keys which were sent by the
// client, so absence and presence can be told apart.
// Values are restricted to nil, string, int64, bool, and those types
// which the database driver returns (e.g. time.Time).
type Record map[string]any

// Has reports if key is present in r (even with a nil value).
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Present reports if key is present in r with a non-nil value.
func (r Record) Present(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// TableCount reports the number of rows of one table.
type TableCount struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// Health is reported by the health check endpoint.
type Health struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Coerce checks a decoded request record against the s descriptor and
// returns a record which holds only the s columns with their bound Go
// types (see Kind). The raw values must be JSON scalars as decoded by
// the adapters: nil, string, bool, int64, or float64. Other values,
// such as objects and arrays, never match a field kind.
//
// The ReadOnlyColumns are silently dropped. Unknown keys and values
// with a wrong type are reported by their names, in the s.Fields
// order followed by the unknown keys in sorted order. If update is
// true, non-mutable fields are reported too.
//
// Integer fields accept integral numbers and base-10 strings, while
// an empty string is coerced to nil (so an empty reference id, as sent
// by HTML forms, is stored as NULL). Malformed values of Lenient
// fields are dropped instead of being reported.
func (s *Schema) Coerce(raw Record, update bool) (Record, []string) {
	out := make(Record, len(raw))
	var bad []string
	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		if !ok {
			continue
		}
		if update && !f.Mutable {
			bad = append(bad, f.Name)
			continue
		}
		cv, ok := f.coerce(v)
		switch {
		case ok:
			out[f.Name] = cv
		case !f.Lenient:
			bad = append(bad, f.Name)
		}
	}
	var unknown []string
	for k := range raw {
		if _, ok := s.Field(k); ok || slices.Contains(ReadOnlyColumns, k) {
			continue
		}
		unknown = append(unknown, k)
	}
	slices.Sort(unknown)
	return out, append(bad, unknown...)
}

func (f Field) coerce(v any) (any, bool) {
	if v == nil {
		return nil, true
	}
	switch f.Kind {
	case KindText, KindDate, KindTime:
		s, ok := v.(string)
		return s, ok
	case KindBool:
		b, ok := v.(bool)
		return b, ok
	case KindInt:
		return coerceInt(v)
	default:
		return nil, false
	}
}

func coerceInt(v any) (any, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || n >= math.MaxInt64 || n < math.MinInt64 {
			return nil, false
		}
		return int64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil, true
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, false
		}
		return i, true
	default:
		return nil, false
	}
}

// Missing reports if the f field is absent from r, is nil, or is an
// empty (or blank) string. Required fields must not be missing.
func (r Record) Missing(f Field) bool {
	switch v := r[f.Name].(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

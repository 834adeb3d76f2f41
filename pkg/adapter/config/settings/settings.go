// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the value types and generic helpers which
// are used by the config package in order to fill the missing settings
// with their defaults, overwrite them by environment variables, and
// verify their ranges. Settings are kept as pointers, so a missing
// item can be told apart from its zero value.
package settings

import (
	"fmt"
	"strconv"
)

// Default makes (*t) point to a newly allocated copy of the v value,
// if (*t) was nil. Otherwise, it performs no action.
func Default[T any](t **T, v T) {
	if (*t) != nil {
		return
	}
	(*t) = &v
}

// Nil2Zero makes (*t) point to a newly allocated zero T instance,
// if (*t) was nil. Otherwise, it performs no action.
func Nil2Zero[T any](t **T) {
	var zero T
	Default(t, zero)
}

// LookupEnv is the signature of os.LookupEnv. It is accepted by the
// environment overwriting functions, so tests may pass a fake one.
type LookupEnv func(key string) (string, bool)

// FromEnv overwrites (*dst) with the value of the key environment
// variable, if it is set (even if it is set to an empty string).
func FromEnv(dst **string, lookup LookupEnv, key string) {
	if v, ok := lookup(key); ok {
		(*dst) = &v
	}
}

// IntFromEnv overwrites (*dst) with the integer value of the key
// environment variable, if it is set and not empty. A malformed value
// is reported as an error and (*dst) is kept intact.
func IntFromEnv(dst **int, lookup LookupEnv, key string) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parsing $%s=%q: %w", key, v, err)
	}
	(*dst) = &n
	return nil
}

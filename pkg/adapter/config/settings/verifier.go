// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// OutOfRangeError indicates that the Name setting had a Value which
// was out of its acceptable [Min, Max] range.
type OutOfRangeError[T cmp.Ordered] struct {
	Name     string
	Value    T
	Min, Max T
}

// Error implements error interface and reports the violated range.
func (e *OutOfRangeError[T]) Error() string {
	return fmt.Sprintf(
		"%s=%v is not in [%v, %v]", e.Name, e.Value, e.Min, e.Max,
	)
}

// VerifyRange ensures that value is either nil or is within the minb
// and maxb boundary values (inclusive). The name of the setting is
// used in the returned error.
func VerifyRange[T cmp.Ordered](
	name string, value *T, minb, maxb T,
) error {
	if value == nil || (minb <= *value && *value <= maxb) {
		return nil
	}
	return &OutOfRangeError[T]{
		Name: name, Value: *value, Min: minb, Max: maxb,
	}
}

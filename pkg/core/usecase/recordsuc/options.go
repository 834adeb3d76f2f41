// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package recordsuc

import "errors"

// Option is a functional option for the records use case.
type Option func(uc *UseCase) error

// WithValidator option enables the creation checks of a records
// UseCase: Required fields must be present and non-blank, and present
// values must satisfy their field Rules using the v validator.
func WithValidator(v Validator) Option {
	return func(uc *UseCase) error {
		if v == nil {
			return errors.New("nil validator")
		}
		if uc.validator != nil {
			return errors.New("validator is already configured")
		}
		uc.validator = v
		return nil
	}
}

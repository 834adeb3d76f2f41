// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsuc

import (
	"errors"

	"github.com/soutside/bookweb/pkg/core/usecase/recordsuc"
)

type options struct {
	validator recordsuc.Validator
	protected bool
}

// Option is a functional option for the bookings use case.
type Option func(o *options) error

// WithValidator option enables the booking creation checks, using the
// v validator for the field rules (e.g., the email and phone formats).
func WithValidator(v recordsuc.Validator) Option {
	return func(o *options) error {
		if v == nil {
			return errors.New("nil validator")
		}
		if o.validator != nil {
			return errors.New("validator is already configured")
		}
		o.validator = v
		return nil
	}
}

// WithProtectedListing option reserves the bookings listing for the
// administrators. By default, bookings are listed publicly.
func WithProtectedListing() Option {
	return func(o *options) error {
		o.protected = true
		return nil
	}
}

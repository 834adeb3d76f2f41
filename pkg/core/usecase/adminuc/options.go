// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package adminuc

import (
	"errors"

	"github.com/soutside/bookweb/pkg/core/scram"
)

// Option is a functional option for the admin gate use case.
type Option func(uc *UseCase) error

var errAlreadyConfigured = errors.New("admin token is already configured")

// WithToken option configures the plaintext admin token. An empty
// token is ignored, leaving the gate closed.
func WithToken(token string) Option {
	return func(uc *UseCase) error {
		if token == "" {
			return nil
		}
		if uc.Enabled() {
			return errAlreadyConfigured
		}
		uc.token = token
		return nil
	}
}

// WithTokenHash option configures the SCRAM hash of the admin token.
// The presented tokens are verified using h.
func WithTokenHash(hash string, h scram.Hasher) Option {
	return func(uc *UseCase) error {
		switch {
		case hash == "":
			return errors.New("empty token hash")
		case h == nil:
			return errors.New("nil hasher")
		case uc.Enabled():
			return errAlreadyConfigured
		}
		uc.hash, uc.hasher = hash, h
		return nil
	}
}

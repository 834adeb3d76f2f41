// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package adminuc contains the admin gate UseCase. All mutating
// operations on the catalog (and a few reading operations) are
// reserved for the holder of one shared secret token, which is sent
// as a bearer credential.
package adminuc

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/soutside/bookweb/pkg/core/cerr"
	"github.com/soutside/bookweb/pkg/core/log"
	"github.com/soutside/bookweb/pkg/core/scram"
)

const bearerPrefix = "Bearer "

// UseCase represents the admin gate. The expected token is either
// kept as is, or only its SCRAM hash is kept. Without any of them,
// every admin operation is forbidden.
type UseCase struct {
	token  string
	hash   string
	hasher scram.Hasher
}

// New instantiates an admin gate use case. Without options, the
// created gate forbids everything.
func New(opts ...Option) (*UseCase, error) {
	uc := &UseCase{}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return uc, nil
}

// Enabled reports if some admin token was configured.
func (uc *UseCase) Enabled() bool {
	return uc.token != "" || uc.hash != ""
}

// Authorize checks the authorization header value. It must contain
// the configured token after the "Bearer " prefix. In case of a
// mismatch, a 403 classified error is returned.
func (uc *UseCase) Authorize(ctx context.Context, authorization string) error {
	token, ok := strings.CutPrefix(authorization, bearerPrefix)
	if !ok || token == "" || !uc.matches(ctx, token) {
		return cerr.Forbidden()
	}
	return nil
}

func (uc *UseCase) matches(ctx context.Context, token string) bool {
	switch {
	case uc.token != "":
		return subtle.ConstantTimeCompare([]byte(uc.token), []byte(token)) == 1
	case uc.hash != "":
		ok, err := uc.hasher.Verify(uc.hash, token)
		if err != nil {
			log.Error(ctx, "verifying admin token", log.Err("err", err))
			return false
		}
		return ok
	default:
		return false
	}
}

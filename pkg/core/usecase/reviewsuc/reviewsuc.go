// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reviewsuc contains the reviews UseCase. Visitors submit
// reviews which stay hidden until an administrator approves them, and
// only approved reviews are listed publicly.
package reviewsuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
	"github.com/soutside/bookweb/pkg/core/usecase/recordsuc"
)

// UseCase represents the reviews use case. Listing and deletion are
// inherited from the embedded records use case.
type UseCase struct {
	*recordsuc.UseCase
}

// New instantiates a reviews use case for the s reviews descriptor.
// The v validator checks the submitted reviews (e.g., their rating
// range) and is mandatory because submissions are public.
func New(
	p repo.Pool, r repo.Records, s *model.Schema, v recordsuc.Validator,
) (*UseCase, error) {
	if s.Visible == "" {
		return nil, errors.New("reviews schema has no approval column")
	}
	ruc, err := recordsuc.New(p, r, s, recordsuc.WithValidator(v))
	if err != nil {
		return nil, fmt.Errorf("creating records use case: %w", err)
	}
	return &UseCase{UseCase: ruc}, nil
}

// Submit stores a visitor review. Reviews are always stored as not
// approved, regardless of the submitted approval flag.
func (uc *UseCase) Submit(
	ctx context.Context, raw model.Record,
) (model.Record, error) {
	r, err := uc.Prepare(raw, false)
	if err != nil {
		return nil, err
	}
	r[uc.Schema().Visible] = false
	return uc.Insert(ctx, r)
}

// Approve marks the id review as approved, so it will be listed.
// The updated review is returned, or an empty record if there was no
// such review.
func (uc *UseCase) Approve(
	ctx context.Context, id model.ID,
) (model.Record, error) {
	return uc.Apply(ctx, id, model.Record{uc.Schema().Visible: true})
}

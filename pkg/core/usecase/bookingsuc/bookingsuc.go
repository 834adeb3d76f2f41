// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsuc contains the bookings UseCase. Bookings are the
// only entity which anonymous visitors may create, so their creation
// is checked (contact fields and preferred dates) and normalized
// (reference ids, participants count, notes, and the initial status).
// Administrators may then move a booking to any known status.
package bookingsuc

import (
	"context"
	"fmt"

	"github.com/soutside/bookweb/pkg/core/cerr"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
	"github.com/soutside/bookweb/pkg/core/usecase/recordsuc"
)

const statusField = "status"

// UseCase represents the bookings use case. The generic records use
// case is embedded, so listing and deletion are inherited as is.
type UseCase struct {
	*recordsuc.UseCase

	protected bool
}

// New instantiates a bookings use case for the s bookings descriptor.
// The booking creation checks are enabled by passing the WithValidator
// option. Without it, bookings are stored without checking their
// contact fields (while their types and status are still checked).
func New(
	p repo.Pool, r repo.Records, s *model.Schema, opts ...Option,
) (*UseCase, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if _, ok := s.Field(statusField); !ok {
		return nil, fmt.Errorf("%s has no %s field", s.Table, statusField)
	}
	var ropts []recordsuc.Option
	if o.validator != nil {
		ropts = append(ropts, recordsuc.WithValidator(o.validator))
	}
	ruc, err := recordsuc.New(p, r, s, ropts...)
	if err != nil {
		return nil, fmt.Errorf("creating records use case: %w", err)
	}
	return &UseCase{UseCase: ruc, protected: o.protected}, nil
}

// ListingProtected reports if listing bookings needs the admin token.
func (uc *UseCase) ListingProtected() bool {
	return uc.protected
}

// Create stores a new booking as requested by a visitor.
// A booking always starts as pending, so a status other than pending
// is rejected. Empty reference ids are stored as NULL, a missing or
// malformed participants count is stored as 1, and missing notes are
// stored as an empty string.
func (uc *UseCase) Create(
	ctx context.Context, raw model.Record,
) (model.Record, error) {
	r, err := uc.Prepare(raw, false)
	if err != nil {
		return nil, err
	}
	if v, ok := r[statusField].(string); ok {
		st, err := model.ParseBookingStatus(v)
		if err != nil || st != model.BookingStatusPending {
			return nil, &cerr.ValidationError{Fields: []string{statusField}}
		}
	}
	return uc.Insert(ctx, r)
}

// Update changes the status and/or notes of the id booking.
// The status must be a known booking status, while any transition
// between them is allowed.
func (uc *UseCase) Update(
	ctx context.Context, id model.ID, raw model.Record,
) (model.Record, error) {
	r, err := uc.Prepare(raw, true)
	if err != nil {
		return nil, err
	}
	if v, ok := r[statusField].(string); ok {
		if _, err := model.ParseBookingStatus(v); err != nil {
			return nil, &cerr.ValidationError{Fields: []string{statusField}}
		}
	}
	return uc.Apply(ctx, id, r)
}

// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reviewsuc_test

import (
	"context"
	"testing"

	"github.com/soutside/bookweb/internal/test/fakerepo"
	"github.com/soutside/bookweb/pkg/adapter/validation"
	"github.com/soutside/bookweb/pkg/core/cerr"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/usecase/reviewsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (*reviewsuc.UseCase, *fakerepo.Records) {
	c, err := model.NewCatalog(model.VariantSupercar)
	require.NoError(t, err)
	v, err := validation.New()
	require.NoError(t, err)
	r := fakerepo.New()
	uc, err := reviewsuc.New(&fakerepo.Pool{}, r, c.Reviews, v)
	require.NoError(t, err)
	return uc, r
}

func TestSubmitThenApprove(t *testing.T) {
	ctx := context.Background()
	uc, r := newUseCase(t)
	rev, err := uc.Submit(ctx, model.Record{
		"client_name":   "Sam Hill",
		"rating":        int64(5),
		"comment":       "Loud and fast",
		"experience_id": "3",
		"is_approved":   true,
	})
	require.NoError(t, err)
	assert.Equal(t, false, rev["is_approved"])
	assert.Equal(t, int64(3), rev["experience_id"])
	assert.Len(t, r.Rows("thrill_reviews"), 1)

	rr, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, rr, "unapproved reviews are hidden")

	id := model.ID(rev["id"].(int64))
	rev, err = uc.Approve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, true, rev["is_approved"])

	rr, err = uc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, rr, 1)
	assert.Equal(t, "Sam Hill", rr[0]["client_name"])

	rev, err = uc.Approve(ctx, id+1)
	require.NoError(t, err)
	assert.Empty(t, rev)
}

func TestSubmitValidation(t *testing.T) {
	uc, r := newUseCase(t)
	_, err := uc.Submit(context.Background(), model.Record{
		"client_name": "Sam", "rating": int64(-1),
	})
	var verr *cerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"rating"}, verr.Fields)

	_, err = uc.Submit(context.Background(), model.Record{"comment": "hi"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"client_name", "rating"}, verr.Fields)
	assert.Empty(t, r.Rows("thrill_reviews"))
}

func TestNewNeedsApprovalColumn(t *testing.T) {
	c, err := model.NewCatalog(model.VariantTours)
	require.NoError(t, err)
	v, err := validation.New()
	require.NoError(t, err)
	_, err = reviewsuc.New(&fakerepo.Pool{}, fakerepo.New(), c.Bookings, v)
	assert.Error(t, err)
	_, err = reviewsuc.New(&fakerepo.Pool{}, fakerepo.New(), c.Reviews, nil)
	assert.Error(t, err)
}

// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package statusuc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/soutside/bookweb/internal/test/fakerepo"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/usecase/statusuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthDoesNotTouchTheDatabase(t *testing.T) {
	c, err := model.NewCatalog(model.VariantTours)
	require.NoError(t, err)
	p := &fakerepo.Pool{}
	uc := statusuc.New(p, fakerepo.New(), c)
	assert.Equal(t,
		model.Health{OK: true, Service: "tours-agency"},
		uc.Health(context.Background()),
	)
	assert.Zero(t, p.Conns)
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	c, err := model.NewCatalog(model.VariantSupercar)
	require.NoError(t, err)
	r := fakerepo.New()
	_, err = r.Insert(ctx, c.Staff, model.Record{"full_name": "A"})
	require.NoError(t, err)
	uc := statusuc.New(&fakerepo.Pool{}, r, c)
	tc, err := uc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.TableCount{
		{Table: "drivers", Count: 1},
		{Table: "experiences", Count: 0},
		{Table: "thrill_reviews", Count: 0},
		{Table: "bookings", Count: 0},
	}, tc)

	boom := errors.New("boom")
	r.Err = boom
	_, err = uc.Counts(ctx)
	assert.ErrorIs(t, err, boom)
}

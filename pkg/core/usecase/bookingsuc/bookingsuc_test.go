// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsuc_test

import (
	"context"
	"testing"

	"github.com/soutside/bookweb/internal/test/fakerepo"
	"github.com/soutside/bookweb/pkg/adapter/validation"
	"github.com/soutside/bookweb/pkg/core/cerr"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/usecase/bookingsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingsTestSuite struct {
	suite.Suite

	Variant model.Variant
	Date    string
	Second  string // time or end date column
	Second1 string // a valid value for the Second column

	ctx     context.Context
	records *fakerepo.Records
	uc      *bookingsuc.UseCase
}

func TestSupercarBookings(t *testing.T) {
	suite.Run(t, &BookingsTestSuite{
		Variant: model.VariantSupercar,
		Date:    "preferred_track_date",
		Second:  "preferred_track_time",
		Second1: "14:30",
	})
}

func TestToursBookings(t *testing.T) {
	suite.Run(t, &BookingsTestSuite{
		Variant: model.VariantTours,
		Date:    "preferred_start_date",
		Second:  "preferred_end_date",
		Second1: "2024-06-09",
	})
}

func (bts *BookingsTestSuite) SetupTest() {
	c, err := model.NewCatalog(bts.Variant)
	bts.Require().NoError(err)
	v, err := validation.New()
	bts.Require().NoError(err)
	bts.ctx = context.Background()
	bts.records = fakerepo.New()
	bts.uc, err = bookingsuc.New(
		&fakerepo.Pool{}, bts.records, c.Bookings,
		bookingsuc.WithValidator(v),
	)
	bts.Require().NoError(err)
}

func (bts *BookingsTestSuite) valid() model.Record {
	return model.Record{
		"client_name":  "Ann Lee",
		"client_email": "ann@example.com",
		"client_phone": "+1 (555) 123-4567",
		bts.Date:       "2024-06-01",
		bts.Second:     bts.Second1,
	}
}

func (bts *BookingsTestSuite) TestCreateDefaults() {
	b, err := bts.uc.Create(bts.ctx, bts.valid())
	bts.Require().NoError(err)
	bts.Equal("pending", b["status"])
	bts.Equal(int64(1), b["participants_count"])
	bts.Equal("", b["notes"])
	bts.NotNil(b["id"])
}

func (bts *BookingsTestSuite) TestCreateNormalizes() {
	r := bts.valid()
	for _, f := range bts.uc.Schema().Fields {
		if f.Kind == model.KindInt && f.Name != "participants_count" {
			r[f.Name] = ""
		}
	}
	r["participants_count"] = "abc"
	r["status"] = "pending"
	b, err := bts.uc.Create(bts.ctx, r)
	bts.Require().NoError(err)
	bts.Equal(int64(1), b["participants_count"])
	for _, f := range bts.uc.Schema().Fields {
		if f.Kind == model.KindInt && f.Name != "participants_count" {
			bts.Nil(b[f.Name], "field=%s", f.Name)
		}
	}
	r["participants_count"] = int64(4)
	b, err = bts.uc.Create(bts.ctx, r)
	bts.Require().NoError(err)
	bts.Equal(int64(4), b["participants_count"])
}

func (bts *BookingsTestSuite) TestCreateValidation() {
	for name, tc := range map[string]struct {
		change func(model.Record)
		fields []string
	}{
		"missing email": {
			change: func(r model.Record) { delete(r, "client_email") },
			fields: []string{"client_email"},
		},
		"email without at": {
			change: func(r model.Record) { r["client_email"] = "ann.example.com" },
			fields: []string{"client_email"},
		},
		"short name and phone": {
			change: func(r model.Record) {
				r["client_name"] = " A "
				r["client_phone"] = "12-34"
			},
			fields: []string{"client_name", "client_phone"},
		},
		"missing dates": {
			change: func(r model.Record) {
				r[bts.Date] = ""
				delete(r, bts.Second)
			},
			fields: []string{bts.Date, bts.Second},
		},
		"confirmed status": {
			change: func(r model.Record) { r["status"] = "confirmed" },
			fields: []string{"status"},
		},
	} {
		bts.Run(name, func() {
			r := bts.valid()
			tc.change(r)
			_, err := bts.uc.Create(bts.ctx, r)
			var verr *cerr.ValidationError
			bts.Require().ErrorAs(err, &verr)
			bts.Equal(tc.fields, verr.Fields)
		})
	}
	bts.Empty(bts.records.Rows("bookings"))
}

func (bts *BookingsTestSuite) TestUpdateStatus() {
	b, err := bts.uc.Create(bts.ctx, bts.valid())
	bts.Require().NoError(err)
	id := model.ID(b["id"].(int64))
	for _, st := range []string{"confirmed", "waitlist", "pending", "cancelled"} {
		u, err := bts.uc.Update(bts.ctx, id, model.Record{"status": st})
		bts.Require().NoError(err)
		bts.Equal(st, u["status"])
		bts.Equal("", u["notes"])
	}
	u, err := bts.uc.Update(bts.ctx, id, model.Record{"notes": "VIP"})
	bts.Require().NoError(err)
	bts.Equal("cancelled", u["status"])
	bts.Equal("VIP", u["notes"])

	_, err = bts.uc.Update(bts.ctx, id, model.Record{"status": "done"})
	var verr *cerr.ValidationError
	bts.Require().ErrorAs(err, &verr)
	bts.Equal([]string{"status"}, verr.Fields)

	_, err = bts.uc.Update(bts.ctx, id, model.Record{"client_name": "Bob"})
	bts.Require().ErrorAs(err, &verr)
	bts.Equal([]string{"client_name"}, verr.Fields)
}

func TestWithoutValidation(t *testing.T) {
	c, err := model.NewCatalog(model.VariantTours)
	require.NoError(t, err)
	uc, err := bookingsuc.New(&fakerepo.Pool{}, fakerepo.New(), c.Bookings)
	require.NoError(t, err)
	b, err := uc.Create(context.Background(), model.Record{
		"client_name": "A", "client_email": "nope",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", b["status"])
	assert.False(t, uc.ListingProtected())

	uc, err = bookingsuc.New(&fakerepo.Pool{}, fakerepo.New(), c.Bookings,
		bookingsuc.WithProtectedListing())
	require.NoError(t, err)
	assert.True(t, uc.ListingProtected())

	_, err = bookingsuc.New(&fakerepo.Pool{}, fakerepo.New(), c.Staff)
	assert.Error(t, err, "staff schema has no status field")
}

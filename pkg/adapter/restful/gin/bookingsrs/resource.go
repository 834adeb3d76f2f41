// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsrs realizes the bookings resource. Visitors create
// bookings, while administrators list, update, and delete them.
package bookingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	rsgin "github.com/soutside/bookweb/pkg/adapter/restful/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/serdser"
	"github.com/soutside/bookweb/pkg/core/usecase/bookingsuc"
)

type resource struct {
	bookings *bookingsuc.UseCase
}

// Routes adapts the bookings use case with its REST APIs including:
//  1. GET request to /bookings for listing bookings (newest first),
//     which needs the admin token only if the listing is protected,
//  2. POST request to /bookings for booking an offering,
//  3. PUT request to /bookings/:id for changing status/notes (admin),
//  4. DELETE request to /bookings/:id for deleting a booking (admin).
func Routes(bookings *bookingsuc.UseCase) []rsgin.Route {
	rs := &resource{bookings: bookings}
	return []rsgin.Route{
		{
			Method: http.MethodGet, Path: "/bookings",
			Admin: bookings.ListingProtected(), Handler: rs.List,
		},
		{Method: http.MethodPost, Path: "/bookings", Handler: rs.Create},
		{Method: http.MethodPut, Path: "/bookings/:id", Admin: true, Handler: rs.Update},
		{Method: http.MethodDelete, Path: "/bookings/:id", Admin: true, Handler: rs.Delete},
	}
}

func (rs *resource) List(c *gin.Context) {
	rr, err := rs.bookings.List(c, c.Query("limit"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerRecords(c, rr)
}

func (rs *resource) Create(c *gin.Context) {
	req, ok := serdser.BindRecord(c)
	if !ok {
		return
	}
	b, err := rs.bookings.Create(c, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerRecord(c, b)
}

func (rs *resource) Update(c *gin.Context) {
	id, ok := serdser.BindID(c)
	if !ok {
		return
	}
	req, ok := serdser.BindRecord(c)
	if !ok {
		return
	}
	b, err := rs.bookings.Update(c, id, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerRecord(c, b)
}

func (rs *resource) Delete(c *gin.Context) {
	id, ok := serdser.BindID(c)
	if !ok {
		return
	}
	if err := rs.bookings.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerOK(c)
}

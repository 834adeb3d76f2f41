// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reviewsrs realizes the reviews resource.
package reviewsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	rsgin "github.com/soutside/bookweb/pkg/adapter/restful/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/serdser"
	"github.com/soutside/bookweb/pkg/core/usecase/reviewsuc"
)

type resource struct {
	reviews *reviewsuc.UseCase
}

// Routes adapts the reviews use case with its REST APIs including:
//  1. GET request to /reviews for listing the approved reviews,
//  2. POST request to /reviews for submitting a review,
//  3. PUT request to /reviews/approve/:id for approving it (admin),
//  4. DELETE request to /reviews/:id for deleting it (admin).
func Routes(reviews *reviewsuc.UseCase) []rsgin.Route {
	rs := &resource{reviews: reviews}
	return []rsgin.Route{
		{Method: http.MethodGet, Path: "/reviews", Handler: rs.List},
		{Method: http.MethodPost, Path: "/reviews", Handler: rs.Submit},
		{
			Method: http.MethodPut, Path: "/reviews/approve/:id",
			Admin: true, Handler: rs.Approve,
		},
		{Method: http.MethodDelete, Path: "/reviews/:id", Admin: true, Handler: rs.Delete},
	}
}

func (rs *resource) List(c *gin.Context) {
	rr, err := rs.reviews.List(c, c.Query("limit"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerRecords(c, rr)
}

func (rs *resource) Submit(c *gin.Context) {
	req, ok := serdser.BindRecord(c)
	if !ok {
		return
	}
	r, err := rs.reviews.Submit(c, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerRecord(c, r)
}

func (rs *resource) Approve(c *gin.Context) {
	id, ok := serdser.BindID(c)
	if !ok {
		return
	}
	r, err := rs.reviews.Approve(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerRecord(c, r)
}

func (rs *resource) Delete(c *gin.Context) {
	id, ok := serdser.BindID(c)
	if !ok {
		return
	}
	if err := rs.reviews.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerOK(c)
}

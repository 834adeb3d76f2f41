// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package recordsrs realizes the generic records resource, allowing
// the staff and offerings REST APIs to be accepted and delegated to
// their records use cases.
package recordsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	rsgin "github.com/soutside/bookweb/pkg/adapter/restful/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/serdser"
	"github.com/soutside/bookweb/pkg/core/usecase/recordsuc"
)

type resource struct {
	records *recordsuc.UseCase
}

// Routes adapts the records use case with its REST APIs, where name
// is the schema name (e.g., drivers):
//  1. GET request to /name for listing the visible rows,
//  2. POST request to /name for creating a row (admin),
//  3. PUT request to /name/:id for updating a row (admin),
//  4. DELETE request to /name/:id for deleting a row (admin).
func Routes(records *recordsuc.UseCase) []rsgin.Route {
	rs := &resource{records: records}
	base := "/" + records.Schema().Name
	return []rsgin.Route{
		{Method: http.MethodGet, Path: base, Handler: rs.List},
		{Method: http.MethodPost, Path: base, Admin: true, Handler: rs.Create},
		{Method: http.MethodPut, Path: base + "/:id", Admin: true, Handler: rs.Update},
		{Method: http.MethodDelete, Path: base + "/:id", Admin: true, Handler: rs.Delete},
	}
}

func (rs *resource) List(c *gin.Context) {
	rr, err := rs.records.List(c, c.Query("limit"))
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
	r, err := rs.records.Create(c, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerRecord(c, r)
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
	r, err := rs.records.Update(c, id, req)
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
	if err := rs.records.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.SerOK(c)
}

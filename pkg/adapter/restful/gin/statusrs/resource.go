// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package statusrs realizes the health check and the table counts
// debugging APIs.
package statusrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	rsgin "github.com/soutside/bookweb/pkg/adapter/restful/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/serdser"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/usecase/statusuc"
)

type resource struct {
	status *statusuc.UseCase
}

// Routes adapts the status use case with GET /health and
// GET /_debug/counts REST APIs.
func Routes(status *statusuc.UseCase) []rsgin.Route {
	rs := &resource{status: status}
	return []rsgin.Route{
		{Method: http.MethodGet, Path: "/health", Handler: rs.Health},
		{Method: http.MethodGet, Path: "/_debug/counts", Handler: rs.Counts},
	}
}

func (rs *resource) Health(c *gin.Context) {
	c.JSON(http.StatusOK, rs.status.Health(c))
}

func (rs *resource) Counts(c *gin.Context) {
	tc, err := rs.status.Counts(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if tc == nil {
		tc = []model.TableCount{}
	}
	c.JSON(http.StatusOK, tc)
}

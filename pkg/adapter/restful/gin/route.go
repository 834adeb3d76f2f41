// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin

import (
	"github.com/gin-gonic/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/serdser"
	"github.com/soutside/bookweb/pkg/core/usecase/adminuc"
)

// Route describes one REST API endpoint. Resource packages return
// their routes as plain values and the routes package mounts them.
type Route struct {
	Method  string
	Path    string
	Admin   bool // requires the admin bearer token
	Handler HandlerFunc
}

// Mount registers rr on r. Admin routes get the admin middleware in
// front of their handler, so unauthorized requests are rejected before
// their bodies are read.
func Mount(r gin.IRouter, admin HandlerFunc, rr ...Route) {
	for _, rt := range rr {
		if rt.Admin {
			r.Handle(rt.Method, rt.Path, admin, rt.Handler)
			continue
		}
		r.Handle(rt.Method, rt.Path, rt.Handler)
	}
}

// Admin returns a middleware which aborts requests whose Authorization
// header is not accepted by the uc admin gate.
func Admin(uc *adminuc.UseCase) HandlerFunc {
	return func(c *gin.Context) {
		if err := uc.Authorize(c, c.GetHeader("Authorization")); err != nil {
			serdser.SerErr(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

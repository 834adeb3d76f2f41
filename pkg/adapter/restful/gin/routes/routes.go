// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/soutside/bookweb/pkg/adapter/db/postgres/recordsrp"
	rsgin "github.com/soutside/bookweb/pkg/adapter/restful/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/bookingsrs"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/recordsrs"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/reviewsrs"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/statusrs"
	"github.com/soutside/bookweb/pkg/core/repo"
	"github.com/soutside/bookweb/pkg/core/usecase/appuc"
)

// Register instantiates the records repository and, using the
// b builder (i.e., the configuration settings), the application use
// case of the configured catalog variant. The p connections pool is
// passed to the use case instances, so they may acquire/release
// connections on demand and pass them to the repository. Each use case
// package is named like bookingsuc and each resource package is named
// like bookingsrs. The routes of all resources are collected into one
// table and registered on the e gin-gonic engine, guarding the admin
// routes with the admin gate middleware.
// Possible errors will be returned after possible wrapping.
func Register(e *rsgin.Engine, p repo.Pool, b appuc.Builder) error {
	app, err := appuc.New(p, recordsrp.New(), b)
	if err != nil {
		return fmt.Errorf("creating application use case: %w", err)
	}
	rsgin.Mount(e, rsgin.Admin(app.AdminUseCase()), Table(app)...)
	return nil
}

// Table returns the routes of all resources of the app use case.
func Table(app *appuc.UseCase) []rsgin.Route {
	var rr []rsgin.Route
	rr = append(rr, statusrs.Routes(app.StatusUseCase())...)
	rr = append(rr, recordsrs.Routes(app.StaffUseCase())...)
	rr = append(rr, recordsrs.Routes(app.OfferingsUseCase())...)
	rr = append(rr, reviewsrs.Routes(app.ReviewsUseCase())...)
	rr = append(rr, bookingsrs.Routes(app.BookingsUseCase())...)
	return rr
}

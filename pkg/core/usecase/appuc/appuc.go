// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package appuc contains the application UseCase which instantiates
// all other use cases of the configured catalog variant, using a
// Builder, and provides them to the resources packages.
package appuc

import (
	"fmt"

	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
	"github.com/soutside/bookweb/pkg/core/usecase/adminuc"
	"github.com/soutside/bookweb/pkg/core/usecase/bookingsuc"
	"github.com/soutside/bookweb/pkg/core/usecase/recordsuc"
	"github.com/soutside/bookweb/pkg/core/usecase/reviewsuc"
	"github.com/soutside/bookweb/pkg/core/usecase/statusuc"
)

// UseCase represents an application use case. It holds the catalog
// descriptors and one use case object per catalog resource. All of
// them are created once and are safe for concurrent use afterwards.
type UseCase struct {
	catalog *model.Catalog

	staff     *recordsuc.UseCase
	offerings *recordsuc.UseCase
	reviews   *reviewsuc.UseCase
	bookings  *bookingsuc.UseCase
	admin     *adminuc.UseCase
	status    *statusuc.UseCase
}

// New instantiates an application use case object, asking b to build
// all other use cases with the p connections pool and r records repo.
func New(p repo.Pool, r repo.Records, b Builder) (*UseCase, error) {
	c, err := b.Catalog()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	app := &UseCase{catalog: c, status: statusuc.New(p, r, c)}
	if app.staff, err = b.NewRecordsUseCase(p, r, c.Staff); err != nil {
		return nil, fmt.Errorf("creating %s use case: %w", c.Staff.Name, err)
	}
	if app.offerings, err = b.NewRecordsUseCase(p, r, c.Offerings); err != nil {
		return nil, fmt.Errorf(
			"creating %s use case: %w", c.Offerings.Name, err,
		)
	}
	if app.reviews, err = b.NewReviewsUseCase(p, r, c.Reviews); err != nil {
		return nil, fmt.Errorf("creating reviews use case: %w", err)
	}
	if app.bookings, err = b.NewBookingsUseCase(p, r, c.Bookings); err != nil {
		return nil, fmt.Errorf("creating bookings use case: %w", err)
	}
	if app.admin, err = b.NewAdminUseCase(); err != nil {
		return nil, fmt.Errorf("creating admin use case: %w", err)
	}
	return app, nil
}

// Catalog returns the served catalog descriptors.
func (app *UseCase) Catalog() *model.Catalog {
	return app.catalog
}

// StaffUseCase returns the drivers (or guides) records use case.
func (app *UseCase) StaffUseCase() *recordsuc.UseCase {
	return app.staff
}

// OfferingsUseCase returns the experiences (or tours) records use case.
func (app *UseCase) OfferingsUseCase() *recordsuc.UseCase {
	return app.offerings
}

// ReviewsUseCase returns the reviews use case.
func (app *UseCase) ReviewsUseCase() *reviewsuc.UseCase {
	return app.reviews
}

// BookingsUseCase returns the bookings use case.
func (app *UseCase) BookingsUseCase() *bookingsuc.UseCase {
	return app.bookings
}

// AdminUseCase returns the admin gate use case.
func (app *UseCase) AdminUseCase() *adminuc.UseCase {
	return app.admin
}

// StatusUseCase returns the status use case.
func (app *UseCase) StatusUseCase() *statusuc.UseCase {
	return app.status
}

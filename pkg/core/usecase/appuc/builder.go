// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
	"github.com/soutside/bookweb/pkg/core/usecase/adminuc"
	"github.com/soutside/bookweb/pkg/core/usecase/bookingsuc"
	"github.com/soutside/bookweb/pkg/core/usecase/recordsuc"
	"github.com/soutside/bookweb/pkg/core/usecase/reviewsuc"
)

// Builder interface represents the expectations from the application
// use case builders. All use cases which can be instantiated by a
// configuration struct have one NewX method here which takes database
// connection pool and their repository dependencies. The configuration
// struct implements this interface, so the settings of each use case
// are turned into its functional options in the adapters layer.
type Builder interface {
	// Catalog returns the descriptors of the configured variant, with
	// their listing limits adjusted based on the settings.
	Catalog() (*model.Catalog, error)

	// NewRecordsUseCase creates a generic records use case for the
	// s descriptor (e.g., for the staff and offerings tables).
	NewRecordsUseCase(
		p repo.Pool, r repo.Records, s *model.Schema,
	) (*recordsuc.UseCase, error)

	// NewBookingsUseCase creates the bookings use case.
	NewBookingsUseCase(
		p repo.Pool, r repo.Records, s *model.Schema,
	) (*bookingsuc.UseCase, error)

	// NewReviewsUseCase creates the reviews use case.
	NewReviewsUseCase(
		p repo.Pool, r repo.Records, s *model.Schema,
	) (*reviewsuc.UseCase, error)

	// NewAdminUseCase creates the admin gate use case.
	NewAdminUseCase() (*adminuc.UseCase, error)
}

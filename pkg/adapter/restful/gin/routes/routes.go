// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealerweb/pkg/adapter/config"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres/bookingsrp"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres/countersrp"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres/ordersrp"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/adminauth"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/bookingsrs"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/ordersrs"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/momeni/dealerweb/pkg/core/log"
	"github.com/momeni/dealerweb/pkg/core/repo"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like ordersuc and each repository package is named like ordersrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like ordersrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// The back-office resources are grouped under the admin prefix behind
// the access token middleware; when no admin token hash is configured,
// the whole admin group is left unregistered.
// Possible errors will be returned after possible wrapping.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool, c *config.Config,
) error {
	vehiclesRepo := vehiclesrp.New()
	ordersRepo := ordersrp.New()
	bookingsRepo := bookingsrp.New()
	countersRepo := countersrp.New()

	vehicles, err := c.Usecases.Vehicles.NewUseCase(p, vehiclesRepo)
	if err != nil {
		return fmt.Errorf("creating vehicles use case: %w", err)
	}
	orders, err := c.Usecases.Orders.NewUseCase(
		p, ordersRepo, vehiclesRepo, countersRepo,
	)
	if err != nil {
		return fmt.Errorf("creating orders use case: %w", err)
	}
	bookings, err := c.Usecases.Bookings.NewUseCase(
		p, bookingsRepo, vehiclesRepo, countersRepo,
	)
	if err != nil {
		return fmt.Errorf("creating bookings use case: %w", err)
	}

	r := e.Group("/api/dealerweb/v1")
	vehiclesrs.RegisterPublic(r, vehicles)
	ordersrs.RegisterPublic(r, orders)
	bookingsrs.RegisterPublic(r, bookings)

	if c.Admin.TokenHash == "" {
		log.Warn(
			ctx,
			"no admin token-hash; back-office APIs are disabled",
		)
		return nil
	}
	verifier, err := c.Admin.NewVerifier()
	if err != nil {
		return fmt.Errorf("creating admin token verifier: %w", err)
	}
	a := r.Group("/admin", adminauth.New(verifier, c.Admin.TokenHash))
	vehiclesrs.RegisterAdmin(a, vehicles)
	ordersrs.RegisterAdmin(a, orders)
	bookingsrs.RegisterAdmin(a, bookings)
	return nil
}

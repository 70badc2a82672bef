// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesuc contains the vehicles UseCase which supports the
// catalog related use cases: creating and editing listings (admin),
// browsing the catalog with filters, fetching single listings, and
// adjusting the on-hand inventory units through the ledger.
package vehiclesuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/shopspring/decimal"
)

// ErrNonPositivePrice indicates a vehicle price which is zero or
// negative and so may not be listed.
var ErrNonPositivePrice = errors.New("price must be positive")

// ErrNegativeUnits indicates an absolute units value below zero.
var ErrNegativeUnits = errors.New("units may not be negative")

// UseCase represents a vehicles use case. It holds a database
// connection pool, the vehicles repository instance (to be guided
// with the DB pool), and the catalog specific settings.
type UseCase struct {
	pool       repo.Pool
	vehiclesrp repo.Vehicles

	defaultPageSize int
	maxPageSize     int
}

// New instantiates a vehicles use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(p repo.Pool, v repo.Vehicles, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, vehiclesrp: v}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.defaultPageSize == 0 {
		uc.defaultPageSize = 24
	}
	if uc.maxPageSize == 0 {
		uc.maxPageSize = 200
	}
	return uc, nil
}

// CreateVehicleInput carries the administrative listing creation
// parameters. The slug is not accepted from the caller; it is always
// derived from the model name.
type CreateVehicleInput struct {
	Model    string
	Price    decimal.Decimal
	Currency string
	Mode     model.ListingMode

	Category  string
	Trim      string
	Year      int
	Location  string
	Condition string
	Rating    float64
	Reviews   int
	Colors    []string
	Images    []string
	Details   string

	Units  int
	Status model.VehicleStatus
}

// Create use case registers a new vehicle listing, deriving its slug
// from the model name and filling the category, year, and status
// defaults. A duplicate slug surfaces as a conflict error from the
// repository.
func (vehicles *UseCase) Create(ctx context.Context, in CreateVehicleInput) (v *model.Vehicle, err error) {
	if in.Model == "" {
		return nil, cerr.BadRequest(errors.New("model is required"))
	}
	if !in.Price.IsPositive() {
		return nil, cerr.BadRequest(ErrNonPositivePrice)
	}
	if err := in.Mode.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if in.Units < 0 {
		return nil, cerr.BadRequest(ErrNegativeUnits)
	}
	if in.Category == "" {
		in.Category = model.DefaultCategory
	}
	if in.Year == 0 {
		in.Year = time.Now().Year()
	}
	if in.Status == model.VehicleStatusInvalid {
		in.Status = model.VehicleActive
	} else if err := in.Status.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	v = &model.Vehicle{
		VID:       uuid.New(),
		Model:     in.Model,
		Slug:      model.DeriveSlug(in.Model),
		Price:     in.Price,
		Currency:  in.Currency,
		Mode:      in.Mode,
		Category:  in.Category,
		Trim:      in.Trim,
		Year:      in.Year,
		Location:  in.Location,
		Condition: in.Condition,
		Rating:    in.Rating,
		Reviews:   in.Reviews,
		Colors:    in.Colors,
		Images:    in.Images,
		Details:   in.Details,
		Units:     in.Units,
		Status:    in.Status,
	}
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return vehicles.vehiclesrp.Conn(c).Create(ctx, v)
	})
	if err != nil {
		v = nil
	}
	return
}

// Update use case applies a partial administrative update on the vid
// vehicle. A patched model name regenerates the slug and a patched
// units value is taken as a trusted absolute count, bypassing the
// delta-based ledger guard.
func (vehicles *UseCase) Update(ctx context.Context, vid uuid.UUID, p repo.VehiclePatch) (v *model.Vehicle, err error) {
	if p.Price != nil && !p.Price.IsPositive() {
		return nil, cerr.BadRequest(ErrNonPositivePrice)
	}
	if p.Units != nil && *p.Units < 0 {
		return nil, cerr.BadRequest(ErrNegativeUnits)
	}
	if p.Mode != nil {
		if err := p.Mode.Validate(); err != nil {
			return nil, cerr.BadRequest(err)
		}
	}
	if p.Status != nil {
		if err := p.Status.Validate(); err != nil {
			return nil, cerr.BadRequest(err)
		}
	}
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, err = vehicles.vehiclesrp.Conn(c).Update(ctx, vid, p)
		return err
	})
	if err != nil {
		v = nil
	}
	return
}

// List use case queries the catalog, normalizing the page size into
// the configured range before delegating to the repository. It
// returns one page of vehicles and the total number of matches.
func (vehicles *UseCase) List(ctx context.Context, q model.VehicleQuery) (vs []model.Vehicle, total int64, err error) {
	if q.Limit <= 0 {
		q.Limit = vehicles.defaultPageSize
	} else if q.Limit > vehicles.maxPageSize {
		q.Limit = vehicles.maxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		vs, total, err = vehicles.vehiclesrp.Conn(c).List(ctx, q)
		return err
	})
	if err != nil {
		vs, total = nil, 0
	}
	return
}

// GetByID use case fetches one vehicle by its identifier.
func (vehicles *UseCase) GetByID(ctx context.Context, vid uuid.UUID) (v *model.Vehicle, err error) {
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, err = vehicles.vehiclesrp.Conn(c).GetByID(ctx, vid)
		return err
	})
	if err != nil {
		v = nil
	}
	return
}

// GetBySlug use case fetches one vehicle by its URL slug.
func (vehicles *UseCase) GetBySlug(ctx context.Context, slug string) (v *model.Vehicle, err error) {
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, err = vehicles.vehiclesrp.Conn(c).GetBySlug(ctx, slug)
		return err
	})
	if err != nil {
		v = nil
	}
	return
}

// AdjustUnits use case applies a delta on the vid vehicle units
// through the inventory ledger. A refused adjustment is reported as a
// conflict error and leaves the counter untouched.
func (vehicles *UseCase) AdjustUnits(ctx context.Context, vid uuid.UUID, delta int) (v *model.Vehicle, err error) {
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, err = vehicles.vehiclesrp.Conn(c).AdjustUnits(ctx, vid, delta)
		return err
	})
	if err != nil {
		v = nil
	}
	return
}

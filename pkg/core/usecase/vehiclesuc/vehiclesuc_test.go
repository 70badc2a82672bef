// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/internal/test/fakerepo"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/momeni/dealerweb/pkg/core/usecase/vehiclesuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(
	t *testing.T, vehicles *fakerepo.Vehicles, opts ...vehiclesuc.Option,
) *vehiclesuc.UseCase {
	uc, err := vehiclesuc.New(fakerepo.Pool{}, vehicles, opts...)
	require.NoError(t, err, "instantiating vehicles use case")
	return uc
}

func TestCreateFillsDefaults(t *testing.T) {
	vehicles := fakerepo.NewVehicles()
	uc := newUseCase(t, vehicles)

	v, err := uc.Create(context.Background(), vehiclesuc.CreateVehicleInput{
		Model: "Ferrari Roma",
		Price: decimal.NewFromInt(250000),
		Mode:  model.ListingModeBuy,
		Units: 1,
	})
	require.NoError(t, err, "creating vehicle")
	assert.Equal(t, "ferrari-roma", v.Slug)
	assert.Equal(t, model.DefaultCategory, v.Category)
	assert.Equal(t, time.Now().Year(), v.Year)
	assert.Equal(t, model.VehicleActive, v.Status)
	assert.NotEqual(t, uuid.Nil, v.VID)
}

func TestCreateValidations(t *testing.T) {
	uc := newUseCase(t, fakerepo.NewVehicles())
	ctx := context.Background()

	for name, in := range map[string]vehiclesuc.CreateVehicleInput{
		"missing model": {
			Price: decimal.NewFromInt(100),
			Mode:  model.ListingModeBuy,
		},
		"non-positive price": {
			Model: "Ferrari Roma",
			Price: decimal.Zero,
			Mode:  model.ListingModeBuy,
		},
		"invalid mode": {
			Model: "Ferrari Roma",
			Price: decimal.NewFromInt(100),
		},
		"negative units": {
			Model: "Ferrari Roma",
			Price: decimal.NewFromInt(100),
			Mode:  model.ListingModeBuy,
			Units: -1,
		},
	} {
		v, err := uc.Create(ctx, in)
		assert.Nil(t, v, name)
		var ce *cerr.Error
		require.ErrorAs(t, err, &ce, name)
		assert.Equal(t, 400, ce.HTTPStatusCode, name)
	}
}

func TestCreateDuplicateSlugConflicts(t *testing.T) {
	uc := newUseCase(t, fakerepo.NewVehicles())
	ctx := context.Background()
	in := vehiclesuc.CreateVehicleInput{
		Model: "Ferrari Roma",
		Price: decimal.NewFromInt(250000),
		Mode:  model.ListingModeBuy,
	}
	_, err := uc.Create(ctx, in)
	require.NoError(t, err)

	v, err := uc.Create(ctx, in)
	assert.Nil(t, v)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 409, ce.HTTPStatusCode)
}

func TestUpdateRegeneratesSlug(t *testing.T) {
	vehicles := fakerepo.NewVehicles()
	uc := newUseCase(t, vehicles)
	ctx := context.Background()

	v, err := uc.Create(ctx, vehiclesuc.CreateVehicleInput{
		Model: "Ferrari Roma",
		Price: decimal.NewFromInt(250000),
		Mode:  model.ListingModeBuy,
	})
	require.NoError(t, err)

	m := "Ferrari Roma Spider"
	v, err = uc.Update(ctx, v.VID, repo.VehiclePatch{Model: &m})
	require.NoError(t, err, "renaming vehicle")
	assert.Equal(t, "ferrari-roma-spider", v.Slug)
}

func TestUpdateValidations(t *testing.T) {
	uc := newUseCase(t, fakerepo.NewVehicles())
	ctx := context.Background()
	vid := uuid.New()
	negUnits := -2
	zeroPrice := decimal.Zero
	badMode := model.ListingModeInvalid

	for name, p := range map[string]repo.VehiclePatch{
		"negative units":     {Units: &negUnits},
		"non-positive price": {Price: &zeroPrice},
		"invalid mode":       {Mode: &badMode},
	} {
		v, err := uc.Update(ctx, vid, p)
		assert.Nil(t, v, name)
		var ce *cerr.Error
		require.ErrorAs(t, err, &ce, name)
		assert.Equal(t, 400, ce.HTTPStatusCode, name)
	}
}

func TestListNormalizesPageSize(t *testing.T) {
	vehicles := fakerepo.NewVehicles()
	uc := newUseCase(
		t, vehicles,
		vehiclesuc.WithDefaultPageSize(12),
		vehiclesuc.WithMaxPageSize(50),
	)
	ctx := context.Background()

	_, _, err := uc.List(ctx, model.VehicleQuery{})
	require.NoError(t, err)
	assert.Equal(t, 12, vehicles.LastQuery.Limit, "default limit")

	_, _, err = uc.List(ctx, model.VehicleQuery{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 50, vehicles.LastQuery.Limit, "clamped limit")

	_, _, err = uc.List(ctx, model.VehicleQuery{Limit: 30, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, 30, vehicles.LastQuery.Limit)
	assert.Equal(t, 0, vehicles.LastQuery.Offset)
}

func TestGetBySlug(t *testing.T) {
	vehicles := fakerepo.NewVehicles()
	uc := newUseCase(t, vehicles)
	ctx := context.Background()

	created, err := uc.Create(ctx, vehiclesuc.CreateVehicleInput{
		Model: "Mercedes C200",
		Price: decimal.NewFromInt(150),
		Mode:  model.ListingModeRent,
		Units: 3,
	})
	require.NoError(t, err)

	v, err := uc.GetBySlug(ctx, "mercedes-c200")
	require.NoError(t, err)
	assert.Equal(t, created.VID, v.VID)

	v, err = uc.GetBySlug(ctx, "no-such-slug")
	assert.Nil(t, v)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 404, ce.HTTPStatusCode)
}

func TestAdjustUnitsConflict(t *testing.T) {
	vehicles := fakerepo.NewVehicles()
	uc := newUseCase(t, vehicles)
	ctx := context.Background()

	created, err := uc.Create(ctx, vehiclesuc.CreateVehicleInput{
		Model: "Mercedes C200",
		Price: decimal.NewFromInt(150),
		Mode:  model.ListingModeRent,
		Units: 1,
	})
	require.NoError(t, err)

	v, err := uc.AdjustUnits(ctx, created.VID, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Units)

	v, err = uc.AdjustUnits(ctx, created.VID, -1)
	assert.Nil(t, v)
	require.ErrorIs(t, err, repo.ErrUnitsConflict)

	v, err = uc.AdjustUnits(ctx, created.VID, +2)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Units)
}

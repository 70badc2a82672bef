// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSlug(t *testing.T) {
	for _, tc := range []struct {
		name, in, want string
	}{
		{"simple", "Ferrari Roma", "ferrari-roma"},
		{"mixed case", "BMW M4 Competition", "bmw-m4-competition"},
		{"extra spaces", "  Audi   RS6  ", "audi-rs6"},
		{"punctuation", "Mercedes-Benz C200", "mercedes-benz-c200"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, model.DeriveSlug(tc.in))
		})
	}
}

func TestDeriveSlugIdempotence(t *testing.T) {
	for _, name := range []string{
		"Ferrari Roma",
		"BMW M4 Competition",
		"Toyota Land Cruiser 300",
	} {
		s := model.DeriveSlug(name)
		assert.Equal(
			t, s, model.DeriveSlug(s),
			"feeding a slug back must not change it",
		)
	}
}

func TestDeriveSlugRenameBack(t *testing.T) {
	orig := model.DeriveSlug("Ferrari Roma")
	renamed := model.DeriveSlug("Ferrari Roma Spider")
	require.NotEqual(t, orig, renamed)
	assert.Equal(
		t, orig, model.DeriveSlug("Ferrari Roma"),
		"renaming a vehicle back must restore its original slug",
	)
}

func TestParseListingMode(t *testing.T) {
	for s, want := range map[string]model.ListingMode{
		"buy":  model.ListingModeBuy,
		"rent": model.ListingModeRent,
		"both": model.ListingModeBoth,
	} {
		m, err := model.ParseListingMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, m)
		assert.Equal(t, s, m.String())
	}
	_, err := model.ParseListingMode("lease")
	assert.ErrorIs(t, err, model.ErrUnknownListingMode)
	assert.Error(t, model.ListingModeInvalid.Validate())
}

func TestParseVehicleStatus(t *testing.T) {
	for s, want := range map[string]model.VehicleStatus{
		"active":   model.VehicleActive,
		"inactive": model.VehicleInactive,
	} {
		v, err := model.ParseVehicleStatus(s)
		require.NoError(t, err)
		assert.Equal(t, want, v)
		assert.Equal(t, s, v.String())
	}
	_, err := model.ParseVehicleStatus("archived")
	assert.ErrorIs(t, err, model.ErrUnknownVehicleStatus)
}

func TestParseVehicleSort(t *testing.T) {
	assert.Equal(
		t, model.VehicleSortPriceAsc, model.ParseVehicleSort("price-asc"),
	)
	assert.Equal(
		t, model.VehicleSortPriceDesc,
		model.ParseVehicleSort("price-desc"),
	)
	// unknown sort orders fall back to the recent-first default
	assert.Equal(
		t, model.VehicleSortRecent, model.ParseVehicleSort("oldest"),
	)
	assert.Equal(
		t, model.VehicleSortRecent, model.ParseVehicleSort(""),
	)
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// The dealership domain consists of the Vehicle entity (the catalog
// root which owns the contended units counter), the Order entity
// (a purchase request holding one unit), and the Booking entity
// (a test drive request holding one unit until it is released once).
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// DefaultCategory is used for vehicles which are created without an
// explicit category, so older records never expose an empty category.
const DefaultCategory = "general"

// Vehicle models one sellable/rentable vehicle listing. The Units
// field counts the on-hand inventory and may never drop below zero.
// It is owned by the inventory ledger (see the repo.Vehicles interface)
// and may not be written by the order or booking flows directly.
type Vehicle struct {
	VID      uuid.UUID       // unique vehicle identifier
	Model    string          // display model name
	Slug     string          // URL slug, derived from Model
	Price    decimal.Decimal // listing price, must be positive
	Currency string          // ISO-4217 currency code
	Mode     ListingMode     // buy, rent, or both

	Category  string   // sedan, suv, truck, ev, ... or "general"
	Trim      string
	Year      int
	Location  string
	Condition string // new, used, or certified (free-form metadata)
	Rating    float64
	Reviews   int
	Colors    []string
	Images    []string
	Details   string

	Units  int           // on-hand inventory, >= 0
	Status VehicleStatus // active or inactive

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveSlug computes the URL slug of a vehicle model name.
// The derivation is deterministic and idempotent, that is, feeding a
// derived slug back into DeriveSlug returns the same slug, so renaming
// a vehicle and renaming it back restores its original slug.
func DeriveSlug(modelName string) string {
	return slug.Make(modelName)
}

// ListingMode specifies how a vehicle is offered and accepts the
// buy, rent, and both values. Although this enum is numeric, it is
// (de)serialized as a string for readability in the adapter layer.
type ListingMode int

// Valid values for the ListingMode enum.
const (
	ListingModeInvalid ListingMode = iota // zero value is invalid

	ListingModeBuy
	ListingModeRent
	ListingModeBoth
)

// ErrUnknownListingMode indicates that a given string may not be
// parsed as a valid/known listing mode.
var ErrUnknownListingMode = errors.New("unknown listing mode")

// ListingModeError indicates an invalid listing mode, containing the
// invalid mode as an integer.
type ListingModeError int

// Error implements the error interface, returning a string
// representation of the ListingModeError.
func (e ListingModeError) Error() string {
	return fmt.Sprintf("invalid listing mode: %d", e)
}

// Validate returns nil if ListingMode value is valid. For invalid
// values, an instance of the ListingModeError will be returned.
func (m ListingMode) Validate() error {
	switch m {
	case ListingModeBuy, ListingModeRent, ListingModeBoth:
		return nil
	default:
		return ListingModeError(m)
	}
}

// String converts the ListingMode enum to a string, helping to
// serialize it for transmission to web clients. Invalid listing mode
// causes a panic.
func (m ListingMode) String() string {
	switch m {
	case ListingModeBuy:
		return "buy"
	case ListingModeRent:
		return "rent"
	case ListingModeBoth:
		return "both"
	default:
		panic(ListingModeError(m))
	}
}

// ParseListingMode parses the given string and returns a ListingMode,
// helping to deserialize it when reading a REST API request.
// For invalid strings, ListingModeInvalid and ErrUnknownListingMode
// will be returned.
func ParseListingMode(m string) (ListingMode, error) {
	switch m {
	case "buy":
		return ListingModeBuy, nil
	case "rent":
		return ListingModeRent, nil
	case "both":
		return ListingModeBoth, nil
	default:
		return ListingModeInvalid, ErrUnknownListingMode
	}
}

// VehicleStatus specifies the lifecycle status of a vehicle listing.
// Inactive vehicles are hidden from the public catalog and refuse new
// orders and bookings, but existing orders/bookings keep referring to
// them through their snapshotted fields.
type VehicleStatus int

// Valid values for the VehicleStatus enum.
const (
	VehicleStatusInvalid VehicleStatus = iota // zero value is invalid

	VehicleActive
	VehicleInactive
)

// ErrUnknownVehicleStatus indicates that a given string may not be
// parsed as a valid/known vehicle status.
var ErrUnknownVehicleStatus = errors.New("unknown vehicle status")

// VehicleStatusError indicates an invalid vehicle status, containing
// the invalid status as an integer.
type VehicleStatusError int

// Error implements the error interface, returning a string
// representation of the VehicleStatusError.
func (e VehicleStatusError) Error() string {
	return fmt.Sprintf("invalid vehicle status: %d", e)
}

// Validate returns nil if VehicleStatus value is valid. For invalid
// values, an instance of the VehicleStatusError will be returned.
func (s VehicleStatus) Validate() error {
	switch s {
	case VehicleActive, VehicleInactive:
		return nil
	default:
		return VehicleStatusError(s)
	}
}

// String converts the VehicleStatus enum to a string.
// Invalid vehicle status causes a panic.
func (s VehicleStatus) String() string {
	switch s {
	case VehicleActive:
		return "active"
	case VehicleInactive:
		return "inactive"
	default:
		panic(VehicleStatusError(s))
	}
}

// ParseVehicleStatus parses the given string and returns a
// VehicleStatus. For invalid strings, VehicleStatusInvalid and
// ErrUnknownVehicleStatus will be returned.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch s {
	case "active":
		return VehicleActive, nil
	case "inactive":
		return VehicleInactive, nil
	default:
		return VehicleStatusInvalid, ErrUnknownVehicleStatus
	}
}

// VehicleSort enumerates the supported catalog sort orders.
type VehicleSort int

// Valid values for the VehicleSort enum. The zero value asks for the
// default ordering (most recently created listings first).
const (
	VehicleSortRecent VehicleSort = iota
	VehicleSortPriceAsc
	VehicleSortPriceDesc
)

// ParseVehicleSort parses the given string and returns a VehicleSort.
// Unknown strings fall back to VehicleSortRecent since the sort order
// is a presentation preference, not a correctness concern.
func ParseVehicleSort(s string) VehicleSort {
	switch s {
	case "price-asc":
		return VehicleSortPriceAsc
	case "price-desc":
		return VehicleSortPriceDesc
	default:
		return VehicleSortRecent
	}
}

// VehicleQuery describes a catalog query. Zero-valued fields are not
// filtered on. Limit is clamped into the [1, 200] range, defaulting
// to 24, and Offset is clamped to be non-negative by the repository.
type VehicleQuery struct {
	Status      VehicleStatus // VehicleStatusInvalid matches any status
	Slug        string
	Category    string
	Mode        ListingMode // ListingModeInvalid matches any mode
	Search      string      // matches model, trim, category, location
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	YearMin     *int
	YearMax     *int
	Conditions  []string
	Location    string // case-insensitive substring
	InStockOnly bool
	Sort        VehicleSort
	Limit       int
	Offset      int
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrs realizes the vehicles resource, exposing the
// public catalog browsing REST APIs and the administrative listing
// management REST APIs, delegating to the vehicles use cases.
package vehiclesrs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/usecase/vehiclesuc"
)

type resource struct {
	vehicles *vehiclesuc.UseCase

	// adminView exposes inactive listings too; the public catalog
	// only ever serves active vehicles.
	adminView bool
}

// RegisterPublic instantiates a resource adapting the vehicles use
// case instance with the public catalog REST APIs including:
//  1. GET request to /api/dealerweb/v1/vehicles
//     in order to query the active catalog with optional filters.
//  2. GET request to /api/dealerweb/v1/vehicles/:slug
//     in order to fetch one active vehicle by its slug.
func RegisterPublic(r *gin.RouterGroup, vehicles *vehiclesuc.UseCase) {
	rs := &resource{vehicles: vehicles}
	r.GET("vehicles", rs.ListVehicles)
	r.GET("vehicles/:slug", rs.FetchVehicle)
}

// RegisterAdmin instantiates a resource adapting the vehicles use
// case instance with the administrative REST APIs including:
//  1. GET request to /api/dealerweb/v1/admin/vehicles
//     in order to query listings of any status.
//  2. POST request to /api/dealerweb/v1/admin/vehicles
//     in order to register a new listing.
//  3. PATCH request to /api/dealerweb/v1/admin/vehicles/:vid
//     in order to partially update a listing.
func RegisterAdmin(r *gin.RouterGroup, vehicles *vehiclesuc.UseCase) {
	rs := &resource{vehicles: vehicles, adminView: true}
	r.GET("vehicles", rs.ListVehicles)
	r.POST("vehicles", rs.CreateVehicle)
	r.PATCH("vehicles/:vid", rs.UpdateVehicle)
}

func (rs *resource) ListVehicles(c *gin.Context) {
	q := rs.DserVehicleQueryReq(c)
	if q == nil {
		return
	}
	if !rs.adminView {
		q.Status = model.VehicleActive
	}
	vs, total, err := rs.vehicles.List(c, *q)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerVehiclesPage(vs, total))
}

func (rs *resource) FetchVehicle(c *gin.Context) {
	slug := c.Param("slug")
	v, err := rs.vehicles.GetBySlug(c, slug)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if !rs.adminView && v.Status != model.VehicleActive {
		serdser.SerErr(c, cerr.NotFound(
			errors.New("no vehicle: "+slug),
		))
		return
	}
	c.JSON(http.StatusOK, SerVehicle(v))
}

func (rs *resource) CreateVehicle(c *gin.Context) {
	in := rs.DserCreateVehicleReq(c)
	if in == nil {
		return
	}
	v, err := rs.vehicles.Create(c, *in)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerVehicle(v))
}

func (rs *resource) UpdateVehicle(c *gin.Context) {
	vid, p := rs.DserUpdateVehicleReq(c)
	if p == nil {
		return
	}
	v, err := rs.vehicles.Update(c, vid, *p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerVehicle(v))
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsrs realizes the test drives resource, accepting the
// public booking REST APIs and the administrative booking management
// REST APIs and delegating them to the bookings use cases.
package bookingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealerweb/pkg/core/usecase/bookingsuc"
)

type resource struct {
	bookings *bookingsuc.UseCase
}

// RegisterPublic instantiates a resource adapting the bookings use
// case instance with the public REST APIs including:
//  1. POST request to /api/dealerweb/v1/testdrives
//     in order to book a test drive, reserving one inventory unit.
//  2. GET request to /api/dealerweb/v1/testdrives?email=...
//     in order to list the bookings of one customer.
func RegisterPublic(r *gin.RouterGroup, bookings *bookingsuc.UseCase) {
	rs := &resource{bookings: bookings}
	r.POST("testdrives", rs.CreateBooking)
	r.GET("testdrives", rs.ListBookingsForEmail)
}

// RegisterAdmin instantiates a resource adapting the bookings use
// case instance with the administrative REST APIs including:
//  1. GET request to /api/dealerweb/v1/admin/testdrives
//     in order to list bookings, optionally filtered.
//  2. GET request to /api/dealerweb/v1/admin/testdrives/:bid
//     in order to fetch one booking.
//  3. PATCH request to /api/dealerweb/v1/admin/testdrives/:bid
//     in order to move a booking through its lifecycle, returning the
//     reserved unit the first time it is cancelled or completed.
func RegisterAdmin(r *gin.RouterGroup, bookings *bookingsuc.UseCase) {
	rs := &resource{bookings: bookings}
	r.GET("testdrives", rs.ListBookings)
	r.GET("testdrives/:bid", rs.FetchBooking)
	r.PATCH("testdrives/:bid", rs.UpdateBooking)
}

func (rs *resource) CreateBooking(c *gin.Context) {
	in := rs.DserCreateBookingReq(c)
	if in == nil {
		return
	}
	b, err := rs.bookings.Create(c, *in)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerBooking(b))
}

func (rs *resource) ListBookingsForEmail(c *gin.Context) {
	email, ok := rs.DserBookingEmail(c)
	if !ok {
		return
	}
	bs, err := rs.bookings.ListForEmail(c, email)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerBookings(bs))
}

func (rs *resource) ListBookings(c *gin.Context) {
	f := rs.DserBookingListReq(c)
	if f == nil {
		return
	}
	bs, total, err := rs.bookings.List(c, *f)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerBookingsPage(bs, total))
}

func (rs *resource) FetchBooking(c *gin.Context) {
	bid, ok := rs.DserBookingID(c)
	if !ok {
		return
	}
	b, err := rs.bookings.Get(c, bid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerBooking(b))
}

func (rs *resource) UpdateBooking(c *gin.Context) {
	bid, req := rs.DserUpdateBookingReq(c)
	if req == nil {
		return
	}
	b, err := rs.bookings.UpdateStatus(c, bid, req.Status, req.Notes)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerBooking(b))
}

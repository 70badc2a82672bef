// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ordersrs realizes the orders resource, accepting the public
// purchase REST API and the administrative order management REST APIs
// and delegating them to the orders use cases.
package ordersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealerweb/pkg/core/usecase/ordersuc"
)

type resource struct {
	orders *ordersuc.UseCase
}

// RegisterPublic instantiates a resource adapting the orders use case
// instance with the public REST APIs including:
//  1. POST request to /api/dealerweb/v1/orders
//     in order to purchase a vehicle, reserving one inventory unit.
func RegisterPublic(r *gin.RouterGroup, orders *ordersuc.UseCase) {
	rs := &resource{orders: orders}
	r.POST("orders", rs.CreateOrder)
}

// RegisterAdmin instantiates a resource adapting the orders use case
// instance with the administrative REST APIs including:
//  1. GET request to /api/dealerweb/v1/admin/orders
//     in order to list orders, optionally filtered.
//  2. GET request to /api/dealerweb/v1/admin/orders/:oid
//     in order to fetch one order.
//  3. PATCH request to /api/dealerweb/v1/admin/orders/:oid
//     in order to move an order through its lifecycle, applying the
//     corresponding inventory side effects.
func RegisterAdmin(r *gin.RouterGroup, orders *ordersuc.UseCase) {
	rs := &resource{orders: orders}
	r.GET("orders", rs.ListOrders)
	r.GET("orders/:oid", rs.FetchOrder)
	r.PATCH("orders/:oid", rs.UpdateOrder)
}

func (rs *resource) CreateOrder(c *gin.Context) {
	in := rs.DserCreateOrderReq(c)
	if in == nil {
		return
	}
	o, err := rs.orders.Create(c, *in)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerOrder(o))
}

func (rs *resource) ListOrders(c *gin.Context) {
	f := rs.DserOrderListReq(c)
	if f == nil {
		return
	}
	os, total, err := rs.orders.List(c, *f)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerOrdersPage(os, total))
}

func (rs *resource) FetchOrder(c *gin.Context) {
	oid, ok := rs.DserOrderID(c)
	if !ok {
		return
	}
	o, err := rs.orders.Get(c, oid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerOrder(o))
}

func (rs *resource) UpdateOrder(c *gin.Context) {
	oid, req := rs.DserUpdateOrderReq(c)
	if req == nil {
		return
	}
	o, err := rs.orders.UpdateStatus(c, oid, req.Status, req.Tracking)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerOrder(o))
}

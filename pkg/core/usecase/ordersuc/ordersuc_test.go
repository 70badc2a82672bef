// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ordersuc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/internal/test/fakerepo"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/momeni/dealerweb/pkg/core/usecase/ordersuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVehicle(units int, status model.VehicleStatus) *model.Vehicle {
	return &model.Vehicle{
		VID:      uuid.New(),
		Model:    "Ferrari Roma",
		Slug:     "ferrari-roma",
		Price:    decimal.NewFromInt(250000),
		Currency: "USD",
		Mode:     model.ListingModeBuy,
		Category: "sports",
		Year:     2024,
		Units:    units,
		Status:   status,
	}
}

func newOrdersUseCase(
	t *testing.T, vehicles *fakerepo.Vehicles, orders *fakerepo.Orders,
) *ordersuc.UseCase {
	uc, err := ordersuc.New(
		fakerepo.Pool{}, orders, vehicles, fakerepo.NewCounters(),
	)
	require.NoError(t, err, "instantiating orders use case")
	return uc
}

func TestCreateOrderReservesOneUnit(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(3, model.VehicleActive)
	vehicles := fakerepo.NewVehicles(v)
	orders := fakerepo.NewOrders()
	uc := newOrdersUseCase(t, vehicles, orders)

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
		Address:    "1 Main St",
	})
	require.NoError(t, err, "creating order")
	assert.Equal(t, model.OrderPending, o.Status)
	assert.Equal(t, "ORD-1001", o.Number)
	assert.Equal(t, v.VID, o.VehicleID)
	assert.Equal(t, "Ferrari Roma", o.VehicleModel)
	assert.True(t, o.Price.Equal(v.Price), "price snapshot")
	assert.Equal(t, "USD", o.Currency)
	assert.Equal(t, 2, vehicles.Units(v.VID), "one unit reserved")
	assert.Equal(t, 1, orders.Len())
}

func TestCreateOrderSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(5, model.VehicleActive)
	vehicles := fakerepo.NewVehicles(v)
	uc := newOrdersUseCase(t, vehicles, fakerepo.NewOrders())

	in := ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
	}
	o1, err := uc.Create(ctx, in)
	require.NoError(t, err)
	o2, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", o1.Number)
	assert.Equal(t, "ORD-1002", o2.Number)
	assert.Equal(t, 3, vehicles.Units(v.VID))
}

func TestCreateOrderNumberOptions(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(1, model.VehicleActive)
	uc, err := ordersuc.New(
		fakerepo.Pool{},
		fakerepo.NewOrders(),
		fakerepo.NewVehicles(v),
		fakerepo.NewCounters(),
		ordersuc.WithNumberPrefix("SO-"),
		ordersuc.WithNumberBase(500),
	)
	require.NoError(t, err)

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
	})
	require.NoError(t, err)
	assert.Equal(t, "SO-501", o.Number)
}

func TestCreateOrderOutOfStock(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(0, model.VehicleActive)
	vehicles := fakerepo.NewVehicles(v)
	orders := fakerepo.NewOrders()
	uc := newOrdersUseCase(t, vehicles, orders)

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
	})
	assert.Nil(t, o)
	require.ErrorIs(t, err, ordersuc.ErrOutOfStock)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 400, ce.HTTPStatusCode)
	assert.Equal(t, 0, orders.Len(), "no order record left behind")
	assert.Equal(t, 0, vehicles.Units(v.VID))
}

func TestCreateOrderInactiveVehicle(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(4, model.VehicleInactive)
	vehicles := fakerepo.NewVehicles(v)
	orders := fakerepo.NewOrders()
	uc := newOrdersUseCase(t, vehicles, orders)

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
	})
	assert.Nil(t, o)
	require.ErrorIs(t, err, ordersuc.ErrVehicleUnavailable)
	assert.Equal(t, 0, orders.Len())
	assert.Equal(t, 4, vehicles.Units(v.VID), "no unit reserved")
}

func TestCreateOrderUnknownVehicle(t *testing.T) {
	ctx := context.Background()
	uc := newOrdersUseCase(
		t, fakerepo.NewVehicles(), fakerepo.NewOrders(),
	)

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  uuid.New(),
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
	})
	assert.Nil(t, o)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 404, ce.HTTPStatusCode)
}

func TestCreateOrderMissingBuyer(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(1, model.VehicleActive)
	uc := newOrdersUseCase(
		t, fakerepo.NewVehicles(v), fakerepo.NewOrders(),
	)

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID: v.VID,
	})
	assert.Nil(t, o)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 400, ce.HTTPStatusCode)
}

func TestCancellationReturnsUnitOnce(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(1, model.VehicleActive)
	vehicles := fakerepo.NewVehicles(v)
	uc := newOrdersUseCase(t, vehicles, fakerepo.NewOrders())

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
	})
	require.NoError(t, err)
	require.Equal(t, 0, vehicles.Units(v.VID))

	o, err = uc.UpdateStatus(ctx, o.OID, model.OrderCancelled, nil)
	require.NoError(t, err, "cancelling order")
	assert.Equal(t, model.OrderCancelled, o.Status)
	assert.Equal(t, 1, vehicles.Units(v.VID), "unit released")

	// a repeated cancellation must not release another unit
	o, err = uc.UpdateStatus(ctx, o.OID, model.OrderCancelled, nil)
	require.NoError(t, err, "re-cancelling order")
	assert.Equal(t, model.OrderCancelled, o.Status)
	assert.Equal(t, 1, vehicles.Units(v.VID))
}

func TestUncancellationReservesUnitAgain(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(1, model.VehicleActive)
	vehicles := fakerepo.NewVehicles(v)
	uc := newOrdersUseCase(t, vehicles, fakerepo.NewOrders())

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
	})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, o.OID, model.OrderCancelled, nil)
	require.NoError(t, err)
	require.Equal(t, 1, vehicles.Units(v.VID))

	o, err = uc.UpdateStatus(ctx, o.OID, model.OrderPaid, nil)
	require.NoError(t, err, "reinstating order as paid")
	assert.Equal(t, model.OrderPaid, o.Status)
	assert.Equal(t, 0, vehicles.Units(v.VID), "unit re-reserved")
}

func TestUncancellationRefusedWhenUnitIsTaken(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(1, model.VehicleActive)
	vehicles := fakerepo.NewVehicles(v)
	orders := fakerepo.NewOrders()
	uc := newOrdersUseCase(t, vehicles, orders)

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
	})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, o.OID, model.OrderCancelled, nil)
	require.NoError(t, err)

	// the released unit is reserved by a second order meanwhile
	_, err = uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "other@example.com",
		BuyerName:  "Buyer Two",
	})
	require.NoError(t, err)
	require.Equal(t, 0, vehicles.Units(v.VID))

	updated, err := uc.UpdateStatus(ctx, o.OID, model.OrderPending, nil)
	assert.Nil(t, updated)
	require.ErrorIs(t, err, repo.ErrUnitsConflict)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 409, ce.HTTPStatusCode)

	kept, err := uc.Get(ctx, o.OID)
	require.NoError(t, err)
	assert.Equal(
		t, model.OrderCancelled, kept.Status,
		"refused reinstation leaves the order cancelled",
	)
}

func TestNonCancellationTransitionsLeaveInventoryAlone(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(2, model.VehicleActive)
	vehicles := fakerepo.NewVehicles(v)
	uc := newOrdersUseCase(t, vehicles, fakerepo.NewOrders())

	o, err := uc.Create(ctx, ordersuc.CreateOrderInput{
		VehicleID:  v.VID,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Buyer One",
	})
	require.NoError(t, err)
	require.Equal(t, 1, vehicles.Units(v.VID))

	tracking := "TRK-42"
	for _, to := range []model.OrderStatus{
		model.OrderPaid, model.OrderShipped, model.OrderDelivered,
	} {
		o, err = uc.UpdateStatus(ctx, o.OID, to, &tracking)
		require.NoError(t, err, "transition to %v", to)
		assert.Equal(t, to, o.Status)
		assert.Equal(t, 1, vehicles.Units(v.VID))
	}
	assert.Equal(t, "TRK-42", o.Tracking)
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	ctx := context.Background()
	uc := newOrdersUseCase(
		t, fakerepo.NewVehicles(), fakerepo.NewOrders(),
	)

	o, err := uc.UpdateStatus(
		ctx, uuid.New(), model.OrderStatusInvalid, nil,
	)
	assert.Nil(t, o)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 400, ce.HTTPStatusCode)
	assert.True(
		t, errors.Is(err, model.ErrUnknownOrderStatus),
		"expected unknown order status, got: %v", err,
	)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	ctx := context.Background()
	uc := newOrdersUseCase(
		t, fakerepo.NewVehicles(), fakerepo.NewOrders(),
	)

	o, err := uc.UpdateStatus(ctx, uuid.New(), model.OrderPaid, nil)
	assert.Nil(t, o)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 404, ce.HTTPStatusCode)
}

func TestListDefaultsLimit(t *testing.T) {
	ctx := context.Background()
	v := newVehicle(3, model.VehicleActive)
	uc := newOrdersUseCase(
		t, fakerepo.NewVehicles(v), fakerepo.NewOrders(),
	)
	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, ordersuc.CreateOrderInput{
			VehicleID:  v.VID,
			BuyerEmail: "buyer@example.com",
			BuyerName:  "Buyer One",
		})
		require.NoError(t, err)
	}

	os, total, err := uc.List(ctx, repo.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, os, 3)

	os, total, err = uc.List(ctx, repo.OrderFilter{
		Status: model.OrderCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, os)
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ordersuc contains the orders UseCase which turns purchase
// intents into durable order records while coordinating with the
// inventory ledger. An order reserves one vehicle unit when it is
// created, releases it when it is cancelled, and re-reserves it when
// an administrative update moves it out of the cancelled status again
// (which may be refused if the unit has been reallocated meanwhile).
package ordersuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/log"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
)

// ErrVehicleUnavailable indicates that the referenced vehicle does
// not accept new purchase or booking requests because its listing is
// not active.
var ErrVehicleUnavailable = errors.New("vehicle not available")

// ErrOutOfStock indicates that the referenced vehicle has no on-hand
// units left to reserve.
var ErrOutOfStock = errors.New("out of stock")

// UseCase represents an orders use case. It holds a database
// connection pool and the orders, vehicles, and counters repository
// instances (to be guided with the DB pool). The vehicles repository
// is consulted only through its ledger and read operations; the
// orders flows never write the units counter directly.
type UseCase struct {
	pool       repo.Pool
	ordersrp   repo.Orders
	vehiclesrp repo.Vehicles
	countersrp repo.Counters

	numberPrefix string
	numberBase   int64
}

// New instantiates an orders use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, o repo.Orders, v repo.Vehicles, n repo.Counters,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool: p, ordersrp: o, vehiclesrp: v, countersrp: n,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.numberPrefix == "" {
		uc.numberPrefix = "ORD-"
	}
	if uc.numberBase == 0 {
		uc.numberBase = 1000
	}
	return uc, nil
}

// CreateOrderInput carries the purchase request parameters.
type CreateOrderInput struct {
	VehicleID  uuid.UUID
	BuyerEmail string
	BuyerName  string
	Address    string
	Notes      string
}

// Create use case turns a purchase intent into a pending order.
// The vehicle must exist, be active, and have at least one unit on
// hand; then one unit is reserved through the ledger and the order is
// persisted with a fresh sequential number and a snapshot of the
// vehicle model, price, and currency. The reservation and the insert
// run in one transaction, so a refused reservation (conflict) leaves
// no order record behind and a failed insert returns the unit.
func (orders *UseCase) Create(ctx context.Context, in CreateOrderInput) (o *model.Order, err error) {
	if in.BuyerEmail == "" || in.BuyerName == "" {
		return nil, cerr.BadRequest(errors.New("buyer email and name are required"))
	}
	err = orders.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			vq := orders.vehiclesrp.Tx(tx)
			v, err := vq.GetByID(ctx, in.VehicleID)
			if err != nil {
				return err
			}
			if v.Status != model.VehicleActive {
				return cerr.BadRequest(ErrVehicleUnavailable)
			}
			if v.Units <= 0 {
				return cerr.BadRequest(ErrOutOfStock)
			}
			if _, err := vq.AdjustUnits(ctx, in.VehicleID, -1); err != nil {
				return err
			}
			seq, err := orders.countersrp.Tx(tx).Next(ctx, repo.CounterOrders)
			if err != nil {
				return fmt.Errorf("next order number: %w", err)
			}
			o = &model.Order{
				OID:          uuid.New(),
				Number:       fmt.Sprintf("%s%d", orders.numberPrefix, orders.numberBase+seq),
				VehicleID:    v.VID,
				VehicleModel: v.Model,
				Price:        v.Price,
				Currency:     v.Currency,
				BuyerEmail:   in.BuyerEmail,
				BuyerName:    in.BuyerName,
				Address:      in.Address,
				Notes:        in.Notes,
				Status:       model.OrderPending,
			}
			return orders.ordersrp.Tx(tx).Create(ctx, o)
		})
	})
	if err != nil {
		o = nil
		return
	}
	log.Info(ctx, "order created",
		log.UUID("oid", o.OID),
		log.UUID("vid", o.VehicleID),
	)
	return
}

// UpdateStatus use case applies an administrative status update on
// the oid order, together with its inventory side effect as computed
// by the model.OrderInventoryEffect table. The order row is locked
// first, so the old status is read race-free, and the ledger
// adjustment and the status write commit or roll back together.
// A re-reservation (leaving cancelled) may be refused with a conflict
// error when the unit has been taken meanwhile; in that case the
// order is left untouched in its cancelled status.
func (orders *UseCase) UpdateStatus(ctx context.Context, oid uuid.UUID, to model.OrderStatus, tracking *string) (o *model.Order, err error) {
	if err := to.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = orders.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			oq := orders.ordersrp.Tx(tx)
			old, err := oq.GetByIDForUpdate(ctx, oid)
			if err != nil {
				return err
			}
			effect := model.OrderInventoryEffect(old.Status, to)
			if effect != 0 {
				vq := orders.vehiclesrp.Tx(tx)
				if _, err := vq.AdjustUnits(ctx, old.VehicleID, effect); err != nil {
					return err
				}
			}
			o, err = oq.UpdateStatus(ctx, oid, to, tracking)
			return err
		})
	})
	if err != nil {
		o = nil
	}
	return
}

// Get use case fetches one order by its identifier.
func (orders *UseCase) Get(ctx context.Context, oid uuid.UUID) (o *model.Order, err error) {
	err = orders.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		o, err = orders.ordersrp.Conn(c).GetByID(ctx, oid)
		return err
	})
	if err != nil {
		o = nil
	}
	return
}

// List use case queries the administrative orders listing, newest
// first, returning one page of orders and the total match count.
func (orders *UseCase) List(ctx context.Context, f repo.OrderFilter) (os []model.Order, total int64, err error) {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	err = orders.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		os, total, err = orders.ordersrp.Conn(c).List(ctx, f)
		return err
	})
	if err != nil {
		os, total = nil, 0
	}
	return
}

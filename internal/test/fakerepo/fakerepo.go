// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakerepo is an internal helper for the use case test
// packages, providing in-memory implementations of the repository
// interfaces. The fake connection pool hands out fake connections and
// transactions which cannot run SQL statements; the entity fakes keep
// their records in maps instead. The inventory adjustment fake applies
// the same conditional check as the real repository, so refused
// reservations can be provoked in unit tests, but no rollback takes
// place on a failed fake transaction (transactional atomicity is
// covered by the integration test suites).
package fakerepo

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
)

// Pool is a repo.Pool which hands out fake connections without any
// backing database.
type Pool struct{}

func (Pool) Conn(ctx context.Context, f repo.ConnHandler) error {
	return f(ctx, conn{})
}

func (Pool) Close() error {
	return nil
}

type queryer struct{}

func (queryer) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("fakerepo cannot run SQL statements")
}

func (queryer) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("fakerepo cannot run SQL statements")
}

type conn struct {
	queryer
}

func (conn) IsConn() {}

func (conn) Tx(ctx context.Context, f repo.TxHandler) error {
	return f(ctx, tx{})
}

type tx struct {
	queryer
}

func (tx) IsTx() {}

// Vehicles is an in-memory repo.Vehicles implementation.
type Vehicles struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.Vehicle

	// LastQuery records the last List argument, so tests can assert
	// the query normalization which use cases apply.
	LastQuery model.VehicleQuery
}

func NewVehicles(vs ...*model.Vehicle) *Vehicles {
	f := &Vehicles{byID: make(map[uuid.UUID]*model.Vehicle)}
	for _, v := range vs {
		f.Put(v)
	}
	return f
}

// Put stores a deep-enough copy of the v vehicle.
func (f *Vehicles) Put(v *model.Vehicle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *v
	f.byID[v.VID] = &c
}

// Units returns the current units count of the vid vehicle.
func (f *Vehicles) Units(vid uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.byID[vid]; ok {
		return v.Units
	}
	return -1
}

func (f *Vehicles) Conn(repo.Conn) repo.VehiclesConnQueryer {
	return vehiclesQueryer{f}
}

func (f *Vehicles) Tx(repo.Tx) repo.VehiclesTxQueryer {
	return vehiclesQueryer{f}
}

type vehiclesQueryer struct {
	f *Vehicles
}

func (q vehiclesQueryer) Create(_ context.Context, v *model.Vehicle) error {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	for _, o := range q.f.byID {
		if o.Slug == v.Slug {
			return cerr.Conflict(errors.New("duplicate slug"))
		}
	}
	c := *v
	q.f.byID[v.VID] = &c
	return nil
}

func (q vehiclesQueryer) Update(_ context.Context, vid uuid.UUID, p repo.VehiclePatch) (*model.Vehicle, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	v, ok := q.f.byID[vid]
	if !ok {
		return nil, cerr.NotFound(errors.New("no vehicle"))
	}
	if p.Model != nil {
		v.Model = *p.Model
		v.Slug = model.DeriveSlug(*p.Model)
	}
	if p.Price != nil {
		v.Price = *p.Price
	}
	if p.Units != nil {
		v.Units = *p.Units
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	c := *v
	return &c, nil
}

func (q vehiclesQueryer) GetByID(_ context.Context, vid uuid.UUID) (*model.Vehicle, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	v, ok := q.f.byID[vid]
	if !ok {
		return nil, cerr.NotFound(errors.New("no vehicle"))
	}
	c := *v
	return &c, nil
}

func (q vehiclesQueryer) GetBySlug(_ context.Context, slug string) (*model.Vehicle, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	for _, v := range q.f.byID {
		if v.Slug == slug {
			c := *v
			return &c, nil
		}
	}
	return nil, cerr.NotFound(errors.New("no vehicle"))
}

func (q vehiclesQueryer) List(_ context.Context, query model.VehicleQuery) ([]model.Vehicle, int64, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	q.f.LastQuery = query
	var vs []model.Vehicle
	for _, v := range q.f.byID {
		if query.Status != model.VehicleStatusInvalid &&
			v.Status != query.Status {
			continue
		}
		if query.InStockOnly && v.Units <= 0 {
			continue
		}
		vs = append(vs, *v)
	}
	return vs, int64(len(vs)), nil
}

func (q vehiclesQueryer) AdjustUnits(_ context.Context, vid uuid.UUID, delta int) (*model.Vehicle, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	floor := 0
	if delta < 0 {
		floor = -delta
	}
	v, ok := q.f.byID[vid]
	if !ok || v.Units < floor {
		return nil, cerr.Conflict(repo.ErrUnitsConflict)
	}
	v.Units += delta
	c := *v
	return &c, nil
}

// Orders is an in-memory repo.Orders implementation.
type Orders struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.Order
}

func NewOrders() *Orders {
	return &Orders{byID: make(map[uuid.UUID]*model.Order)}
}

// Len returns the number of stored orders.
func (f *Orders) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

func (f *Orders) Conn(repo.Conn) repo.OrdersConnQueryer {
	return ordersQueryer{f}
}

func (f *Orders) Tx(repo.Tx) repo.OrdersTxQueryer {
	return ordersQueryer{f}
}

type ordersQueryer struct {
	f *Orders
}

func (q ordersQueryer) Create(_ context.Context, o *model.Order) error {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	c := *o
	q.f.byID[o.OID] = &c
	return nil
}

func (q ordersQueryer) GetByID(_ context.Context, oid uuid.UUID) (*model.Order, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	o, ok := q.f.byID[oid]
	if !ok {
		return nil, cerr.NotFound(errors.New("no order"))
	}
	c := *o
	return &c, nil
}

func (q ordersQueryer) GetByIDForUpdate(ctx context.Context, oid uuid.UUID) (*model.Order, error) {
	return q.GetByID(ctx, oid)
}

func (q ordersQueryer) UpdateStatus(_ context.Context, oid uuid.UUID, status model.OrderStatus, tracking *string) (*model.Order, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	o, ok := q.f.byID[oid]
	if !ok {
		return nil, cerr.NotFound(errors.New("no order"))
	}
	o.Status = status
	if tracking != nil {
		o.Tracking = *tracking
	}
	c := *o
	return &c, nil
}

func (q ordersQueryer) List(_ context.Context, f repo.OrderFilter) ([]model.Order, int64, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	var os []model.Order
	for _, o := range q.f.byID {
		if f.Status != model.OrderStatusInvalid &&
			o.Status != f.Status {
			continue
		}
		os = append(os, *o)
	}
	return os, int64(len(os)), nil
}

// Bookings is an in-memory repo.Bookings implementation.
type Bookings struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*model.Booking
}

func NewBookings() *Bookings {
	return &Bookings{byID: make(map[uuid.UUID]*model.Booking)}
}

// Len returns the number of stored bookings.
func (f *Bookings) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

func (f *Bookings) Conn(repo.Conn) repo.BookingsConnQueryer {
	return bookingsQueryer{f}
}

func (f *Bookings) Tx(repo.Tx) repo.BookingsTxQueryer {
	return bookingsQueryer{f}
}

type bookingsQueryer struct {
	f *Bookings
}

func (q bookingsQueryer) Create(_ context.Context, b *model.Booking) error {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	c := *b
	q.f.byID[b.BID] = &c
	return nil
}

func (q bookingsQueryer) GetByID(_ context.Context, bid uuid.UUID) (*model.Booking, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	b, ok := q.f.byID[bid]
	if !ok {
		return nil, cerr.NotFound(errors.New("no booking"))
	}
	c := *b
	return &c, nil
}

func (q bookingsQueryer) GetByIDForUpdate(ctx context.Context, bid uuid.UUID) (*model.Booking, error) {
	return q.GetByID(ctx, bid)
}

func (q bookingsQueryer) UpdateStatus(_ context.Context, bid uuid.UUID, status model.BookingStatus, notes *string) (*model.Booking, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	b, ok := q.f.byID[bid]
	if !ok {
		return nil, cerr.NotFound(errors.New("no booking"))
	}
	b.Status = status
	if notes != nil {
		b.Notes = *notes
	}
	c := *b
	return &c, nil
}

func (q bookingsQueryer) ClaimHoldRelease(_ context.Context, bid uuid.UUID) (bool, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	b, ok := q.f.byID[bid]
	if !ok || b.HoldReleased {
		return false, nil
	}
	b.HoldReleased = true
	return true, nil
}

func (q bookingsQueryer) List(_ context.Context, f repo.BookingFilter) ([]model.Booking, int64, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	var bs []model.Booking
	for _, b := range q.f.byID {
		if f.Status != model.BookingStatusInvalid &&
			b.Status != f.Status {
			continue
		}
		bs = append(bs, *b)
	}
	return bs, int64(len(bs)), nil
}

func (q bookingsQueryer) ListForEmail(_ context.Context, email string) ([]model.Booking, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	var bs []model.Booking
	for _, b := range q.f.byID {
		if b.CustomerEmail == email {
			bs = append(bs, *b)
		}
	}
	return bs, nil
}

// Counters is an in-memory repo.Counters implementation.
type Counters struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewCounters() *Counters {
	return &Counters{values: make(map[string]int64)}
}

func (f *Counters) Conn(repo.Conn) repo.CountersConnQueryer {
	return countersQueryer{f}
}

func (f *Counters) Tx(repo.Tx) repo.CountersTxQueryer {
	return countersQueryer{f}
}

type countersQueryer struct {
	f *Counters
}

func (q countersQueryer) Next(_ context.Context, name string) (int64, error) {
	q.f.mu.Lock()
	defer q.f.mu.Unlock()
	q.f.values[name]++
	return q.f.values[name], nil
}

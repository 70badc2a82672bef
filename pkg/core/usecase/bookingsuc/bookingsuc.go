// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsuc contains the bookings UseCase which manages test
// drive reservations. A booking reserves one vehicle unit when it is
// created, exactly like an order, but its release is one-shot: the
// first transition into the cancelled or completed status returns the
// unit and sets the hold-released flag, and no later status change of
// that booking ever touches the inventory again. Test drives have no
// "undo cancellation" semantic, so the flag is never reset.
package bookingsuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/log"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/momeni/dealerweb/pkg/core/usecase/ordersuc"
)

// UseCase represents a bookings use case. It holds a database
// connection pool and the bookings, vehicles, and counters repository
// instances (to be guided with the DB pool). The vehicles repository
// is consulted only through its ledger and read operations; the
// bookings flows never write the units counter directly.
type UseCase struct {
	pool       repo.Pool
	bookingsrp repo.Bookings
	vehiclesrp repo.Vehicles
	countersrp repo.Counters

	numberPrefix string
	numberBase   int64
}

// New instantiates a bookings use case.
// Required parameters are passed individually while optional
// parameters are passed as a series of functional options.
func New(
	p repo.Pool, b repo.Bookings, v repo.Vehicles, n repo.Counters,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool: p, bookingsrp: b, vehiclesrp: v, countersrp: n,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.numberPrefix == "" {
		uc.numberPrefix = "TD-"
	}
	if uc.numberBase == 0 {
		uc.numberBase = 2000
	}
	return uc, nil
}

// CreateBookingInput carries the test drive request parameters.
type CreateBookingInput struct {
	VehicleID     uuid.UUID
	CustomerEmail string
	CustomerName  string
	PreferredDate string
	Notes         string
}

// Create use case turns a test drive request into a new booking,
// following the same precondition/reserve/persist pattern as order
// creation: the vehicle must exist, be active, and have at least one
// unit on hand, then one unit is reserved through the ledger and the
// booking is persisted with a fresh sequential number, the new
// status, and an unreleased hold. A refused reservation aborts the
// whole transaction, so no booking record is left behind.
func (bookings *UseCase) Create(ctx context.Context, in CreateBookingInput) (b *model.Booking, err error) {
	if in.CustomerEmail == "" || in.CustomerName == "" {
		return nil, cerr.BadRequest(errors.New("customer email and name are required"))
	}
	if in.PreferredDate == "" {
		return nil, cerr.BadRequest(errors.New("preferred date is required"))
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			vq := bookings.vehiclesrp.Tx(tx)
			v, err := vq.GetByID(ctx, in.VehicleID)
			if err != nil {
				return err
			}
			if v.Status != model.VehicleActive {
				return cerr.BadRequest(ordersuc.ErrVehicleUnavailable)
			}
			if v.Units <= 0 {
				return cerr.BadRequest(ordersuc.ErrOutOfStock)
			}
			if _, err := vq.AdjustUnits(ctx, in.VehicleID, -1); err != nil {
				return err
			}
			seq, err := bookings.countersrp.Tx(tx).Next(ctx, repo.CounterBookings)
			if err != nil {
				return fmt.Errorf("next booking number: %w", err)
			}
			b = &model.Booking{
				BID:           uuid.New(),
				Number:        fmt.Sprintf("%s%d", bookings.numberPrefix, bookings.numberBase+seq),
				VehicleID:     v.VID,
				VehicleModel:  v.Model,
				CustomerEmail: in.CustomerEmail,
				CustomerName:  in.CustomerName,
				PreferredDate: in.PreferredDate,
				Notes:         in.Notes,
				Status:        model.BookingNew,
			}
			return bookings.bookingsrp.Tx(tx).Create(ctx, b)
		})
	})
	if err != nil {
		b = nil
		return
	}
	log.Info(ctx, "booking created",
		log.UUID("bid", b.BID),
		log.UUID("vid", b.VehicleID),
	)
	return
}

// UpdateStatus use case applies a status/notes update on the bid
// booking and, when the new status is cancelled or completed, returns
// the reserved unit at most once. The booking row is locked first and
// the release itself is claimed with a conditional update on the
// hold-released flag, mirroring the ledger's own conditional-update
// pattern, so two concurrent terminal-status writes cannot both
// release the same unit. Everything commits or rolls back as one
// transaction.
func (bookings *UseCase) UpdateStatus(ctx context.Context, bid uuid.UUID, to model.BookingStatus, notes *string) (b *model.Booking, err error) {
	if err := to.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			bq := bookings.bookingsrp.Tx(tx)
			if _, err := bq.GetByIDForUpdate(ctx, bid); err != nil {
				return err
			}
			b, err = bq.UpdateStatus(ctx, bid, to, notes)
			if err != nil {
				return err
			}
			if !to.ReleasesHold() {
				return nil
			}
			won, err := bq.ClaimHoldRelease(ctx, bid)
			if err != nil {
				return err
			}
			if !won {
				return nil // already released once before
			}
			vq := bookings.vehiclesrp.Tx(tx)
			if _, err := vq.AdjustUnits(ctx, b.VehicleID, +1); err != nil {
				return err
			}
			b.HoldReleased = true
			return nil
		})
	})
	if err != nil {
		b = nil
	}
	return
}

// Get use case fetches one booking by its identifier.
func (bookings *UseCase) Get(ctx context.Context, bid uuid.UUID) (b *model.Booking, err error) {
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		b, err = bookings.bookingsrp.Conn(c).GetByID(ctx, bid)
		return err
	})
	if err != nil {
		b = nil
	}
	return
}

// List use case queries the administrative bookings listing, newest
// first, returning one page of bookings and the total match count.
func (bookings *UseCase) List(ctx context.Context, f repo.BookingFilter) (bs []model.Booking, total int64, err error) {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		bs, total, err = bookings.bookingsrp.Conn(c).List(ctx, f)
		return err
	})
	if err != nil {
		bs, total = nil, 0
	}
	return
}

// ListForEmail use case returns the bookings which were requested by
// the email customer, newest first, for the customer dashboard.
func (bookings *UseCase) ListForEmail(ctx context.Context, email string) (bs []model.Booking, err error) {
	if email == "" {
		return nil, cerr.BadRequest(errors.New("email is required"))
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		bs, err = bookings.bookingsrp.Conn(c).ListForEmail(ctx, email)
		return err
	})
	if err != nil {
		bs = nil
	}
	return
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Booking models a test drive reservation against one vehicle.
// A booking reserves one inventory unit at creation time and returns
// it exactly once, the first time the booking reaches the cancelled or
// completed status. The HoldReleased flag records that the unit has
// been returned; it is one-shot and never reset, so later status
// changes of a released booking are inventory no-ops. This asymmetry
// with orders (which re-reserve a unit when leaving cancelled) is
// deliberate: a test drive has no natural "undo cancellation"
// semantic, while a purchase does.
type Booking struct {
	BID    uuid.UUID // unique booking identifier
	Number string    // human-readable sequential number, like TD-2042

	VehicleID    uuid.UUID // non-owning reference to the vehicle
	VehicleModel string    // snapshot of the model name

	CustomerEmail string
	CustomerName  string
	PreferredDate string // requested date, as submitted
	Notes         string

	Status       BookingStatus
	HoldReleased bool // true after the unit has been returned once

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingStatus specifies the booking lifecycle status enum.
// The nominal progression is new, confirmed, and completed, while the
// cancelled status may be entered from any of them.
type BookingStatus int

// Valid values for the BookingStatus enum.
const (
	BookingStatusInvalid BookingStatus = iota // zero value is invalid

	BookingNew
	BookingConfirmed
	BookingCompleted
	BookingCancelled
)

// ErrUnknownBookingStatus indicates that a given string may not be
// parsed as a valid/known booking status.
var ErrUnknownBookingStatus = errors.New("unknown booking status")

// BookingStatusError indicates an invalid booking status, containing
// the invalid status as an integer.
type BookingStatusError int

// Error implements the error interface.
func (e BookingStatusError) Error() string {
	return fmt.Sprintf("invalid booking status: %d", e)
}

// Validate returns nil if BookingStatus value is valid. For invalid
// values, an instance of the BookingStatusError will be returned.
func (s BookingStatus) Validate() error {
	switch s {
	case BookingNew, BookingConfirmed, BookingCompleted,
		BookingCancelled:
		return nil
	default:
		return BookingStatusError(s)
	}
}

// String converts the BookingStatus enum to a string.
// Invalid booking status causes a panic.
func (s BookingStatus) String() string {
	switch s {
	case BookingNew:
		return "new"
	case BookingConfirmed:
		return "confirmed"
	case BookingCompleted:
		return "completed"
	case BookingCancelled:
		return "cancelled"
	default:
		panic(BookingStatusError(s))
	}
}

// ParseBookingStatus parses the given string and returns a
// BookingStatus. For invalid strings, BookingStatusInvalid and
// ErrUnknownBookingStatus will be returned.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch s {
	case "new":
		return BookingNew, nil
	case "confirmed":
		return BookingConfirmed, nil
	case "completed":
		return BookingCompleted, nil
	case "cancelled":
		return BookingCancelled, nil
	default:
		return BookingStatusInvalid, ErrUnknownBookingStatus
	}
}

// ReleasesHold reports whether reaching this status returns the
// reserved inventory unit. Only the first status update into such a
// status actually releases the unit; the repository claims the
// HoldReleased flag with a conditional update, so two concurrent
// terminal-status writes cannot release the same unit twice.
func (s BookingStatus) ReleasesHold() bool {
	return s == BookingCancelled || s == BookingCompleted
}

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
	"github.com/shopspring/decimal"
)

// Order models a purchase request against one vehicle. It references
// the vehicle by its identifier and additionally snapshots the model
// name, price, and currency at creation time, so the historical record
// remains meaningful even if the listing is later edited or
// deactivated. An order holds exactly one inventory unit for as long
// as it stays in a non-cancelled status.
type Order struct {
	OID    uuid.UUID // unique order identifier
	Number string    // human-readable sequential number, like ORD-1042

	VehicleID    uuid.UUID // non-owning reference to the vehicle
	VehicleModel string    // snapshot of the model name
	Price        decimal.Decimal
	Currency     string

	BuyerEmail string
	BuyerName  string
	Address    string
	Notes      string

	Status   OrderStatus
	Tracking string // optional shipment tracking reference

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderStatus specifies the order lifecycle status enum. The nominal
// progression is pending, paid, shipped, and delivered, while the
// cancelled status may be entered from any of them. Administrative
// updates are allowed to set any status (there is no enforced
// transition graph), hence the inventory side effect of an update is
// computed from the (old, new) status pair by OrderInventoryEffect
// instead of being attached to specific transitions.
type OrderStatus int

// Valid values for the OrderStatus enum.
const (
	OrderStatusInvalid OrderStatus = iota // zero value is invalid

	OrderPending
	OrderPaid
	OrderShipped
	OrderDelivered
	OrderCancelled
)

// ErrUnknownOrderStatus indicates that a given string may not be
// parsed as a valid/known order status.
var ErrUnknownOrderStatus = errors.New("unknown order status")

// OrderStatusError indicates an invalid order status, containing the
// invalid status as an integer.
type OrderStatusError int

// Error implements the error interface, returning a string
// representation of the OrderStatusError.
func (e OrderStatusError) Error() string {
	return fmt.Sprintf("invalid order status: %d", e)
}

// Validate returns nil if OrderStatus value is valid. For invalid
// values, an instance of the OrderStatusError will be returned.
func (s OrderStatus) Validate() error {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered,
		OrderCancelled:
		return nil
	default:
		return OrderStatusError(s)
	}
}

// String converts the OrderStatus enum to a string, helping to
// serialize it for transmission to web clients. Invalid order status
// causes a panic.
func (s OrderStatus) String() string {
	switch s {
	case OrderPending:
		return "pending"
	case OrderPaid:
		return "paid"
	case OrderShipped:
		return "shipped"
	case OrderDelivered:
		return "delivered"
	case OrderCancelled:
		return "cancelled"
	default:
		panic(OrderStatusError(s))
	}
}

// ParseOrderStatus parses the given string and returns an OrderStatus.
// For invalid strings, OrderStatusInvalid and ErrUnknownOrderStatus
// will be returned.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "pending":
		return OrderPending, nil
	case "paid":
		return OrderPaid, nil
	case "shipped":
		return OrderShipped, nil
	case "delivered":
		return OrderDelivered, nil
	case "cancelled":
		return OrderCancelled, nil
	default:
		return OrderStatusInvalid, ErrUnknownOrderStatus
	}
}

// orderHoldsUnit reports which order statuses hold one inventory unit.
// Every non-cancelled status holds a unit (reserved at creation time),
// while a cancelled order has returned its unit to the vehicle.
var orderHoldsUnit = map[OrderStatus]bool{
	OrderPending:   true,
	OrderPaid:      true,
	OrderShipped:   true,
	OrderDelivered: true,
	OrderCancelled: false,
}

// OrderInventoryEffect returns the inventory delta which must be
// applied to the referenced vehicle when an order status changes from
// the from status to the to status. Entering the cancelled status
// releases the held unit (+1), leaving it re-reserves a unit (-1),
// and all other pairs, including cancelled to cancelled, are
// inventory no-ops (0). Both statuses must be valid.
func OrderInventoryEffect(from, to OrderStatus) int {
	switch {
	case orderHoldsUnit[from] && !orderHoldsUnit[to]:
		return +1
	case !orderHoldsUnit[from] && orderHoldsUnit[to]:
		return -1
	default:
		return 0
	}
}

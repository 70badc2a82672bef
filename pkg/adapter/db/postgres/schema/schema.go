// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema holds the dealership database schema DDL and its
// initialization helper. The same DDL is executed by the `db init`
// command and by the integration test suites, so both always agree on
// the table shapes.
//
// The non-negativity of the vehicles units counter is primarily
// guaranteed by the conditional update in the vehiclesrp ledger; the
// units CHECK constraint is a second, independent enforcement of the
// same invariant at the DBMS level.
package schema

import (
	"context"
	"fmt"

	"github.com/momeni/dealerweb/pkg/core/repo"
)

// DDL contains the complete schema as idempotent statements, so
// initializing an already initialized database is harmless.
const DDL = `
CREATE TABLE IF NOT EXISTS vehicles (
    vid uuid PRIMARY KEY,
    model varchar(128) NOT NULL,
    slug varchar(160) NOT NULL UNIQUE,
    price numeric(12,2) NOT NULL CHECK (price > 0),
    currency varchar(8) NOT NULL,
    mode varchar(8) NOT NULL,
    category varchar(64) NOT NULL DEFAULT 'general',
    trim varchar(64) NOT NULL DEFAULT '',
    year integer NOT NULL DEFAULT 0,
    location varchar(128) NOT NULL DEFAULT '',
    condition varchar(16) NOT NULL DEFAULT '',
    rating double precision NOT NULL DEFAULT 0,
    reviews integer NOT NULL DEFAULT 0,
    colors jsonb NOT NULL DEFAULT '[]',
    images jsonb NOT NULL DEFAULT '[]',
    details text NOT NULL DEFAULT '',
    units integer NOT NULL DEFAULT 0 CHECK (units >= 0),
    status varchar(16) NOT NULL,
    created_at timestamptz NOT NULL DEFAULT now(),
    updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
    oid uuid PRIMARY KEY,
    number varchar(32) NOT NULL UNIQUE,
    vid uuid NOT NULL REFERENCES vehicles (vid),
    vehicle_model varchar(128) NOT NULL,
    price numeric(12,2) NOT NULL,
    currency varchar(8) NOT NULL,
    buyer_email varchar(254) NOT NULL,
    buyer_name varchar(128) NOT NULL,
    address text NOT NULL DEFAULT '',
    notes text NOT NULL DEFAULT '',
    status varchar(16) NOT NULL,
    tracking varchar(64) NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT now(),
    updated_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS orders_created_at_idx
    ON orders (created_at DESC);
CREATE INDEX IF NOT EXISTS orders_status_idx ON orders (status);

CREATE TABLE IF NOT EXISTS bookings (
    bid uuid PRIMARY KEY,
    number varchar(32) NOT NULL UNIQUE,
    vid uuid NOT NULL REFERENCES vehicles (vid),
    vehicle_model varchar(128) NOT NULL,
    customer_email varchar(254) NOT NULL,
    customer_name varchar(128) NOT NULL,
    preferred_date varchar(64) NOT NULL,
    notes text NOT NULL DEFAULT '',
    status varchar(16) NOT NULL,
    hold_released boolean NOT NULL DEFAULT false,
    created_at timestamptz NOT NULL DEFAULT now(),
    updated_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS bookings_created_at_idx
    ON bookings (created_at DESC);
CREATE INDEX IF NOT EXISTS bookings_customer_email_idx
    ON bookings (customer_email);

CREATE TABLE IF NOT EXISTS counters (
    name varchar(32) PRIMARY KEY,
    value bigint NOT NULL DEFAULT 0
);
`

// Init creates all schema objects over the c connection.
func Init(ctx context.Context, c repo.Conn) error {
	if _, err := c.Exec(ctx, DDL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

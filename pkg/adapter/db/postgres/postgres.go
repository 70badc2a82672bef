// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres provides the PostgreSQL adapter of the repo layer
// interfaces, wrapping the GORM framework (with its pgx based driver)
// behind the Pool, Conn, and Tx types. Each entity has a repository
// sub-package (e.g., vehiclesrp) which implements its core repo
// interface on top of these types. The ClassifyError function maps
// driver-level SQLSTATE codes onto the cerr categories, so constraint
// violations surface as client errors instead of opaque internal
// failures.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/dealerweb/pkg/core/cerr"
)

// These SQLSTATE codes are the constraint-violation classes which may
// be caused by well-formed client requests, such as creating a second
// vehicle with the same slug.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// ClassifyError inspects err for a PostgreSQL error code and wraps it
// in the matching cerr category: unique and check violations become
// conflicts and foreign key violations become bad requests. All other
// errors, including connectivity failures, are returned unchanged and
// will surface as internal errors.
func ClassifyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.SQLState() {
	case codeUniqueViolation, codeCheckViolation:
		return cerr.Conflict(err)
	case codeForeignKeyViolation:
		return cerr.BadRequest(err)
	default:
		return err
	}
}

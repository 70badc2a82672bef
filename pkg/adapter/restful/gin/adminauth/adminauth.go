// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package adminauth guards the back-office route group. Admin requests
// must carry the access token in the X-Admin-Token header; the token
// itself is never stored anywhere, instead its hash in the standard
// scram format is kept in the configuration file and each request is
// verified against that hash.
package adminauth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealerweb/pkg/core/cerr"
	"github.com/momeni/dealerweb/pkg/core/scram"
)

// TokenHeader is the request header carrying the admin access token.
const TokenHeader = "X-Admin-Token"

// New creates a middleware which verifies the TokenHeader value of
// each request against the tokenHash using the v verifier, aborting
// unauthenticated requests with the 401 status. Verification failures
// caused by a malformed stored hash are reported as 500, not as an
// authentication failure, since they indicate a deployment problem.
func New(v scram.Verifier, tokenHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			serdser.SerErr(c, cerr.Authentication(
				errors.New("missing admin token"),
			))
			c.Abort()
			return
		}
		ok, err := v.Verify(token, tokenHash)
		switch {
		case err != nil:
			serdser.SerErr(c, err)
			c.Abort()
			return
		case !ok:
			serdser.SerErr(c, cerr.Authentication(
				errors.New("invalid admin token"),
			))
			c.Abort()
			return
		}
		c.Next()
	}
}

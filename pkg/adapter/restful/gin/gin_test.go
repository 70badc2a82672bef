// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/dealerweb/internal/test/dbcontainer"
	"github.com/momeni/dealerweb/pkg/adapter/config"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres/schema"
	"github.com/momeni/dealerweb/pkg/adapter/hash/scram"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/adminauth"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/bookingsrs"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/ordersrs"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/routes"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

const adminToken = "integration-admin-token"

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return schema.Init(ctx, c)
		},
	)
	igts.Require().NoError(err, "failed to initialize schema")

	tokenHash, err := scram.SHA256().Hash(adminToken, "", 4096)
	igts.Require().NoError(err, "failed to hash the admin token")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Ctx, igts.Gin, igts.Pool, &config.Config{
		Admin: config.Admin{
			TokenHash: tokenHash,
		},
	})
	igts.Require().NoError(err, "failed to register Gin routes")
}

func jsonBody(v any) io.Reader {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(b)
}

func (igts *IntegrationGinTestSuite) send(
	method, path string, body io.Reader, admin bool, res any,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		method, "/api/dealerweb/v1"+path, body,
	)
	igts.Require().NoError(err, "cannot create %s request", method)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	if admin {
		req.Header.Add(adminauth.TokenHeader, adminToken)
	}
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		igts.Require().NoError(
			json.Unmarshal(b, res), "body is not json: %s", b,
		)
	}
	return w
}

// createVehicle registers a new listing through the back-office API
// and returns its serialized representation.
func (igts *IntegrationGinTestSuite) createVehicle(
	model string, units int,
) *vehiclesrs.VehicleResp {
	v := &vehiclesrs.VehicleResp{}
	w := igts.send(
		http.MethodPost, "/admin/vehicles",
		jsonBody(map[string]any{
			"model":    model,
			"price":    "250000",
			"currency": "USD",
			"mode":     "buy",
			"category": "sports",
			"year":     2024,
			"units":    units,
		}),
		true, v,
	)
	igts.Require().Equal(201, w.Code, "cannot create vehicle listing")
	return v
}

func (igts *IntegrationGinTestSuite) fetchUnits(slug string) int {
	v := &vehiclesrs.VehicleResp{}
	w := igts.send(http.MethodGet, "/vehicles/"+slug, nil, false, v)
	igts.Require().Equal(200, w.Code, "cannot fetch vehicle %q", slug)
	return v.Units
}

func (igts *IntegrationGinTestSuite) TestAdminAuthentication() {
	for _, tc := range []struct {
		name  string
		token string
		code  int
	}{
		{name: "missing token", token: "", code: 401},
		{name: "wrong token", token: "wrong-token", code: 401},
		{name: "valid token", token: adminToken, code: 200},
	} {
		igts.Run(tc.name, func() {
			w := httptest.NewRecorder()
			req, err := http.NewRequest(
				http.MethodGet, "/api/dealerweb/v1/admin/orders", nil,
			)
			igts.Require().NoError(err, "cannot create GET request")
			if tc.token != "" {
				req.Header.Add(adminauth.TokenHeader, tc.token)
			}
			igts.Gin.ServeHTTP(w, req)
			igts.Equal(tc.code, w.Code)
		})
	}
}

func (igts *IntegrationGinTestSuite) TestPublicCatalogHidesInactive() {
	v := igts.createVehicle("Aston Martin DB12", 2)
	igts.Equal("aston-martin-db12", v.Slug)
	igts.True(v.InStock)

	w := igts.send(
		http.MethodPatch, "/admin/vehicles/"+v.ID.String(),
		jsonBody(map[string]any{"status": "inactive"}),
		true, nil,
	)
	igts.Require().Equal(200, w.Code, "cannot deactivate vehicle")

	w = igts.send(http.MethodGet, "/vehicles/"+v.Slug, nil, false, nil)
	igts.Equal(404, w.Code, "inactive listing must be hidden")

	page := &vehiclesrs.VehiclesPageResp{}
	w = igts.send(http.MethodGet, "/vehicles", nil, false, page)
	igts.Require().Equal(200, w.Code)
	for _, pv := range page.Vehicles {
		igts.NotEqual(v.ID, pv.ID, "inactive listing must be hidden")
	}

	// the back-office listing still shows it
	page = &vehiclesrs.VehiclesPageResp{}
	w = igts.send(
		http.MethodGet, "/admin/vehicles?status=inactive", nil,
		true, page,
	)
	igts.Require().Equal(200, w.Code)
	seen := false
	for _, pv := range page.Vehicles {
		seen = seen || pv.ID == v.ID
	}
	igts.True(seen, "admin listing must show inactive vehicles")
}

func (igts *IntegrationGinTestSuite) TestOrderLifecycle() {
	v := igts.createVehicle("Ferrari Roma", 1)

	o := &ordersrs.OrderResp{}
	w := igts.send(
		http.MethodPost, "/orders",
		jsonBody(map[string]any{
			"vehicleId":  v.ID.String(),
			"buyerEmail": "buyer@example.com",
			"buyerName":  "Buyer One",
			"address":    "1 Main St",
		}),
		false, o,
	)
	igts.Require().Equal(201, w.Code, "cannot create order")
	igts.Equal("pending", o.Status)
	igts.NotEmpty(o.Number)
	igts.Equal(v.ID, o.VehicleID)
	igts.Equal(0, igts.fetchUnits(v.Slug), "unit must be reserved")

	// the last unit is reserved, so a second purchase is refused
	w = igts.send(
		http.MethodPost, "/orders",
		jsonBody(map[string]any{
			"vehicleId":  v.ID.String(),
			"buyerEmail": "late@example.com",
			"buyerName":  "Buyer Two",
		}),
		false, nil,
	)
	igts.Equal(400, w.Code, "exhausted stock must refuse orders")

	patch := func(status string) *httptest.ResponseRecorder {
		o2 := &ordersrs.OrderResp{}
		w := igts.send(
			http.MethodPatch, "/admin/orders/"+o.ID.String(),
			jsonBody(map[string]any{"status": status}),
			true, o2,
		)
		if w.Code == 200 {
			*o = *o2
		}
		return w
	}

	w = patch("cancelled")
	igts.Require().Equal(200, w.Code, "cannot cancel order")
	igts.Equal("cancelled", o.Status)
	igts.Equal(1, igts.fetchUnits(v.Slug), "unit must be released")

	w = patch("cancelled")
	igts.Require().Equal(200, w.Code, "re-cancel must be a no-op")
	igts.Equal(
		1, igts.fetchUnits(v.Slug),
		"repeated cancellation must not release another unit",
	)

	w = patch("paid")
	igts.Require().Equal(200, w.Code, "cannot reinstate order")
	igts.Equal("paid", o.Status)
	igts.Equal(0, igts.fetchUnits(v.Slug), "unit must be re-reserved")
}

func (igts *IntegrationGinTestSuite) TestConcurrentOrdersOverLastUnit() {
	v := igts.createVehicle("Porsche 911 GT3", 1)

	codes := make([]int, 2)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := igts.send(
				http.MethodPost, "/orders",
				jsonBody(map[string]any{
					"vehicleId": v.ID.String(),
					"buyerEmail": fmt.Sprintf(
						"racer%d@example.com", i,
					),
					"buyerName": fmt.Sprintf("Racer %d", i),
				}),
				false, nil,
			)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	won, lost := 0, 0
	for _, code := range codes {
		switch code {
		case 201:
			won++
		case 400, 409:
			lost++
		}
	}
	igts.Equal(1, won, "exactly one order wins the last unit: %v", codes)
	igts.Equal(1, lost, "the other order must be refused: %v", codes)
	igts.Equal(0, igts.fetchUnits(v.Slug), "units never drop below zero")
}

func (igts *IntegrationGinTestSuite) TestBookingLifecycle() {
	v := igts.createVehicle("Mercedes C200", 1)

	b := &bookingsrs.BookingResp{}
	w := igts.send(
		http.MethodPost, "/testdrives",
		jsonBody(map[string]any{
			"vehicleId":     v.ID.String(),
			"customerEmail": "driver@example.com",
			"customerName":  "Driver One",
			"preferredDate": "2026-09-05",
		}),
		false, b,
	)
	igts.Require().Equal(201, w.Code, "cannot create booking")
	igts.Equal("new", b.Status)
	igts.False(b.HoldReleased)
	igts.Equal(0, igts.fetchUnits(v.Slug), "unit must be reserved")

	// the customer dashboard lists the booking by email
	var bs []bookingsrs.BookingResp
	w = igts.send(
		http.MethodGet, "/testdrives?email=driver@example.com",
		nil, false, &bs,
	)
	igts.Require().Equal(200, w.Code)
	igts.Require().Len(bs, 1)
	igts.Equal(b.ID, bs[0].ID)

	patch := func(status string) *httptest.ResponseRecorder {
		b2 := &bookingsrs.BookingResp{}
		w := igts.send(
			http.MethodPatch, "/admin/testdrives/"+b.ID.String(),
			jsonBody(map[string]any{"status": status}),
			true, b2,
		)
		if w.Code == 200 {
			*b = *b2
		}
		return w
	}

	w = patch("confirmed")
	igts.Require().Equal(200, w.Code, "cannot confirm booking")
	igts.False(b.HoldReleased)
	igts.Equal(
		0, igts.fetchUnits(v.Slug), "confirmation keeps the hold",
	)

	w = patch("cancelled")
	igts.Require().Equal(200, w.Code, "cannot cancel booking")
	igts.True(b.HoldReleased)
	igts.Equal(1, igts.fetchUnits(v.Slug), "unit must be released")

	w = patch("completed")
	igts.Require().Equal(200, w.Code)
	igts.Equal(
		1, igts.fetchUnits(v.Slug),
		"hold release is one-shot; no double return",
	)
}

func (igts *IntegrationGinTestSuite) TestBookingValidation() {
	res := &struct {
		CustomerEmail []string `json:"customerEmail"`
		PreferredDate []string `json:"preferredDate"`
	}{}
	w := igts.send(
		http.MethodPost, "/testdrives",
		jsonBody(map[string]any{
			"vehicleId":     uuid.New().String(),
			"customerEmail": "not-an-email",
			"customerName":  "Driver One",
		}),
		false, res,
	)
	igts.Equal(400, w.Code)
	if igts.Len(res.CustomerEmail, 1) {
		igts.Contains(res.CustomerEmail[0], "failed on the 'email' tag")
	}
	if igts.Len(res.PreferredDate, 1) {
		igts.Contains(
			res.PreferredDate[0], "failed on the 'required' tag",
		)
	}
}

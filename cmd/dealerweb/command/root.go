// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the
// dealerweb project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database schema initialization and
// sample data seeding and the "admin" sub-command can be used for
// hashing the back-office access token.
//
//	./dealerweb [-c /path/of/main/config.yaml]       # start web server
//	./dealerweb db init [-c /path/of/main/config.yaml]
//	./dealerweb db seed [-c /path/of/main/config.yaml]
//	./dealerweb admin hash-token
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/dealerweb/pkg/adapter/config"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/routes"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "dealerweb",
	Short: "A dealership storefront backend",
	Long: `A dealership storefront backend which serves the public
vehicle catalog, purchase orders, and test drive bookings REST APIs
together with their back-office management APIs.
The per-vehicle inventory unit counts are the central concern: orders
and bookings reserve units through a conditional atomic adjustment, so
the counter can never be driven negative by concurrent requests, and
lifecycle status updates return or re-reserve units transactionally.
Vehicles, orders, and bookings are stored in a PostgreSQL database
which is accessed using GORM and Pgx, the REST APIs are implemented
with the Gin Gonic web framework, and the back-office APIs are guarded
by an access token which is only kept as a scram hash in the
configuration file.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(ctx, e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}

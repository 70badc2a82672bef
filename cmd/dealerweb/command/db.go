// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/dealerweb/pkg/adapter/config"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres/schema"
	"github.com/momeni/dealerweb/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/momeni/dealerweb/pkg/core/usecase/vehiclesuc"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init sub-command creates the required
tables and indexes idempotently and the seed sub-command registers a
couple of sample vehicle listings when the catalog is empty.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database tables and indexes",
	Long: `Create the dealerweb tables and indexes in the database
which is specified in the configuration file. All statements are
idempotent, so running init against an existing installation is safe
and leaves the stored data intact.`,
	RunE: dbInit,
	Args: cobra.NoArgs,
}

func dbInit(_ *cobra.Command, _ []string) error {
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
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return schema.Init(ctx, c)
	})
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed sample vehicle listings into an empty catalog",
	Long: `Seed a couple of sample vehicle listings, so the storefront
has something to show right after a fresh installation. A non-empty
catalog is left untouched.`,
	RunE: dbSeed,
	Args: cobra.NoArgs,
}

func dbSeed(cmd *cobra.Command, _ []string) error {
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
	vehicles, err := c.Usecases.Vehicles.NewUseCase(p, vehiclesrp.New())
	if err != nil {
		return fmt.Errorf("creating vehicles use case: %w", err)
	}
	_, total, err := vehicles.List(ctx, model.VehicleQuery{Limit: 1})
	if err != nil {
		return fmt.Errorf("querying catalog: %w", err)
	}
	if total > 0 {
		cmd.Println("catalog is not empty, skipping")
		return nil
	}
	for _, in := range sampleVehicles() {
		v, err := vehicles.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("seeding %q: %w", in.Model, err)
		}
		cmd.Printf("seeded %s (%s)\n", v.Model, v.Slug)
	}
	return nil
}

func sampleVehicles() []vehiclesuc.CreateVehicleInput {
	return []vehiclesuc.CreateVehicleInput{
		{
			Model:     "Ferrari Sample",
			Price:     decimal.NewFromInt(250000),
			Currency:  "USD",
			Mode:      model.ListingModeBuy,
			Colors:    []string{"red"},
			Condition: "new",
			Units:     1,
		},
		{
			Model:     "Mercedes C200 Sample",
			Price:     decimal.NewFromInt(150),
			Currency:  "USD",
			Mode:      model.ListingModeRent,
			Category:  "sedan",
			Colors:    []string{"black", "silver"},
			Condition: "used",
			Units:     3,
		},
	}
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbSeedCmd)
	rootCmd.AddCommand(dbCmd)
}

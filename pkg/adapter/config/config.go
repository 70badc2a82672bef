// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the dealerweb to instantiate
// different components, from the adapter or use cases layers, using
// those loaded configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory
// items) and a series of functional options (for the optional items),
// so they may be accumulated and validated in the relevant
// end-component such as a UseCase instance. This design decision
// causes a bit of redundancy in favor of a defensive solution.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/dealerweb/pkg/adapter/db/postgres"
	hashscram "github.com/momeni/dealerweb/pkg/adapter/hash/scram"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/momeni/dealerweb/pkg/core/scram"
	"github.com/momeni/dealerweb/pkg/core/usecase/bookingsuc"
	"github.com/momeni/dealerweb/pkg/core/usecase/ordersuc"
	"github.com/momeni/dealerweb/pkg/core/usecase/vehiclesuc"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so other layers can change freely without affecting the
// configuration file format.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Admin    Admin    // back-office access token settings
	Usecases Usecases // configuration settings for supported use cases
}

// Database contains the database related configuration settings.
type Database struct {
	Host string // domain name or IP address of the DBMS server
	Port int    // port number of the DBMS server
	Name string // database name, like dealerweb
	User string // database role name

	// PassFile optionally specifies the path of a pgpass formatted
	// passwords file with host:port:dbname:role:password lines. When
	// it is set, the Pass field is ignored and the password of the
	// User role is looked up in that file instead, so the plaintext
	// password can be kept out of the main configuration file.
	PassFile string `yaml:"pass-file,omitempty"`
	Pass     string `yaml:"pass,omitempty"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf(
			"database %s@%s:%d/%s: %w",
			c.Database.User, c.Database.Host,
			c.Database.Port, c.Database.Name, err,
		)
	}
	return p, nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
func (d Database) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	u, err := d.ConnectionURL()
	if err != nil {
		return nil, err
	}
	return postgres.NewPool(ctx, u)
}

// ConnectionURL returns the database connection URL embedding the
// host, port, role name, database name, and password value. The
// password is taken from the pass-file if one is configured, falling
// back to the inline pass setting otherwise. Returned URL has the
// postgresql scheme.
func (d Database) ConnectionURL() (string, error) {
	pass := d.Pass
	if d.PassFile != "" {
		p, err := d.passFromFile()
		if err != nil {
			return "", err
		}
		pass = p
	}
	u := &url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

func (d Database) passFromFile() (string, error) {
	path := filepath.Clean(d.PassFile)
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, d.User)
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			return line[len(prfx):], nil
		}
	}
	return "", fmt.Errorf(
		"pass-file %q has no entry for %s", path, prfx,
	)
}

// Gin contains the gin-gonic instantiation settings.
type Gin struct {
	Logger   *bool // whether to register the gin.Logger() middleware
	Recovery *bool // whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Admin contains the back-office access token settings. The token is
// never configured in plaintext; only its hash in the standard scram
// format is kept here and incoming X-Admin-Token headers are verified
// against it.
type Admin struct {
	// TokenHash holds the admin access token hash, as printed by the
	// "dealerweb admin hash-token" command, conforming to the
	// SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	// format.
	TokenHash string `yaml:"token-hash"`
}

// NewVerifier instantiates the scram verifier matching the mechanism
// name which prefixes the configured token hash.
func (a Admin) NewVerifier() (scram.Verifier, error) {
	switch {
	case strings.HasPrefix(a.TokenHash, "SCRAM-SHA-256$"):
		return hashscram.SHA256(), nil
	case strings.HasPrefix(a.TokenHash, "SCRAM-SHA-1$"):
		return hashscram.SHA1(), nil
	default:
		return nil, fmt.Errorf(
			"unsupported admin token-hash mechanism: %q", a.TokenHash,
		)
	}
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Vehicles Vehicles // vehicles use cases related settings
	Orders   Orders   // orders use cases related settings
	Bookings Bookings // bookings use cases related settings
}

// Vehicles contains the configuration settings for the vehicles use
// cases. Fields are defined as pointers, so it is possible to detect
// if they are or are not initialized; nil items leave the use cases
// layer defaults in effect.
type Vehicles struct {
	// DefaultPageSize is the catalog page size which is used when a
	// query does not ask for an explicit limit.
	DefaultPageSize *int `yaml:"default-page-size"`
	// MaxPageSize is the upper bound for the catalog page size.
	MaxPageSize *int `yaml:"max-page-size"`
}

// NewUseCase instantiates a new vehicles use case based on the
// settings in the `v` struct.
func (v Vehicles) NewUseCase(
	p repo.Pool, r repo.Vehicles,
) (*vehiclesuc.UseCase, error) {
	opts := make([]vehiclesuc.Option, 0, 2)
	if v.DefaultPageSize != nil {
		opts = append(
			opts, vehiclesuc.WithDefaultPageSize(*v.DefaultPageSize),
		)
	}
	if v.MaxPageSize != nil {
		opts = append(
			opts, vehiclesuc.WithMaxPageSize(*v.MaxPageSize),
		)
	}
	return vehiclesuc.New(p, r, opts...)
}

// Orders contains the configuration settings for the orders use
// cases. Nil items leave the use cases layer defaults in effect.
type Orders struct {
	// NumberPrefix is the human-readable order number prefix.
	NumberPrefix *string `yaml:"number-prefix"`
	// NumberBase is added to the atomic counter value when forming
	// order numbers.
	NumberBase *int64 `yaml:"number-base"`
}

// NewUseCase instantiates a new orders use case based on the settings
// in the `o` struct.
func (o Orders) NewUseCase(
	p repo.Pool, r repo.Orders, v repo.Vehicles, n repo.Counters,
) (*ordersuc.UseCase, error) {
	opts := make([]ordersuc.Option, 0, 2)
	if o.NumberPrefix != nil {
		opts = append(opts, ordersuc.WithNumberPrefix(*o.NumberPrefix))
	}
	if o.NumberBase != nil {
		opts = append(opts, ordersuc.WithNumberBase(*o.NumberBase))
	}
	return ordersuc.New(p, r, v, n, opts...)
}

// Bookings contains the configuration settings for the bookings use
// cases. Nil items leave the use cases layer defaults in effect.
type Bookings struct {
	// NumberPrefix is the human-readable request number prefix.
	NumberPrefix *string `yaml:"number-prefix"`
	// NumberBase is added to the atomic counter value when forming
	// request numbers.
	NumberBase *int64 `yaml:"number-base"`
}

// NewUseCase instantiates a new bookings use case based on the
// settings in the `b` struct.
func (b Bookings) NewUseCase(
	p repo.Pool, r repo.Bookings, v repo.Vehicles, n repo.Counters,
) (*bookingsuc.UseCase, error) {
	opts := make([]bookingsuc.Option, 0, 2)
	if b.NumberPrefix != nil {
		opts = append(
			opts, bookingsuc.WithNumberPrefix(*b.NumberPrefix),
		)
	}
	if b.NumberBase != nil {
		opts = append(opts, bookingsuc.WithNumberBase(*b.NumberBase))
	}
	return bookingsuc.New(p, r, v, n, opts...)
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// normalizes them, filling defaults for the missing optional items.
// The database connection settings and the admin token hash are
// mandatory since there is no sensible default for them.
func (c *Config) ValidateAndNormalize() error {
	d := &c.Database
	switch {
	case d.Host == "":
		return fmt.Errorf("database host is missing")
	case d.Port <= 0 || d.Port > 65535:
		return fmt.Errorf("database port (%d) is invalid", d.Port)
	case d.Name == "":
		return fmt.Errorf("database name is missing")
	case d.User == "":
		return fmt.Errorf("database user is missing")
	case d.Pass == "" && d.PassFile == "":
		return fmt.Errorf("neither pass nor pass-file is given")
	}
	nil2True(&c.Gin.Logger)
	nil2True(&c.Gin.Recovery)
	if c.Admin.TokenHash != "" {
		if _, err := c.Admin.NewVerifier(); err != nil {
			return err
		}
	}
	return nil
}

func nil2True(b **bool) {
	if *b == nil {
		t := true
		*b = &t
	}
}

// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the bkweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings. A few settings may be overridden by the
// environment variables (see LoadData).
// The parsed and validated configurations are passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so use cases never see the Config struct itself.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/soutside/bookweb/pkg/adapter/config/settings"
	"github.com/soutside/bookweb/pkg/adapter/db/postgres"
	"github.com/soutside/bookweb/pkg/adapter/db/postgres/schemarp"
	"github.com/soutside/bookweb/pkg/adapter/hash/scram"
	"github.com/soutside/bookweb/pkg/adapter/validation"
	"github.com/soutside/bookweb/pkg/core/model"
	"github.com/soutside/bookweb/pkg/core/repo"
	"github.com/soutside/bookweb/pkg/core/usecase/adminuc"
	"github.com/soutside/bookweb/pkg/core/usecase/appuc"
	"github.com/soutside/bookweb/pkg/core/usecase/bookingsuc"
	"github.com/soutside/bookweb/pkg/core/usecase/recordsuc"
	"github.com/soutside/bookweb/pkg/core/usecase/reviewsuc"
	"github.com/soutside/bookweb/pkg/core/usecase/schemauc"
	"gopkg.in/yaml.v3"
)

// These environment variables override their config file settings.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvPort        = "PORT"
	EnvAdminToken  = "ADMIN_TOKEN"
	EnvCatalog     = "CATALOG"
)

// ErrNoDatabaseURL is returned when no database URL was configured.
var ErrNoDatabaseURL = errors.New(EnvDatabaseURL + " is required")

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is implemented
// with primitive fields or structs which are defined locally, not the
// model types, so the configuration file format is kept intact while
// other layers can change freely.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Missing items are filled with their
// default values by the ValidateAndNormalize method.
type Config struct {
	// CatalogName is the served catalog variant, supercar or tours.
	CatalogName *string  `yaml:"catalog,omitempty"`
	Database    Database `yaml:"database"`
	Server      Server   `yaml:"server"`
	Gin         Gin      `yaml:"gin"`
	Admin       Admin    `yaml:"admin"`
	Usecases    Usecases `yaml:"usecases"`
	Logging     Logging  `yaml:"logging"`

	variant model.Variant
}

// This assertion ensures that the use cases can be built by Config.
var _ appuc.Builder = (*Config)(nil)

// Load reads the configuration file from path and passes its contents
// to LoadData together with the process environment variables.
// If optional is true, a missing file is treated as an empty file, so
// the whole configuration may come from the environment variables.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	switch {
	case optional && errors.Is(err, fs.ErrNotExist):
		data = nil
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadData(data, os.LookupEnv)
}

// LoadData unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Unknown items in the
// data are rejected and missing items take their default values.
// Thereafter, the DATABASE_URL, PORT, ADMIN_TOKEN, and CATALOG
// environment variables (as reported by the lookup function) override
// their corresponding settings and the result is validated and
// normalized.
func LoadData(data []byte, lookup settings.LookupEnv) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.OverrideFromEnv(lookup); err != nil {
		return nil, fmt.Errorf("reading environment variables: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// OverrideFromEnv replaces the settings which have a corresponding
// environment variable, as reported by the lookup function.
func (c *Config) OverrideFromEnv(lookup settings.LookupEnv) error {
	settings.FromEnv(&c.Database.URL, lookup, EnvDatabaseURL)
	settings.FromEnv(&c.Admin.Token, lookup, EnvAdminToken)
	if v, ok := lookup(EnvCatalog); ok && v != "" {
		c.CatalogName = &v
	}
	return settings.IntFromEnv(&c.Server.Port, lookup, EnvPort)
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also replaces the
// missing settings with their expected default values.
func (c *Config) ValidateAndNormalize() error {
	settings.Default(&c.CatalogName, model.VariantSupercar.String())
	v, err := model.ParseVariant(*c.CatalogName)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	c.variant = v
	cat, err := model.NewCatalog(v)
	if err != nil {
		return err
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Server.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating server settings: %w", err)
	}
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating gin settings: %w", err)
	}
	if err := c.Admin.Validate(); err != nil {
		return fmt.Errorf("validating admin settings: %w", err)
	}
	if err := c.Usecases.ValidateAndNormalize(cat); err != nil {
		return fmt.Errorf("validating use cases settings: %w", err)
	}
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	return nil
}

// Variant returns the configured catalog variant.
func (c *Config) Variant() model.Variant {
	return c.variant
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("%v.ConnectionPool: %w", c.Database, err)
	}
	return p, nil
}

// NewSchemaUseCase instantiates the database initialization use case
// for the configured catalog variant.
func (c *Config) NewSchemaUseCase(p repo.Pool) *schemauc.UseCase {
	return schemauc.New(p, schemarp.New(), c.variant)
}

// Catalog returns the descriptors of the configured variant, with
// their listing limits adjusted based on the use cases settings.
func (c *Config) Catalog() (*model.Catalog, error) {
	cat, err := model.NewCatalog(c.variant)
	if err != nil {
		return nil, err
	}
	c.Usecases.Offerings.apply(cat.Offerings)
	c.Usecases.Reviews.apply(cat.Reviews)
	return cat, nil
}

// NewRecordsUseCase instantiates a generic records use case.
// Staff and offerings rows are created by the administrators, so no
// validator is configured for them.
func (c *Config) NewRecordsUseCase(
	p repo.Pool, r repo.Records, s *model.Schema,
) (*recordsuc.UseCase, error) {
	return recordsuc.New(p, r, s)
}

// NewBookingsUseCase instantiates the bookings use case based on the
// usecases.bookings settings.
func (c *Config) NewBookingsUseCase(
	p repo.Pool, r repo.Records, s *model.Schema,
) (*bookingsuc.UseCase, error) {
	b := c.Usecases.Bookings
	opts := make([]bookingsuc.Option, 0, 2)
	if *b.Validate {
		v, err := validation.New()
		if err != nil {
			return nil, fmt.Errorf("creating validator: %w", err)
		}
		opts = append(opts, bookingsuc.WithValidator(v))
	}
	if *b.ProtectListing {
		opts = append(opts, bookingsuc.WithProtectedListing())
	}
	return bookingsuc.New(p, r, s, opts...)
}

// NewReviewsUseCase instantiates the reviews use case.
func (c *Config) NewReviewsUseCase(
	p repo.Pool, r repo.Records, s *model.Schema,
) (*reviewsuc.UseCase, error) {
	v, err := validation.New()
	if err != nil {
		return nil, fmt.Errorf("creating validator: %w", err)
	}
	return reviewsuc.New(p, r, s, v)
}

// NewAdminUseCase instantiates the admin gate based on the admin
// settings. A token hash is verified by the SCRAM mechanism which is
// named by its prefix.
func (c *Config) NewAdminUseCase() (*adminuc.UseCase, error) {
	a := c.Admin
	if a.TokenHash != nil && *a.TokenHash != "" {
		m, err := scram.ForHash(*a.TokenHash)
		if err != nil {
			return nil, fmt.Errorf("admin token hash: %w", err)
		}
		return adminuc.New(adminuc.WithTokenHash(*a.TokenHash, m))
	}
	if a.Token == nil {
		return adminuc.New()
	}
	return adminuc.New(adminuc.WithToken(*a.Token))
}

// LogValue implements slog.LogValuer, so the effective settings may
// be logged on start up. Secrets are not included.
func (c *Config) LogValue() slog.Value {
	catalog := ""
	if c.CatalogName != nil {
		catalog = *c.CatalogName
	}
	return slog.GroupValue(
		slog.String("catalog", catalog),
		slog.Any("database", c.Database),
		slog.Any("server", c.Server),
		slog.Any("admin", c.Admin),
	)
}

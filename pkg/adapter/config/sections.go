// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	ggin "github.com/gin-gonic/gin"
	"github.com/soutside/bookweb/pkg/adapter/config/settings"
	"github.com/soutside/bookweb/pkg/adapter/db/postgres"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin"
	"github.com/soutside/bookweb/pkg/core/model"
)

// Database contains the database related configuration settings.
type Database struct {
	// URL is the PostgreSQL connection string, either as a URL or
	// as key=value pairs. It is usually given by $DATABASE_URL.
	URL *string `yaml:"url,omitempty"`

	// SlowThreshold is the duration which statements taking longer
	// than it are logged as warnings.
	SlowThreshold *settings.Duration `yaml:"slow-threshold,omitempty"`

	// LogLevel is one of silent, error, warn, or info and decides
	// which database statements are logged.
	LogLevel *string `yaml:"log-level,omitempty"`

	logConfig postgres.LogConfig
}

// ValidateAndNormalize validates the database settings and fills the
// missing items with their defaults.
func (d *Database) ValidateAndNormalize() error {
	if d.URL == nil || *d.URL == "" {
		return ErrNoDatabaseURL
	}
	settings.Default(
		&d.SlowThreshold,
		settings.Duration(postgres.DefaultLogConfig.SlowThreshold),
	)
	settings.Default(&d.LogLevel, "warn")
	lvl, err := postgres.ParseLogLevel(*d.LogLevel)
	if err != nil {
		return err
	}
	d.logConfig = postgres.LogConfig{
		SlowThreshold: time.Duration(*d.SlowThreshold),
		Level:         lvl,
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
func (d Database) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	return postgres.NewPool(ctx, *d.URL, d.logConfig)
}

// LogValue implements slog.LogValuer and reports the database URL
// without its password.
func (d Database) LogValue() slog.Value {
	u := "nil"
	if d.URL != nil {
		u = "redacted"
		if pu, err := url.Parse(*d.URL); err == nil && pu.Scheme != "" {
			u = pu.Redacted()
		}
	}
	return slog.GroupValue(
		slog.String("url", u),
		slog.Any("slow-threshold", d.SlowThreshold),
	)
}

// String is used when the settings are printed in error messages.
func (d Database) String() string {
	return d.LogValue().String()
}

// Server contains the HTTP server settings.
type Server struct {
	Port *int `yaml:"port,omitempty"` // listening port, i.e. $PORT

	// ShutdownTimeout is the maximum duration which is waited for the
	// in-flight requests to be completed after an interrupt signal.
	ShutdownTimeout *settings.Duration `yaml:"shutdown-timeout,omitempty"`
}

// These constants are the default Server settings.
const (
	DefaultPort            = 3001
	DefaultShutdownTimeout = 10 * time.Second
)

// ValidateAndNormalize validates the server settings and fills the
// missing items with their defaults.
func (s *Server) ValidateAndNormalize() error {
	settings.Default(&s.Port, DefaultPort)
	settings.Default(
		&s.ShutdownTimeout, settings.Duration(DefaultShutdownTimeout),
	)
	return settings.VerifyRange("port", s.Port, 1, 65535)
}

// Addr returns the listening address of the HTTP server.
func (s Server) Addr() string {
	return ":" + strconv.Itoa(*s.Port)
}

// LogValue implements slog.LogValuer.
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr()),
		slog.Any("shutdown-timeout", s.ShutdownTimeout),
	)
}

// Gin contains the gin-gonic related configuration settings.
type Gin struct {
	Logger   *bool   `yaml:"logger,omitempty"`   // Whether to log the requests
	Recovery *bool   `yaml:"recovery,omitempty"` // Whether to recover panics
	Mode     *string `yaml:"mode,omitempty"`     // debug, release, or test
}

// ValidateAndNormalize validates the gin settings and fills the
// missing items with their defaults.
func (g *Gin) ValidateAndNormalize() error {
	settings.Default(&g.Logger, true)
	settings.Default(&g.Recovery, true)
	settings.Default(&g.Mode, ggin.ReleaseMode)
	switch *g.Mode {
	case ggin.DebugMode, ggin.ReleaseMode, ggin.TestMode:
		return nil
	default:
		return fmt.Errorf("unknown gin mode: %q", *g.Mode)
	}
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. Request ids and CORS headers are always handled,
// while the access logs and the panic recovery may be disabled.
func (g Gin) NewEngine() *gin.Engine {
	ggin.SetMode(*g.Mode)
	middlewares := make([]gin.HandlerFunc, 0, 4)
	middlewares = append(middlewares, gin.RequestID())
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger(slog.Default()))
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	middlewares = append(middlewares, gin.CORS())
	return gin.New(middlewares...)
}

// Admin contains the admin gate settings. At most one of Token and
// TokenHash may be set. Without both of them, all admin operations
// are forbidden.
type Admin struct {
	Token *string `yaml:"token,omitempty"` // usually given by $ADMIN_TOKEN

	// TokenHash is the SCRAM-SHA-256 (or SCRAM-SHA-1) hash of the
	// admin token, as printed by the hash-token command.
	TokenHash *string `yaml:"token-hash,omitempty"`
}

// Validate ensures that the token is not configured twice.
func (a Admin) Validate() error {
	if a.Token != nil && *a.Token != "" &&
		a.TokenHash != nil && *a.TokenHash != "" {
		return errors.New("token and token-hash are mutually exclusive")
	}
	return nil
}

// LogValue implements slog.LogValuer and only reports how the admin
// token is configured.
func (a Admin) LogValue() slog.Value {
	mode := "disabled"
	switch {
	case a.TokenHash != nil && *a.TokenHash != "":
		mode = "token-hash"
	case a.Token != nil && *a.Token != "":
		mode = "token"
	}
	return slog.StringValue(mode)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Bookings  Bookings `yaml:"bookings"`
	Offerings Listing  `yaml:"offerings"`
	Reviews   Listing  `yaml:"reviews"`
}

// ValidateAndNormalize validates the use cases settings and fills the
// missing items with their defaults from the cat catalog.
func (u *Usecases) ValidateAndNormalize(cat *model.Catalog) error {
	settings.Default(&u.Bookings.Validate, true)
	settings.Default(&u.Bookings.ProtectListing, false)
	if err := u.Offerings.ValidateAndNormalize(cat.Offerings); err != nil {
		return fmt.Errorf("offerings: %w", err)
	}
	if err := u.Reviews.ValidateAndNormalize(cat.Reviews); err != nil {
		return fmt.Errorf("reviews: %w", err)
	}
	return nil
}

// Bookings contains the bookings use case settings.
type Bookings struct {
	// Validate enables the contact fields and dates checks of the
	// new bookings.
	Validate *bool `yaml:"validate,omitempty"`

	// ProtectListing reserves the bookings listing for the admin.
	ProtectListing *bool `yaml:"protect-listing,omitempty"`
}

// Listing contains the `?limit=` settings of a listing. A requested
// limit which is not in [1, MaxLimit] is replaced by Limit.
type Listing struct {
	Limit    *int `yaml:"limit,omitempty"`
	MaxLimit *int `yaml:"max-limit,omitempty"`
}

// ValidateAndNormalize fills the missing items with their defaults
// from the s schema limits and validates the result.
func (l *Listing) ValidateAndNormalize(s *model.Schema) error {
	if s.Limits == nil {
		if l.Limit != nil || l.MaxLimit != nil {
			return fmt.Errorf("%s listing is not limited", s.Name)
		}
		return nil
	}
	settings.Default(&l.MaxLimit, s.Limits.Max)
	settings.Default(&l.Limit, s.Limits.Default)
	if err := settings.VerifyRange("max-limit", l.MaxLimit, 1, 1000); err != nil {
		return err
	}
	return settings.VerifyRange("limit", l.Limit, 1, *l.MaxLimit)
}

func (l Listing) apply(s *model.Schema) {
	if l.Limit == nil || l.MaxLimit == nil {
		return
	}
	s.Limits = &model.Limits{Default: *l.Limit, Max: *l.MaxLimit}
}

// Logging contains the structured logging settings.
type Logging struct {
	Level  *string `yaml:"level,omitempty"`  // debug, info, warn, or error
	Format *string `yaml:"format,omitempty"` // text or json

	level slog.Level
}

// ValidateAndNormalize validates the logging settings and fills the
// missing items with their defaults.
func (l *Logging) ValidateAndNormalize() error {
	settings.Default(&l.Level, "info")
	settings.Default(&l.Format, "text")
	if err := l.level.UnmarshalText([]byte(*l.Level)); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	switch *l.Format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown log format: %q", *l.Format)
	}
}

// NewLogger creates a logger which writes to w based on the `l`
// settings.
func (l Logging) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.level, AddSource: true}
	if *l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

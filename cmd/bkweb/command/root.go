// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the bkweb
// booking web service. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database initialization actions.
//
//	./bkweb [-c /path/of/config.yaml]           # start web server
//	./bkweb db init-dev [-c /path/of/config.yaml]
//	./bkweb db init-prod [-c /path/of/config.yaml]
//	./bkweb db counts [-c /path/of/config.yaml]
//	./bkweb hash-token [--sha1] [--iters 15000] < token.txt
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soutside/bookweb/pkg/adapter/config"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin"
	"github.com/soutside/bookweb/pkg/adapter/restful/gin/routes"
	"github.com/soutside/bookweb/pkg/core/log"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	cfgOptional bool // true when cfgPath is the default path
)

var rootCmd = &cobra.Command{
	Use:   "bkweb",
	Short: "Booking site API for the supercar or tours catalogs",
	Long: `Booking site API which serves one product catalog, either the
supercar experience catalog (drivers, experiences, thrill reviews, and
bookings) or the tours agency catalog (guides, tours, reviews, and
bookings), as chosen by the catalog setting or $CATALOG.
Visitors may list the active catalog entries and approved reviews,
submit reviews, and book an offering. Creating, updating, and deleting
catalog entries, approving reviews, and managing bookings need the
admin token which is sent as a bearer Authorization header.

The database connection string is read from $DATABASE_URL (or the
database.url setting) and the server listens on $PORT (3001 by
default). Tables may be created by the "db init-dev" or "db init-prod"
sub-commands.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{
		Addr:              c.Server.Addr(),
		Handler:           gin.Handler(e),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info(ctx, "server started", log.Valuer("config", c))
	select {
	case err = <-errCh:
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutdown signal received")
	timeout := time.Duration(*c.Server.ShutdownTimeout)
	sctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	log.Info(sctx, "server stopped")
	return nil
}

// loadConfig loads the configuration file and sets up the default
// structured logger based on its logging settings.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgPath, cfgOptional)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	slog.SetDefault(c.Logging.NewLogger(os.Stderr))
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// zero for success and one for any failure, such as a missing
// $DATABASE_URL.
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
// Only the default config file may be missing, so the service can be
// configured by the environment variables alone.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
		cfgOptional = true
	}
}

// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/soutside/bookweb/pkg/core/usecase/schemauc"
	"github.com/spf13/cobra"
)

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data.
The tables of the configured catalog variant are created if they do
not exist and a few sample rows are inserted in each one of them
(unless an equivalent row exists already), so the action may be run
several times. The database connection information are read from the
config file or $DATABASE_URL. All changes are made in one transaction.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return initDB("dev", (*schemauc.UseCase).InitDev)
	},
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data.
The tables of the configured catalog variant are created if they do
not exist, leaving them empty. The database connection information are
read from the config file or $DATABASE_URL. All changes are made in one
transaction.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return initDB("prod", (*schemauc.UseCase).InitProd)
	},
	Args: cobra.NoArgs,
}

func initDB(
	mode string,
	action func(*schemauc.UseCase, context.Context) error,
) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	if err = action(c.NewSchemaUseCase(p), ctx); err != nil {
		return fmt.Errorf("initializing DB with %s data: %w", mode, err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd)
	dbCmd.AddCommand(initProdCmd)
}

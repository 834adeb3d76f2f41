// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/soutside/bookweb/pkg/adapter/db/postgres/recordsrp"
	"github.com/soutside/bookweb/pkg/core/usecase/statusuc"
	"github.com/spf13/cobra"
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Print the number of rows of each catalog table",
	Long: `Print the number of rows of each catalog table as a JSON array,
the same as the GET /_debug/counts API.`,
	RunE: printCounts,
	Args: cobra.NoArgs,
}

func printCounts(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := c.Catalog()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	tc, err := statusuc.New(p, recordsrp.New(), cat).Counts(ctx)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(tc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding counts: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func init() {
	dbCmd.AddCommand(countsCmd)
}

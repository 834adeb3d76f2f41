// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/soutside/bookweb/pkg/adapter/hash/scram"
	"github.com/spf13/cobra"
)

var (
	hashIters int
	hashSHA1  bool
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token",
	Short: "Hash an admin token for the admin.token-hash setting",
	Long: `Read an admin token from the standard input (its first line) and
print its SCRAM-SHA-256 hash with a random salt. The printed hash may be
written in the admin.token-hash setting instead of the plain token, so
the config file does not reveal the token itself.`,
	RunE: hashToken,
	Args: cobra.NoArgs,
}

func hashToken(cmd *cobra.Command, _ []string) error {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	token := strings.TrimRight(line, "\r\n")
	if token == "" {
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		return errors.New("empty token")
	}
	m := scram.SHA256()
	if hashSHA1 {
		m = scram.SHA1()
	}
	h, err := m.Hash(token, "", hashIters)
	if err != nil {
		return fmt.Errorf("hashing token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), h)
	return nil
}

func init() {
	hashTokenCmd.Flags().IntVar(
		&hashIters, "iters", 15000, "number of hashing iterations",
	)
	hashTokenCmd.Flags().BoolVar(
		&hashSHA1, "sha1", false, "use SCRAM-SHA-1 instead of SHA-256",
	)
	rootCmd.AddCommand(hashTokenCmd)
}

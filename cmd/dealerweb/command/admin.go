// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/dealerweb/pkg/adapter/hash/scram"
	"github.com/spf13/cobra"
)

var hashIters int

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back-office administration helpers",
}

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <token>",
	Short: "Hash a back-office access token for the config file",
	Long: `Hash the given back-office access token with the
SCRAM-SHA-256 mechanism and print the result, so it can be stored as
the admin token-hash configuration setting. The token itself is never
stored anywhere; incoming X-Admin-Token headers are verified against
the stored hash.`,
	RunE: hashToken,
	Args: cobra.ExactArgs(1),
}

func hashToken(cmd *cobra.Command, args []string) error {
	h, err := scram.SHA256().Hash(args[0], "", hashIters)
	if err != nil {
		return fmt.Errorf("hashing token: %w", err)
	}
	cmd.Println(h)
	return nil
}

func init() {
	// RFC 7677 recommends at least 15000 iterations.
	hashTokenCmd.Flags().IntVar(
		&hashIters, "iters", 15000, "PBKDF2 iterations count",
	)
	adminCmd.AddCommand(hashTokenCmd)
	rootCmd.AddCommand(adminCmd)
}

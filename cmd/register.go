// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/dicom-extract-worker/cmd/anonymise"
	"github.com/nicholas-fedor/dicom-extract-worker/cmd/copy"
)

// RegisterCommands adds all subcommands to the root command. This must be
// called before executing the root command.
func RegisterCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(copy.NewCopyCmd())
	rootCmd.AddCommand(anonymise.NewAnonymiseCmd())
}

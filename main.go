// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides the entry point for the dicom-extract-worker binary.
package main

import "github.com/nicholas-fedor/dicom-extract-worker/cmd"

// main is the entry point of the dicom-extract-worker binary.
// It creates the root command, registers all subcommands, and executes it.
func main() {
	rootCmd := cmd.NewRootCmd()
	cmd.RegisterCommands(rootCmd)
	cmd.Execute(rootCmd)
}

// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cmd provides the command-line interface for the extraction worker
// binaries.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/logger"
)

// loggerSetter defines the interface for setting logger verbosity.
type loggerSetter interface {
	SetVerbose(verbose bool)
}

//nolint:gochecknoglobals // required for CLI dependency injection
var realLoggerSetterImpl = &realLoggerSetter{}

type realLoggerSetter struct{}

func (r *realLoggerSetter) SetVerbose(verbose bool) {
	logger.SetVerbose(verbose)
}

// executor defines the interface for executing commands.
type executor interface {
	Execute(cmd *cobra.Command) error
}

//nolint:gochecknoglobals // required for CLI dependency injection
var realExecutorImpl = &realExecutor{}

type realExecutor struct{}

func (r *realExecutor) Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		return fmt.Errorf("failed to execute command: %w", err)
	}

	return nil
}

func setVerboseLogging(cmd *cobra.Command, setter loggerSetter) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		cmd.PrintErrf("error retrieving verbose flag: %v\n", err)
		setter.SetVerbose(false)
	} else {
		setter.SetVerbose(verbose)
	}
}

func executeRoot(rootCmd *cobra.Command, exec executor) error {
	err := exec.Execute(rootCmd)
	if err != nil {
		return fmt.Errorf("failed to execute root command: %w", err)
	}

	return nil
}

// NewRootCmd creates the base command when called without any subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dicom-extract-worker",
		Short: "Extracts and anonymises DICOM files from extraction requests",
		Long: `dicom-extract-worker consumes per-file extraction requests, locates the source
DICOM file on a shared filesystem, produces a copied or anonymised derivative
at a requested destination, and reports an outcome status.

The copy and anonymise subcommands' "run" action replays newline-delimited
JSON extract requests from a file or stdin through the real worker pipeline,
for operators and local testing without a broker.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setVerboseLogging(cmd, realLoggerSetterImpl)
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: false},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:         false,
			DisableNoDescFlag:         false,
			DisableDescriptions:       false,
			HiddenDefaultCmd:          false,
			DefaultShellCompDirective: nil,
		},
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute(rootCmd *cobra.Command) {
	err := executeRoot(rootCmd, realExecutorImpl)
	if err != nil {
		os.Exit(1)
	}
}

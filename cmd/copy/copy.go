// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package copy provides the copy command, which runs the verbatim-copy
// extraction worker against a batch of replayed requests.
package copy

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/hasher"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/pool"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/replay"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/security"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/worker"
)

// NewCopyCmd creates the copy command and its run subcommand.
func NewCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Run the copier extraction worker",
	}

	cmd.AddCommand(newCopyRunCmd())

	return cmd
}

func newCopyRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay newline-delimited JSON extract requests through the copier worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCopy(cmd)
		},
	}

	cmd.Flags().String("filesystem-root", "", "Absolute directory dicomFilePath is resolved under (required)")
	cmd.Flags().String("extraction-root", "", "Absolute directory extractionDirectory is resolved under (required)")
	cmd.Flags().String("pool-root", "", "Absolute directory for content-addressed pooled output (optional)")
	cmd.Flags().String("no-verify-routing-key", "", "Routing key reported for every status (default \"noverify\")")
	cmd.Flags().String("input", "-", "Path to a newline-delimited JSON request file, or \"-\" for stdin")

	return cmd
}

func runCopy(cmd *cobra.Command) error {
	security.StartupSecurityCheck(security.OSPrivilegeInspector{}, security.DefaultAuditLogger{})

	fsRoot, err := requiredString(cmd, "filesystem-root")
	if err != nil {
		return err
	}

	extractionRoot, err := requiredString(cmd, "extraction-root")
	if err != nil {
		return err
	}

	poolRoot, err := cmd.Flags().GetString("pool-root")
	if err != nil {
		return fmt.Errorf("failed to read --pool-root: %w", err)
	}

	noVerifyKey, err := cmd.Flags().GetString("no-verify-routing-key")
	if err != nil {
		return fmt.Errorf("failed to read --no-verify-routing-key: %w", err)
	}

	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("failed to read --input: %w", err)
	}

	fs := &filesystem.OSFileSystem{}

	if err := validateRootExists(fs, "filesystem-root", fsRoot); err != nil {
		return err
	}

	if err := validateRootExists(fs, "extraction-root", extractionRoot); err != nil {
		return err
	}

	var poolManager worker.PoolLinker
	if poolRoot != "" {
		if err := validateRootExists(fs, "pool-root", poolRoot); err != nil {
			return err
		}

		poolManager = pool.New(fs, hasher.New(fs), poolRoot)
	}

	cfg := model.WorkerConfig{
		FileSystemRoot:     fsRoot,
		ExtractionRoot:     extractionRoot,
		PoolRoot:           poolRoot,
		NoVerifyRoutingKey: noVerifyKey,
	}

	publisher := replay.NewCountingPublisher(replay.LoggingPublisher{})
	w := worker.NewCopyWorker(fs, cfg, poolManager, publisher, replay.LoggingAcknowledger{})

	in, closeFn, err := openInput(cmd, inputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	summary, err := replay.Run(in, w, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	cmd.Println(replay.FormatSummary(summary, publisher.Counts()))

	return nil
}

func requiredString(cmd *cobra.Command, flagName string) (string, error) {
	value, err := cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s: %w", flagName, err)
	}

	if value == "" {
		return "", fmt.Errorf("--%s is required", flagName) //nolint:err113 // operator-facing CLI message
	}

	return value, nil
}

func validateRootExists(fs *filesystem.OSFileSystem, flagName, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("--%s %q does not exist: %w", flagName, path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: --%s %q is not a directory", errNotADirectory, flagName, path)
	}

	return nil
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	file, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file %q: %w", path, err)
	}

	return file, func() { _ = file.Close() }, nil
}

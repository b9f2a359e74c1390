// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anonymise provides the anonymise command, which runs the
// anonymising extraction worker against a batch of replayed requests.
package anonymise

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	dwbackend "github.com/nicholas-fedor/dicom-extract-worker/internal/backend"
	dwexec "github.com/nicholas-fedor/dicom-extract-worker/internal/exec"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/hasher"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/pool"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/replay"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/security"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/worker"
)

var errNotADirectory = errors.New("path is not a directory")

// NewAnonymiseCmd creates the anonymise command and its run subcommand.
func NewAnonymiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anonymise",
		Short: "Run the anonymiser extraction worker",
	}

	cmd.AddCommand(newAnonymiseRunCmd())

	return cmd
}

func newAnonymiseRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay newline-delimited JSON extract requests through the anonymiser worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnonymise(cmd)
		},
	}

	cmd.Flags().String("filesystem-root", "", "Absolute directory dicomFilePath is resolved under (required)")
	cmd.Flags().String("extraction-root", "", "Absolute directory extractionDirectory is resolved under (required)")
	cmd.Flags().String("pool-root", "", "Absolute directory for content-addressed pooled output (optional)")
	cmd.Flags().String("routing-key-success", "", "Routing key reported on Anonymised (default \"verify\")")
	cmd.Flags().String("routing-key-failure", "", "Routing key reported on any failure (default \"noverify\")")
	cmd.Flags().Bool("fail-if-source-writeable", false, "Reject sources that are not read-only")
	cmd.Flags().String("xa-tool-path", "", "Path to the external XA-modality anonymiser tool (optional)")
	cmd.Flags().Duration("xa-tool-timeout", model.DefaultExternalToolTimeout, "Wall-clock timeout for the external tool")
	cmd.Flags().String("input", "-", "Path to a newline-delimited JSON request file, or \"-\" for stdin")

	return cmd
}

func runAnonymise(cmd *cobra.Command) error { //nolint:cyclop // flag plumbing, not branching logic
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

	routingKeySuccess, err := cmd.Flags().GetString("routing-key-success")
	if err != nil {
		return fmt.Errorf("failed to read --routing-key-success: %w", err)
	}

	routingKeyFailure, err := cmd.Flags().GetString("routing-key-failure")
	if err != nil {
		return fmt.Errorf("failed to read --routing-key-failure: %w", err)
	}

	failIfWriteable, err := cmd.Flags().GetBool("fail-if-source-writeable")
	if err != nil {
		return fmt.Errorf("failed to read --fail-if-source-writeable: %w", err)
	}

	xaToolPath, err := cmd.Flags().GetString("xa-tool-path")
	if err != nil {
		return fmt.Errorf("failed to read --xa-tool-path: %w", err)
	}

	xaTimeout, err := cmd.Flags().GetDuration("xa-tool-timeout")
	if err != nil {
		return fmt.Errorf("failed to read --xa-tool-timeout: %w", err)
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
		FileSystemRoot:        fsRoot,
		ExtractionRoot:        extractionRoot,
		PoolRoot:              poolRoot,
		RoutingKeySuccess:     routingKeySuccess,
		RoutingKeyFailure:     routingKeyFailure,
		FailIfSourceWriteable: failIfWriteable,
		ExternalToolTimeout:   xaTimeout,
	}

	be, err := buildBackend(fs, xaToolPath, cfg.Timeout())
	if err != nil {
		return err
	}

	publisher := replay.NewCountingPublisher(replay.LoggingPublisher{})
	w := worker.NewAnonymiseWorker(fs, cfg, be, poolManager, publisher, replay.LoggingAcknowledger{})

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

// buildBackend wires a ModalityRouter over a PassthroughBackend primary and,
// if xaToolPath is set, an ExternalToolRunner for XA-modality requests.
func buildBackend(fs *filesystem.OSFileSystem, xaToolPath string, xaTimeout time.Duration) (dwbackend.Backend, error) {
	primary := dwbackend.NewPassthroughBackend(fs)

	if xaToolPath == "" {
		return dwbackend.NewRouter(primary, nil), nil
	}

	external, err := dwbackend.NewExternalToolRunner(fs, dwexec.OSCommandExecutor{}, xaToolPath, xaTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to configure external anonymiser tool: %w", err)
	}

	return dwbackend.NewRouter(primary, external), nil
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

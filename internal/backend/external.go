// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	osexec "os/exec"
	"strings"
	"sync"
	"time"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/exec"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/logger"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
)

// NewExternalToolRunner constructs an ExternalToolRunner, failing fast if
// toolPath does not exist. A non-positive timeout falls back to the
// package default of 60 seconds.
func NewExternalToolRunner(
	fs filesystem.FileSystem,
	executor exec.CommandExecutor,
	toolPath string,
	timeout time.Duration,
) (*ExternalToolRunner, error) {
	_, err := fs.Stat(toolPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolPathMissing, toolPath)
	}

	if timeout <= 0 {
		timeout = model.DefaultExternalToolTimeout
	}

	return &ExternalToolRunner{fs: fs, executor: executor, toolPath: toolPath, timeout: timeout}, nil
}

// Anonymise implements Backend by running the external tool. modality is
// accepted for interface compliance but unused: routing to this backend
// has already decided the modality matters.
func (r *ExternalToolRunner) Anonymise(src, dst, _ string) (model.Status, string) {
	return r.Run(src, dst)
}

// Run spawns the configured tool with (absoluteSrc, absoluteDst) arguments,
// drains its stdout/stderr at debug level, and classifies the outcome.
func (r *ExternalToolRunner) Run(absSrc, absDst string) (model.Status, string) {
	cmd := r.executor.CommandContext(context.Background(), r.toolPath, absSrc, absDst)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return model.StatusErrorWontRetry, fmt.Sprintf("external anonymiser tool failed to open stdout: %v", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return model.StatusErrorWontRetry, fmt.Sprintf("external anonymiser tool failed to open stderr: %v", err)
	}

	err = cmd.Start()
	if err != nil {
		return model.StatusErrorWontRetry, fmt.Sprintf("external anonymiser tool failed to start: %v", err)
	}

	var stderrBuf bytes.Buffer

	var pipeWG sync.WaitGroup

	pipeWG.Add(2)

	go drainStream(stdout, "stdout", nil, &pipeWG)
	go drainStream(stderr, "stderr", &stderrBuf, &pipeWG)

	waitDone := make(chan error, 1)
	go func() { waitDone <- cmd.Wait() }()

	select {
	case waitErr := <-waitDone:
		pipeWG.Wait()

		return r.classify(waitErr, absDst, stderrBuf.String())
	case <-time.After(r.timeout):
		_ = cmd.Kill()
		<-waitDone
		pipeWG.Wait()

		return model.StatusErrorWontRetry,
			fmt.Sprintf("external anonymiser tool timed out after %ds", int(r.timeout.Seconds()))
	}
}

// classify turns a process exit outcome into a status and message.
func (r *ExternalToolRunner) classify(waitErr error, absDst, stderrOutput string) (model.Status, string) {
	if waitErr != nil {
		var exitErr *osexec.ExitError

		if errors.As(waitErr, &exitErr) {
			return model.StatusErrorWontRetry, fmt.Sprintf(
				"external anonymiser tool exited with code %d. Error: %s",
				exitErr.ExitCode(), strings.TrimSpace(stderrOutput))
		}

		return model.StatusErrorWontRetry, fmt.Sprintf("external anonymiser tool failed: %v", waitErr)
	}

	_, statErr := r.fs.Stat(absDst)
	if statErr != nil {
		return model.StatusErrorWontRetry, fmt.Sprintf(
			"external anonymiser tool completed but output file was not created: %s", absDst)
	}

	return model.StatusAnonymised, ""
}

// drainStream logs each line from r at debug level, optionally also
// collecting it into buf (used to surface stderr in a failure message).
func drainStream(r io.Reader, name string, buf *bytes.Buffer, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		logger.Debugf("external anonymiser tool %s: %s", name, line)

		if buf != nil {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
}

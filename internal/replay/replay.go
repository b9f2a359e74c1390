// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package replay drives an ExtractionWorker over a batch of newline-delimited
// JSON ExtractRequest values read from a file or stdin, logging outcomes in
// place of a real broker connection. It exists so the copier and anonymiser
// binaries have an operator-facing way to exercise the full worker pipeline
// without a broker dependency, which is out of scope for this repository.
package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/logger"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/worker"
)

const scannerInitialBufferSize = 64 * 1024

const scannerMaxBufferSize = 1 << 20

// Processor is the subset of ExtractionWorker that Run depends on.
type Processor interface {
	Process(header model.RequestHeader, req model.ExtractRequest) error
}

// Summary tallies the outcome of a replay run.
type Summary struct {
	Processed int
	Fatals    int
}

// Run decodes one ExtractRequest per line from in and drives each through w
// in order, assigning sequential delivery tags. It stops and returns an
// error only on malformed input or an I/O failure reading it; a Fatal
// returned by the worker is counted and logged, and replay continues with
// the next request, since a replay batch is expected to contain a mix of
// good and bad fixtures.
func Run(in io.Reader, w Processor, progressOut io.Writer) (Summary, error) {
	summary := Summary{}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, scannerInitialBufferSize), scannerMaxBufferSize)

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("replaying extraction requests"),
		progressbar.OptionSetWriter(progressOut),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	var tag model.DeliveryTag

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req model.ExtractRequest

		err := json.Unmarshal(line, &req)
		if err != nil {
			return summary, fmt.Errorf("failed to decode extract request: %w", err)
		}

		tag++
		summary.Processed++

		processErr := w.Process(model.RequestHeader{DeliveryTag: tag}, req)

		var fatal *worker.FatalError

		switch {
		case processErr == nil:
		case errors.As(processErr, &fatal):
			summary.Fatals++

			logger.Errorf("fatal processing job %s: %v", req.JobID, processErr)
		default:
			return summary, processErr
		}

		_ = bar.Add(1)
	}

	_ = bar.Finish()

	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read extract requests: %w", err)
	}

	return summary, nil
}

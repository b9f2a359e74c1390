// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package worker

import (
	"fmt"
	"path/filepath"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/logger"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
)

const tempOutputDirPattern = "anon-*"

// materialise dispatches to the variant- and pooling-specific sub-case and
// returns the status, its message, and the relative output path to report
// on success. A non-nil error is always a Fatal: business failures are
// returned as a non-success Status, never as an error.
func (w *ExtractionWorker) materialise(
	absSrc, absDst string,
	req model.ExtractRequest,
) (model.Status, string, string, error) {
	if req.IsPooledExtraction && w.pool == nil {
		return "", "", "", ErrPoolingNotConfigured
	}

	if w.kind == KindCopy {
		return w.materialiseCopy(absSrc, absDst, req)
	}

	return w.materialiseAnonymise(absSrc, absDst, req)
}

// materialiseCopy implements stage 7's copy and copy-then-pool sub-cases.
// In the pooled case the source itself is the pool candidate, so it must
// never be removed: preserveCandidate is always true here.
func (w *ExtractionWorker) materialiseCopy(
	absSrc, absDst string,
	req model.ExtractRequest,
) (model.Status, string, string, error) {
	if req.IsPooledExtraction {
		_, err := w.pool.LinkInto(absSrc, absDst, true)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to pool copied file: %w", err)
		}

		return model.StatusCopied, "", req.OutputPath, nil
	}

	err := w.copyFile(absSrc, absDst)
	if err != nil {
		return "", "", "", err
	}

	return model.StatusCopied, "", req.OutputPath, nil
}

// materialiseAnonymise implements stage 7's anonymise-direct and
// anonymise-then-pool sub-cases. In the pooled case the backend writes to a
// private temp file that the worker owns exclusively until PoolManager
// either consumes or the worker deletes it on backend failure.
func (w *ExtractionWorker) materialiseAnonymise(
	absSrc, absDst string,
	req model.ExtractRequest,
) (model.Status, string, string, error) {
	if !req.IsPooledExtraction {
		status, message := w.backend.Anonymise(absSrc, absDst, req.Modality)

		return status, message, req.OutputPath, nil
	}

	tempDir, err := w.fs.MkdirTemp(w.cfg.PoolRoot, tempOutputDirPattern)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to create staging directory for anonymised output: %w", err)
	}

	tempFile := filepath.Join(tempDir, "output")

	status, message := w.backend.Anonymise(absSrc, tempFile, req.Modality)
	if !status.Succeeded() {
		removeErr := w.fs.RemoveAll(tempDir)
		if removeErr != nil {
			logger.Debugf("failed to remove staging directory %s: %v", tempDir, removeErr)
		}

		return status, message, "", nil
	}

	defer func() {
		removeErr := w.fs.RemoveAll(tempDir)
		if removeErr != nil {
			logger.Debugf("failed to remove staging directory %s: %v", tempDir, removeErr)
		}
	}()

	_, err = w.pool.LinkInto(tempFile, absDst, false)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to pool anonymised output: %w", err)
	}

	return status, message, req.OutputPath, nil
}

// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package worker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/logger"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/validation"
)

// writeReadOnlyBits, when all clear, mark a file as not writeable by anyone.
const writeReadOnlyBits = 0o222

// Process runs a single ExtractRequest through the full pipeline: shape
// validation, source resolution, materialisation, status publication and
// acknowledgement. A returned *FatalError means neither Ack nor Nack was
// issued and the caller should stop processing further messages. A nil
// return means the message was fully handled: exactly one status was
// published and exactly one Ack was issued.
func (w *ExtractionWorker) Process(header model.RequestHeader, req model.ExtractRequest) error {
	err := validation.ValidateExtractRequestPaths(req.DicomFilePath, req.OutputPath, req.ExtractionDirectory)
	if err != nil {
		return w.publishAndAck(header, w.failureStatus(req, model.StatusErrorWontRetry,
			fmt.Sprintf("invalid request paths: %v", err)))
	}

	if w.kind == KindAnonymise && req.IsIdentifiableExtraction {
		return &FatalError{Err: ErrIdentifiableExtraction}
	}

	absSrc := filepath.Join(w.cfg.FileSystemRoot, req.DicomFilePath)

	info, err := w.fs.Stat(absSrc)
	if err != nil {
		if w.fs.IsNotExist(err) {
			return w.publishAndAck(header, w.failureStatus(req, model.StatusFileMissing, w.missingSourceMessage(absSrc)))
		}

		return &FatalError{Err: fmt.Errorf("failed to stat source file %q: %w", absSrc, err)}
	}

	if w.kind == KindAnonymise && w.cfg.FailIfSourceWriteable && !sourceIsReadOnly(info) {
		return w.publishAndAck(header, w.failureStatus(req, model.StatusErrorWontRetry,
			fmt.Sprintf("Source file was writeable and FailIfSourceWriteable is set: '%s'", absSrc)))
	}

	absExtractionDir, err := w.prepareExtractionDir(req)
	if err != nil {
		return err
	}

	absDst := filepath.Join(absExtractionDir, req.OutputPath)

	err = w.fs.MkdirAll(filepath.Dir(absDst), directoryPermissions)
	if err != nil {
		return &FatalError{Err: fmt.Errorf("failed to create destination directory for %q: %w", absDst, err)}
	}

	status, message, outputPath, err := w.materialise(absSrc, absDst, req)
	if err != nil {
		return &FatalError{Err: err}
	}

	extractStatus := w.failureStatus(req, status, message)
	if status.Succeeded() {
		extractStatus.OutputFilePath = outputPath
	}

	return w.publishAndAck(header, extractStatus)
}

// missingSourceMessage matches the wording each variant uses for a missing
// source file; the anonymiser and copier phrase it differently.
func (w *ExtractionWorker) missingSourceMessage(absSrc string) string {
	if w.kind == KindAnonymise {
		return fmt.Sprintf("Could not find file to anonymise: '%s'", absSrc)
	}

	return fmt.Sprintf("Could not find '%s'", absSrc)
}

// prepareExtractionDir enforces the per-variant extraction directory rule:
// the anonymiser requires it to already exist (a missing directory signals
// a flapping shared filesystem and is escalated as Fatal); the copier
// creates it on demand.
func (w *ExtractionWorker) prepareExtractionDir(req model.ExtractRequest) (string, error) {
	absExtractionDir := filepath.Join(w.cfg.ExtractionRoot, req.ExtractionDirectory)

	if w.kind == KindAnonymise {
		_, err := w.fs.Stat(absExtractionDir)
		if err != nil {
			if w.fs.IsNotExist(err) {
				return "", &FatalError{Err: fmt.Errorf("%w: '%s'", ErrExtractionDirMissing, absExtractionDir)}
			}

			return "", &FatalError{Err: fmt.Errorf("failed to stat extraction directory %q: %w", absExtractionDir, err)}
		}

		return absExtractionDir, nil
	}

	err := w.fs.MkdirAll(absExtractionDir, directoryPermissions)
	if err != nil {
		return "", &FatalError{Err: fmt.Errorf("failed to create extraction directory %q: %w", absExtractionDir, err)}
	}

	return absExtractionDir, nil
}

// sourceIsReadOnly reports whether no write permission bit is set for owner,
// group or other.
func sourceIsReadOnly(info os.FileInfo) bool {
	return info.Mode().Perm()&writeReadOnlyBits == 0
}

// failureStatus builds an ExtractStatus carrying the request's identity.
// Callers set OutputFilePath only when status.Succeeded().
func (w *ExtractionWorker) failureStatus(req model.ExtractRequest, status model.Status, message string) model.ExtractStatus {
	return model.ExtractStatus{
		JobID:         req.JobID,
		SubmittedAt:   req.SubmittedAt,
		Project:       req.Project,
		Status:        status,
		StatusMessage: message,
	}
}

// routingKey selects the outbound routing key. The copier always uses its
// single no-verify key, win or lose; the anonymiser splits on outcome.
func (w *ExtractionWorker) routingKey(status model.Status) string {
	if w.kind == KindCopy {
		return w.cfg.NoVerifyRoutingKeyOrDefault()
	}

	if status == model.StatusAnonymised {
		return w.cfg.RoutingKeySuccessOrDefault()
	}

	return w.cfg.RoutingKeyFailureOrDefault()
}

// publishAndAck sends status then acknowledges the delivery, in that order,
// so a crash between the two produces at most a duplicate status rather
// than a silently dropped one. A failure at either step is escalated as
// Fatal: the broker's redelivery is the recovery path, not a retry loop here.
func (w *ExtractionWorker) publishAndAck(header model.RequestHeader, status model.ExtractStatus) error {
	routingKey := w.routingKey(status.Status)

	err := w.publisher.Publish(status, routingKey)
	if err != nil {
		return &FatalError{Err: fmt.Errorf("failed to publish status: %w", err)}
	}

	err = w.ack.Ack(header.DeliveryTag)
	if err != nil {
		return &FatalError{Err: fmt.Errorf("failed to ack delivery: %w", err)}
	}

	return nil
}

// copyFile overwrites dst with the full contents of src.
func (w *ExtractionWorker) copyFile(src, dst string) error {
	source, err := w.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source %q: %w", src, err)
	}
	defer func() { _ = source.Close() }()

	destination, err := w.fs.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination %q: %w", dst, err)
	}

	_, err = io.Copy(destination, source)
	closeErr := destination.Close()

	if err != nil {
		return fmt.Errorf("failed to copy %q to %q: %w", src, dst, err)
	}

	if closeErr != nil {
		return fmt.Errorf("failed to finalize destination %q: %w", dst, closeErr)
	}

	logger.Debugf("copied %s to %s", src, dst)

	return nil
}

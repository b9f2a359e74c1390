// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pool deduplicates extraction output into a content-addressed
// store: every distinct blob is written once under its SHA-256 digest, and
// every requesting caller is linked to it by symlink.
package pool

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/logger"
)

const tempDirPattern = "tmp-*"

// LinkInto hashes candidatePath, publishes its content into the pool (if not
// already present), and symlinks dstPath to the pooled blob.
//
// When preserveCandidate is false (the anonymiser-temp case), the candidate
// is moved directly into the pool or deleted if another worker already
// published the same digest. When true (the copier case, whose source must
// survive), the candidate's content is copied in rather than the candidate
// itself being consumed. Returns the resolved pool path.
func (m *Manager) LinkInto(candidatePath, dstPath string, preserveCandidate bool) (string, error) {
	digest, err := m.hasher.HashFile(candidatePath)
	if err != nil {
		return "", &Error{Phase: "hash", Path: candidatePath, Operation: "hashFile", Err: fmt.Errorf("%w: %w", ErrHashCandidate, err)}
	}

	poolPath := filepath.Join(m.poolRoot, digest)

	err = m.publish(candidatePath, poolPath, digest, preserveCandidate)
	if err != nil {
		return "", &Error{Phase: "publish", Path: poolPath, Operation: "publish", Err: fmt.Errorf("%w: %w", ErrPublishBlob, err)}
	}

	err = m.fs.RemoveAll(dstPath)
	if err != nil {
		return "", &Error{Phase: "link", Path: dstPath, Operation: "removeStaleDestination", Err: fmt.Errorf("%w: %w", ErrLinkDestination, err)}
	}

	err = m.fs.Symlink(poolPath, dstPath)
	if err != nil {
		return "", &Error{Phase: "link", Path: dstPath, Operation: "symlink", Err: fmt.Errorf("%w: %w", ErrLinkDestination, err)}
	}

	return poolPath, nil
}

// publish ensures a blob exists at poolPath, deduplicating concurrent
// publishes of the same digest within this process via singleflight; a
// caller that shared another caller's publish discards its own candidate
// unless preserveCandidate is set. Inter-process races are not serialised:
// os.Rename onto an existing regular file replaces it, so a publisher that
// loses the Stat check race overwrites the pool blob with the identical
// bytes content addressing guarantees. A Rename that does fail with EEXIST
// is treated as success for the same reason.
func (m *Manager) publish(candidatePath, poolPath, digest string, preserveCandidate bool) error {
	_, err, shared := m.group.Do(digest, func() (any, error) {
		return nil, m.publishOnce(candidatePath, poolPath, preserveCandidate)
	})

	if err == nil && shared && !preserveCandidate {
		if removeErr := m.fs.RemoveAll(candidatePath); removeErr != nil {
			logger.Debugf("failed to remove superseded candidate %s: %v", candidatePath, removeErr)
		}
	}

	return err
}

func (m *Manager) publishOnce(candidatePath, poolPath string, preserveCandidate bool) error {
	_, statErr := m.fs.Stat(poolPath)
	if statErr == nil {
		if !preserveCandidate {
			if removeErr := m.fs.RemoveAll(candidatePath); removeErr != nil {
				logger.Debugf("failed to remove superseded candidate %s: %v", candidatePath, removeErr)
			}
		}

		return nil
	}

	if !m.fs.IsNotExist(statErr) {
		return statErr
	}

	if !preserveCandidate {
		return m.moveIntoPool(candidatePath, poolPath)
	}

	return m.copyIntoPool(candidatePath, poolPath)
}

// moveIntoPool renames candidatePath directly into the pool. This is the
// atomic, no-copy path used when the candidate is a scratch file the worker
// already owns exclusively.
func (m *Manager) moveIntoPool(candidatePath, poolPath string) error {
	err := m.fs.Rename(candidatePath, poolPath)
	if err == nil {
		return nil
	}

	if m.fs.IsExist(err) {
		logger.Debugf("pool blob %s published concurrently, discarding candidate", poolPath)

		if removeErr := m.fs.RemoveAll(candidatePath); removeErr != nil {
			logger.Debugf("failed to remove superseded candidate %s: %v", candidatePath, removeErr)
		}

		return nil
	}

	return fmt.Errorf("failed to move candidate into pool: %w", err)
}

// copyIntoPool stages candidatePath's content into a temp file inside the
// pool root, then renames it into place, leaving candidatePath untouched.
func (m *Manager) copyIntoPool(candidatePath, poolPath string) error {
	tmpDir, err := m.fs.MkdirTemp(m.poolRoot, tempDirPattern)
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	defer func() { _ = m.fs.RemoveAll(tmpDir) }()

	tmpPath := filepath.Join(tmpDir, "blob")

	err = m.copyFile(candidatePath, tmpPath)
	if err != nil {
		return err
	}

	err = m.fs.Rename(tmpPath, poolPath)
	if err != nil {
		if m.fs.IsExist(err) {
			logger.Debugf("pool blob %s published concurrently, discarding staged copy", poolPath)

			return nil
		}

		return fmt.Errorf("failed to publish staged blob: %w", err)
	}

	return nil
}

func (m *Manager) copyFile(srcPath, dstPath string) error {
	src, err := m.fs.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open candidate for staging: %w", err)
	}

	defer func() { _ = src.Close() }()

	dst, err := m.fs.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create staged blob: %w", err)
	}

	_, err = io.Copy(dst, src)

	closeErr := dst.Close()

	if err != nil {
		return fmt.Errorf("failed to stage blob content: %w", err)
	}

	if closeErr != nil {
		return fmt.Errorf("failed to finalize staged blob: %w", closeErr)
	}

	return nil
}

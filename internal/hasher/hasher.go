// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package hasher computes the content digest the pool manager uses as a
// file's storage key.
package hasher

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/logger"
)

const bufferSize = 64 * 1024

// Hasher computes the SHA-256 digest of a file's contents.
type Hasher struct {
	fs filesystem.FileSystem
}

// New creates a Hasher backed by the given filesystem.
func New(fs filesystem.FileSystem) *Hasher {
	return &Hasher{fs: fs}
}

// HashFile streams the file at path through SHA-256 and returns the digest
// as lowercase hex, the form used for pool filenames. It never loads the
// file into memory, so it scales to the large DICOM files this worker
// handles routinely.
func (h *Hasher) HashFile(path string) (string, error) {
	logger.Debugf("hashing file: %s", path)

	file, err := h.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}

	defer func() { _ = file.Close() }()

	digest := sha256.New()

	bufferedReader := bufio.NewReaderSize(file, bufferSize)

	_, err = io.Copy(digest, bufferedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read file for hashing: %w", err)
	}

	sum := hex.EncodeToString(digest.Sum(nil))
	logger.Debugf("computed digest %s for %s", sum, path)

	return sum, nil
}
